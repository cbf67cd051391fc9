// seehuhn.de/go/extrude - turn coloured vector art into printable solids
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
// Package httpapi serves the conversion pipeline over HTTP.
//
// The endpoints accept and return JSON, except for the mesh files which
// are sent as file downloads:
//
//	POST /api/convert-stl   SVG document and settings -> STL file or zip archive
//	POST /api/layers        SVG document -> colour layers
//	POST /api/vectorize     raster image upload -> SVG document
//
// Errors are reported as {"success": false, "error": "..."}.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"seehuhn.de/go/extrude"
	"seehuhn.de/go/extrude/bitmap"
	"seehuhn.de/go/extrude/colorname"
	"seehuhn.de/go/extrude/stl"
)

// MaxBodySize is the default limit for request bodies.
const MaxBodySize = 10 << 20

// Server holds the settings of the HTTP front end.
type Server struct {
	// MaxBody limits the size of request bodies in bytes.  Zero selects
	// [MaxBodySize].
	MaxBody int64

	// MaxImageSize is the largest width or height of an uploaded image
	// before tracing.  Larger images are scaled down.  Zero selects 1024.
	MaxImageSize int
}

// Handler returns a handler serving the API with default settings.
func Handler() http.Handler {
	return (&Server{}).Handler()
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/convert-stl", s.post(s.convert))
	mux.HandleFunc("/api/layers", s.post(s.layers))
	mux.HandleFunc("/api/vectorize", s.post(s.vectorize))
	return mux
}

// post wraps a handler so that it only accepts POST requests with a
// limited body size, and logs the outcome.
func (s *Server) post(h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		limit := s.MaxBody
		if limit <= 0 {
			limit = MaxBodySize
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		start := time.Now()
		err := h(w, r)
		log := extrude.Logger()
		if err != nil {
			status := statusOf(err)
			writeError(w, status, err.Error())
			log.Info("request failed",
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.String("error", err.Error()))
			return
		}
		log.Info("request",
			slog.String("path", r.URL.Path),
			slog.Duration("elapsed", time.Since(start)))
	}
}

// errBadRequest marks problems with the request itself.
var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, extrude.ErrInput),
		errors.Is(err, extrude.ErrParam),
		errors.Is(err, extrude.ErrNoColors),
		errors.Is(err, extrude.ErrEmptySolids),
		errors.Is(err, bitmap.ErrNotImage),
		errors.Is(err, bitmap.ErrColorCount),
		errors.Is(err, bitmap.ErrTransparent):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ConvertRequest is the body of a /api/convert-stl request.
type ConvertRequest struct {
	SVGContent      string             `json:"svgContent"`
	ColorDepths     map[string]float64 `json:"colorDepths,omitempty"`
	ExportType      string             `json:"exportType,omitempty"`
	QualitySettings *QualitySettings   `json:"qualitySettings,omitempty"`
	BaseLayer       *BaseLayer         `json:"baseLayer,omitempty"`
	Mirror          *Mirror            `json:"mirror,omitempty"`
	Format          string             `json:"format,omitempty"`
	UpAxis          string             `json:"upAxis,omitempty"`
}

// QualitySettings overrides the default quality.  Zero or missing fields
// keep their defaults.
type QualitySettings struct {
	CurveSegments int      `json:"curveSegments,omitempty"`
	ScaleFactor   float64  `json:"scaleFactor,omitempty"`
	OverlapAmount *float64 `json:"overlapAmount,omitempty"`
}

// BaseLayer requests a foundation slab.
type BaseLayer struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Height  float64 `json:"height"`
	Color   string  `json:"color,omitempty"`
}

// Mirror selects mirrored axes.
type Mirror struct {
	X bool `json:"x"`
	Y bool `json:"y"`
}

// Request converts the JSON request into a pipeline request.
func (c *ConvertRequest) Request() (extrude.Request, error) {
	if c.SVGContent == "" {
		return extrude.Request{}, fmt.Errorf("%w: SVG content is required", errBadRequest)
	}
	req := extrude.Request{
		Document: []byte(c.SVGContent),
		Depths:   c.ColorDepths,
		Quality:  extrude.DefaultQuality(),
	}
	if q := c.QualitySettings; q != nil {
		if q.CurveSegments != 0 {
			req.Quality.CurveSegments = q.CurveSegments
		}
		if q.ScaleFactor != 0 {
			req.Quality.ScaleFactor = q.ScaleFactor
		}
		if q.OverlapAmount != nil {
			req.Quality.OverlapAmount = *q.OverlapAmount
		}
	}
	if b := c.BaseLayer; b != nil && (b.Enabled == nil || *b.Enabled) {
		color := b.Color
		if color == "" {
			color = "ffffff"
		}
		key, err := extrude.ParseColorKey(color)
		if err != nil {
			return req, err
		}
		req.Base = &extrude.BaseLayer{Height: b.Height, Color: key}
	}
	if c.Mirror != nil {
		req.Mirror = extrude.Mirror{X: c.Mirror.X, Y: c.Mirror.Y}
	}

	var err error
	if req.Mode, err = extrude.ParseExportMode(c.ExportType); err != nil {
		return req, err
	}
	if req.Up, err = extrude.ParseUpAxis(c.UpAxis); err != nil {
		return req, err
	}
	if req.Format, err = stl.ParseFormat(c.Format); err != nil {
		return req, fmt.Errorf("%w: %w", extrude.ErrParam, err)
	}
	return req, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON: %w", errBadRequest, err)
	}
	return nil
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) error {
	body := &ConvertRequest{}
	if err := decodeJSON(r, body); err != nil {
		return err
	}
	req, err := body.Request()
	if err != nil {
		return err
	}
	res, err := extrude.Convert(r.Context(), req)
	if err != nil {
		return err
	}

	f := res.Files[0]
	contentType := "application/octet-stream"
	if req.Mode == extrude.Separate {
		contentType = "application/zip"
	}
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	h.Set("Content-Length", strconv.Itoa(len(f.Data)))
	h.Set("X-Path-Problems", strconv.Itoa(res.Diagnostics))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(f.Data)
	if err != nil {
		// the status line is already sent
		extrude.Logger().Warn("writing response", slog.String("error", err.Error()))
	}
	return nil
}

// LayersRequest is the body of a /api/layers request.
type LayersRequest struct {
	SVGContent string `json:"svgContent"`
}

// LayerJSON describes one colour layer.
type LayerJSON struct {
	Color     string  `json:"color"`
	Name      string  `json:"name"`
	Depth     float64 `json:"depth"`
	PathCount int     `json:"pathCount"`
}

// LayersResponse is the answer to a /api/layers request.
type LayersResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Colors []LayerJSON `json:"colors"`
	} `json:"data"`
}

func (s *Server) layers(w http.ResponseWriter, r *http.Request) error {
	body := &LayersRequest{}
	if err := decodeJSON(r, body); err != nil {
		return err
	}
	if body.SVGContent == "" {
		return fmt.Errorf("%w: SVG content is required", errBadRequest)
	}
	layers, err := extrude.Inspect([]byte(body.SVGContent))
	if err != nil {
		return err
	}

	resp := &LayersResponse{Success: true}
	resp.Data.Colors = make([]LayerJSON, len(layers))
	for i, l := range layers {
		resp.Data.Colors[i] = LayerJSON{
			Color:     "#" + string(l.Color),
			Name:      colorname.Name(string(l.Color)),
			Depth:     l.Depth,
			PathCount: l.ShapeCount,
		}
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

// VectorizeResponse is the answer to a /api/vectorize request.
type VectorizeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		SVG     string   `json:"svg"`
		Palette []string `json:"palette"`
	} `json:"data"`
}

// vectorize expects a multipart form with the image in the field "image"
// and an optional colour count in the field "colorCount".
func (s *Server) vectorize(w http.ResponseWriter, r *http.Request) error {
	file, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: no image uploaded", errBadRequest)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	n := 8
	if v := r.FormValue("colorCount"); v != "" {
		n, err = strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: invalid colour count %q", errBadRequest, v)
		}
	}

	img, err := bitmap.Decode(data)
	if err != nil {
		return err
	}
	maxSize := s.MaxImageSize
	if maxSize <= 0 {
		maxSize = 1024
	}
	svg, palette, err := bitmap.Vectorize(r.Context(), bitmap.Downscale(img, maxSize), n, nil)
	if err != nil {
		return err
	}

	resp := &VectorizeResponse{Success: true}
	resp.Data.SVG = string(svg)
	for _, c := range palette {
		resp.Data.Palette = append(resp.Data.Palette, "#"+bitmap.Hex(c))
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}
