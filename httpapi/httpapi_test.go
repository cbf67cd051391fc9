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
package httpapi

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/extrude/stl"
)

const twoSquares = `<svg viewBox="0 0 40 20">
  <path d="M0 0H10V10H0Z" fill="#ff0000"/>
  <path d="M20 0H30V10H20Z" fill="#00ff00"/>
</svg>`

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.False(t, e.Success)
	assert.NotEmpty(t, e.Error)
	return e
}

func TestConvertCombined(t *testing.T) {
	overlap := 0.0
	rec := postJSON(t, Handler(), "/api/convert-stl", &ConvertRequest{
		SVGContent:      twoSquares,
		ColorDepths:     map[string]float64{"#FF0000": 3},
		ExportType:      "combined",
		QualitySettings: &QualitySettings{ScaleFactor: 1, OverlapAmount: &overlap},
		Format:          "ascii",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "combined.stl")
	assert.Equal(t, "0", rec.Header().Get("X-Path-Problems"))

	m, err := stl.Read(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, stl.ASCII, m.Format)
	assert.Len(t, m.Triangles, 24)
	b := m.Bounds()
	assert.InDelta(t, 0, b.Min.Z, 1e-9)
	assert.InDelta(t, 3, b.Max.Z, 1e-9)
}

func TestConvertSeparate(t *testing.T) {
	rec := postJSON(t, Handler(), "/api/convert-stl", &ConvertRequest{
		SVGContent: twoSquares,
		ExportType: "separate",
		BaseLayer:  &BaseLayer{Height: 1, Color: "#888888"},
		Mirror:     &Mirror{X: true},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stl-layers.zip")

	data := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"red-layer.stl", "lime-layer.stl", "base-layer.stl"}, names)
}

func TestConvertErrors(t *testing.T) {
	h := Handler()
	cases := []struct {
		name string
		body any
	}{
		{"no content", &ConvertRequest{}},
		{"not svg", &ConvertRequest{SVGContent: "<html/>"}},
		{"no paths", &ConvertRequest{SVGContent: "<svg><g/></svg>"}},
		{"bad depth", &ConvertRequest{SVGContent: twoSquares, ColorDepths: map[string]float64{"ff0000": -1}}},
		{"bad depth key", &ConvertRequest{SVGContent: twoSquares, ColorDepths: map[string]float64{"reddish": 1}}},
		{"bad export", &ConvertRequest{SVGContent: twoSquares, ExportType: "both"}},
		{"bad format", &ConvertRequest{SVGContent: twoSquares, Format: "obj"}},
		{"bad quality", &ConvertRequest{SVGContent: twoSquares, QualitySettings: &QualitySettings{CurveSegments: -2}}},
		{"bad base", &ConvertRequest{SVGContent: twoSquares, BaseLayer: &BaseLayer{Height: 0}}},
		{"not json", "{"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if s, ok := c.body.(string); ok {
				req := httptest.NewRequest(http.MethodPost, "/api/convert-stl", strings.NewReader(s))
				rec = httptest.NewRecorder()
				h.ServeHTTP(rec, req)
			} else {
				rec = postJSON(t, h, "/api/convert-stl", c.body)
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			decodeError(t, rec)
		})
	}
}

func TestDisabledBase(t *testing.T) {
	off := false
	c := &ConvertRequest{SVGContent: twoSquares, BaseLayer: &BaseLayer{Enabled: &off}}
	req, err := c.Request()
	require.NoError(t, err)
	assert.Nil(t, req.Base)
}

func TestMethodNotAllowed(t *testing.T) {
	for _, path := range []string{"/api/convert-stl", "/api/layers", "/api/vectorize"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
		decodeError(t, rec)
	}
}

func TestBodyLimit(t *testing.T) {
	s := &Server{MaxBody: 100}
	rec := postJSON(t, s.Handler(), "/api/convert-stl", &ConvertRequest{
		SVGContent: strings.Repeat(" ", 200) + twoSquares,
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	decodeError(t, rec)
}

func TestLayers(t *testing.T) {
	rec := postJSON(t, Handler(), "/api/layers", &LayersRequest{SVGContent: twoSquares})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LayersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []LayerJSON{
		{Color: "#ff0000", Name: "Red", Depth: 2, PathCount: 1},
		{Color: "#00ff00", Name: "Lime", Depth: 2, PathCount: 1},
	}, resp.Data.Colors)

	rec = postJSON(t, Handler(), "/api/layers", &LayersRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func upload(t *testing.T, img image.Image, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if img != nil {
		fw, err := mw.CreateFormFile("image", "picture.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, img))
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/vectorize", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestVectorize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			c := color.RGBA{R: 255, A: 255}
			if x >= 4 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, upload(t, img, map[string]string{"colorCount": "2"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp VectorizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.ElementsMatch(t, []string{"#ff0000", "#0000ff"}, resp.Data.Palette)

	// the result can be fed back into the layers endpoint
	rec = postJSON(t, Handler(), "/api/layers", &LayersRequest{SVGContent: resp.Data.SVG})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestVectorizeErrors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for _, req := range []*http.Request{
		upload(t, nil, nil),
		upload(t, img, map[string]string{"colorCount": "many"}),
		upload(t, img, map[string]string{"colorCount": "0"}),
		upload(t, img, nil), // fully transparent
	} {
		rec := httptest.NewRecorder()
		Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		decodeError(t, rec)
	}
}
