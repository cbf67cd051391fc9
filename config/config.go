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
// Package config reads conversion jobs from YAML or TOML files.
//
// A job file holds everything a conversion needs except the input
// document.  Fields which are missing from the file keep the values of
// [Default].  Example in YAML:
//
//	depths:
//	  ff0000: 3
//	  "#00ff00": 1.5
//	quality:
//	  curve_segments: 12
//	  scale_factor: 0.5
//	base:
//	  height: 1
//	  color: "ffffff"
//	export: separate
//	format: ascii
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/extrude"
	"seehuhn.de/go/extrude/stl"
)

// Job describes one conversion.
type Job struct {
	Depths  map[string]float64 `yaml:"depths,omitempty" toml:"depths,omitempty"`
	Quality Quality            `yaml:"quality" toml:"quality"`
	Base    *Base              `yaml:"base,omitempty" toml:"base,omitempty"`
	Mirror  Mirror             `yaml:"mirror" toml:"mirror"`
	Export  string             `yaml:"export" toml:"export"`
	Format  string             `yaml:"format" toml:"format"`
	UpAxis  string             `yaml:"up_axis" toml:"up_axis"`

	// Raster input only: the number of colours to reduce the picture
	// to, and the maximal width or height before tracing.
	Colors  int `yaml:"colors" toml:"colors"`
	MaxSize int `yaml:"max_size" toml:"max_size"`
}

// Quality corresponds to [extrude.Quality].
type Quality struct {
	CurveSegments int     `yaml:"curve_segments" toml:"curve_segments"`
	ScaleFactor   float64 `yaml:"scale_factor" toml:"scale_factor"`
	OverlapAmount float64 `yaml:"overlap_amount" toml:"overlap_amount"`
}

// Base requests a foundation slab.
type Base struct {
	Height float64 `yaml:"height" toml:"height"`
	Color  string  `yaml:"color" toml:"color"`
}

// Mirror selects the mirrored axes.
type Mirror struct {
	X bool `yaml:"x" toml:"x"`
	Y bool `yaml:"y" toml:"y"`
}

// Format is a configuration file format.
type Format int

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	if f == TOML {
		return "toml"
	}
	return "yaml"
}

// FormatOf selects the file format from the file name extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("config: %s: unknown file type", name)
}

// Default returns the settings used when no job file is given.
func Default() *Job {
	q := extrude.DefaultQuality()
	return &Job{
		Quality: Quality{
			CurveSegments: q.CurveSegments,
			ScaleFactor:   q.ScaleFactor,
			OverlapAmount: q.OverlapAmount,
		},
		Export:  extrude.Combined.String(),
		Format:  stl.Binary.String(),
		UpAxis:  extrude.UpZ.String(),
		Colors:  8,
		MaxSize: 1024,
	}
}

// Load reads a job file.  The format is chosen by the file name extension.
func Load(name string) (*Job, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	job, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return job, nil
}

// Parse decodes a job in the given format.  Unknown keys are an error.
func Parse(data []byte, format Format) (*Job, error) {
	job := Default()
	switch format {
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(job); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(job); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Encode writes the job in the given format.
func (j *Job) Encode(w io.Writer, format Format) error {
	if format == TOML {
		return toml.NewEncoder(w).Encode(j)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(j); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks all settings of the job.
func (j *Job) Validate() error {
	_, err := j.Request(nil)
	if err != nil {
		return err
	}
	if j.Colors < 1 || j.Colors > 256 {
		return fmt.Errorf("%w: colors must be between 1 and 256", extrude.ErrParam)
	}
	if j.MaxSize < 1 {
		return fmt.Errorf("%w: max_size must be positive", extrude.ErrParam)
	}
	return nil
}

// Request converts the job into a conversion request for the given
// document.  Depths are checked by [extrude.Convert].
func (j *Job) Request(document []byte) (extrude.Request, error) {
	req := extrude.Request{
		Document: document,
		Depths:   j.Depths,
		Quality: extrude.Quality{
			CurveSegments: j.Quality.CurveSegments,
			ScaleFactor:   j.Quality.ScaleFactor,
			OverlapAmount: j.Quality.OverlapAmount,
		},
		Mirror: extrude.Mirror{X: j.Mirror.X, Y: j.Mirror.Y},
	}
	if err := req.Quality.Validate(); err != nil {
		return req, err
	}

	var err error
	if req.Mode, err = extrude.ParseExportMode(j.Export); err != nil {
		return req, err
	}
	if req.Up, err = extrude.ParseUpAxis(j.UpAxis); err != nil {
		return req, err
	}
	if req.Format, err = stl.ParseFormat(j.Format); err != nil {
		return req, fmt.Errorf("%w: %w", extrude.ErrParam, err)
	}
	if j.Base != nil {
		color := j.Base.Color
		if color == "" {
			color = "ffffff"
		}
		key, err := extrude.ParseColorKey(color)
		if err != nil {
			return req, err
		}
		req.Base = &extrude.BaseLayer{Height: j.Base.Height, Color: key}
		if err := req.Base.Validate(); err != nil {
			return req, err
		}
	}
	return req, nil
}
