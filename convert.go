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
package extrude

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"seehuhn.de/go/extrude/archive"
	"seehuhn.de/go/extrude/stl"
	"seehuhn.de/go/extrude/svgdoc"
)

// Request describes one conversion.
type Request struct {
	// Document is the SVG input.
	Document []byte

	// Depths maps colours, given as hex digits with or without '#', to
	// extrusion depths in millimetres.  Colours without an entry use
	// [DefaultDepth]; entries for colours not in the document are ignored.
	Depths map[string]float64

	// Quality settings.  The zero value selects [DefaultQuality].
	Quality Quality

	Base   *BaseLayer // optional foundation slab
	Mirror Mirror
	Up     UpAxis
	Mode   ExportMode
	Format stl.Format
}

// File is one output file of a conversion.
type File struct {
	Name string
	Data []byte
}

// Result is the outcome of a successful conversion.
type Result struct {
	// Files holds either one combined mesh file, or one archive with a
	// mesh file per colour.
	Files []File

	// Layers lists the colours of the document in order of appearance.
	Layers []LayerInfo

	// Diagnostics counts the problems found in individual paths.
	Diagnostics int
}

// Convert runs the whole conversion: the document is parsed, the shapes
// are extruded and arranged, and the solids are exported.
//
// The context is checked between colours; a cancelled conversion returns
// the context's error and no partial result.
func Convert(ctx context.Context, req Request) (*Result, error) {
	q := req.Quality
	if q == (Quality{}) {
		q = DefaultQuality()
	}
	opts := SceneOptions{
		Quality: q,
		Base:    req.Base,
		Mirror:  req.Mirror,
		Up:      req.Up,
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if req.Mode != Combined && req.Mode != Separate {
		return nil, fmt.Errorf("%w: unknown export mode %d", ErrParam, int(req.Mode))
	}
	if req.Format != stl.Binary && req.Format != stl.ASCII {
		return nil, fmt.Errorf("%w: unknown mesh format %d", ErrParam, int(req.Format))
	}
	depths := make(map[ColorKey]float64, len(req.Depths))
	for k, d := range req.Depths {
		key, err := ParseColorKey(k)
		if err != nil {
			return nil, err
		}
		if err := checkDepth(key, d); err != nil {
			return nil, err
		}
		depths[key] = d
	}

	reg, problems, err := Load(req.Document)
	if err != nil {
		return nil, err
	}
	for key, d := range depths {
		// cannot fail, depths are checked above
		_ = reg.SetDepth(key, d)
	}

	scene, err := compose(ctx, reg, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Layers:      scene.Layers(),
		Diagnostics: problems,
	}
	switch req.Mode {
	case Combined:
		data, err := ExportCombined(scene, req.Format)
		if err != nil {
			return nil, err
		}
		res.Files = []File{{Name: CombinedFilename, Data: data}}

	case Separate:
		layers, err := ExportByColor(scene, req.Format)
		if err != nil {
			return nil, err
		}
		entries := make([]archive.Entry, len(layers))
		for i, l := range layers {
			entries[i] = archive.Entry{Name: l.Name, Data: l.Data}
		}
		data, err := archive.Start(entries).Wait(ctx)
		if err != nil {
			return nil, err
		}
		res.Files = []File{{Name: ArchiveFilename, Data: data}}
	}

	Logger().Info("converted document",
		"colors", len(res.Layers),
		"mode", req.Mode,
		"format", req.Format,
		"problems", problems)
	return res, nil
}

// Inspect lists the colour layers of a document without extruding them.
func Inspect(document []byte) ([]LayerInfo, error) {
	reg, _, err := Load(document)
	if err != nil {
		return nil, err
	}
	return reg.Layers(), nil
}

// Load parses an SVG document into a new registry.  The second return
// value counts the problems found in individual paths.
func Load(document []byte) (*Registry, int, error) {
	if len(bytes.TrimSpace(document)) == 0 {
		return nil, 0, fmt.Errorf("%w: empty document", ErrInput)
	}
	doc, err := svgdoc.Parse(bytes.NewReader(document))
	if errors.Is(err, svgdoc.ErrNoPaths) {
		return nil, 0, fmt.Errorf("%w: no drawable paths", ErrInput)
	} else if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInput, err)
	}
	reg := NewRegistry()
	problems := reg.AddDocument(doc)
	return reg, problems, nil
}
