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
	"log/slog"

	"seehuhn.de/go/extrude/shape"
	"seehuhn.de/go/extrude/svgdoc"
	"seehuhn.de/go/extrude/svgpath"
)

// LayerInfo summarises one colour layer.
type LayerInfo struct {
	Color      ColorKey
	Depth      float64
	ShapeCount int
}

type layer struct {
	color  ColorKey
	shapes []*shape.Shape
	depth  float64
}

// Registry groups shapes by colour.  Colours are kept in the order in
// which they were first registered.
//
// A Registry belongs to a single conversion and is not safe for
// concurrent use.
type Registry struct {
	layers []*layer
	index  map[ColorKey]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[ColorKey]int)}
}

// Register appends a shape to the layer of the given colour.  The layer is
// created with [DefaultDepth] if it does not exist yet.
func (r *Registry) Register(key ColorKey, s *shape.Shape) {
	key = canonical(key)
	i, ok := r.index[key]
	if !ok {
		i = len(r.layers)
		r.index[key] = i
		r.layers = append(r.layers, &layer{color: key, depth: DefaultDepth})
	}
	r.layers[i].shapes = append(r.layers[i].shapes, s)
}

// SetDepth changes the extrusion depth of a colour.  Colours which have
// not been registered are ignored.  An error is returned if depth is not
// a positive number.
func (r *Registry) SetDepth(key ColorKey, depth float64) error {
	key = canonical(key)
	if err := checkDepth(key, depth); err != nil {
		return err
	}
	if l := r.get(key); l != nil {
		l.depth = depth
	}
	return nil
}

// Has reports whether shapes of the given colour have been registered.
func (r *Registry) Has(key ColorKey) bool {
	return r.get(canonical(key)) != nil
}

// Depth returns the extrusion depth of a colour.
func (r *Registry) Depth(key ColorKey) (float64, bool) {
	l := r.get(canonical(key))
	if l == nil {
		return 0, false
	}
	return l.depth, true
}

// Shapes returns the shapes of a colour, in registration order.  The
// returned slice must not be modified.
func (r *Registry) Shapes(key ColorKey) []*shape.Shape {
	l := r.get(canonical(key))
	if l == nil {
		return nil
	}
	return l.shapes
}

// Colors returns the registered colours in registration order.
func (r *Registry) Colors() []ColorKey {
	res := make([]ColorKey, len(r.layers))
	for i, l := range r.layers {
		res[i] = l.color
	}
	return res
}

// Layers lists the colour layers in registration order.
func (r *Registry) Layers() []LayerInfo {
	res := make([]LayerInfo, len(r.layers))
	for i, l := range r.layers {
		res[i] = LayerInfo{Color: l.color, Depth: l.depth, ShapeCount: len(l.shapes)}
	}
	return res
}

// Len returns the number of colour layers.
func (r *Registry) Len() int {
	return len(r.layers)
}

// Clear removes all layers.
func (r *Registry) Clear() {
	r.layers = nil
	clear(r.index)
}

func (r *Registry) get(key ColorKey) *layer {
	i, ok := r.index[key]
	if !ok {
		return nil
	}
	return r.layers[i]
}

// AddDocument interprets every element of the document and registers the
// resulting shapes under the element's fill colour.  Problems with
// individual paths, and elements the parser skipped, do not stop the
// process: they are logged as warnings and counted in the return value.
func (r *Registry) AddDocument(doc *svgdoc.Document) int {
	log := Logger()
	for _, sk := range doc.Skipped {
		log.Warn("element skipped",
			slog.String("tag", sk.Tag),
			slog.String("fill", sk.Fill),
			slog.String("msg", sk.Reason))
	}
	problems := len(doc.Skipped)
	for _, e := range doc.Elements {
		s, diags := svgpath.Interpret(e.D, e.Transform)
		for _, d := range diags {
			var cmd string
			if d.Op != 0 {
				cmd = string(d.Op)
			}
			log.Warn("path data problem",
				slog.String("color", e.Fill),
				slog.Int("path", e.Index),
				slog.Int("offset", d.Offset),
				slog.String("cmd", cmd),
				slog.String("msg", d.Msg))
		}
		problems += len(diags)
		r.Register(ColorKey(e.Fill), s)
	}
	return problems
}
