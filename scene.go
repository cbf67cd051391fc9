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
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/extrude/mesh"
	"seehuhn.de/go/extrude/shape"
)

// Slab describes the role of a solid in the scene.  It is one of
// [MainSlab], [OverlapSlab] or [FoundationSlab].
type Slab interface {
	// Layer returns the key of the file the slab is exported to.
	Layer() ColorKey

	// ZRange returns the vertical extent of the slab in millimetres.
	ZRange() (z0, z1 float64)

	isSlab()
}

// MainSlab is the visible body of a colour, from z=0 to z=Depth.
type MainSlab struct {
	Color ColorKey
	Depth float64
}

// OverlapSlab is a thin slab of a colour, from z=-Overlap to z=+Overlap.
// It overlaps the bottom of the main slab, so that neighbouring colours
// fuse when printed.
type OverlapSlab struct {
	Color   ColorKey
	Overlap float64
}

// FoundationSlab is the shared base plate below all colours.  Its top
// face is at z=Top, which is below every overlap slab.
//
// Compose sets Top to -3 times the overlap amount while the main slabs
// still start at z=0, so the plate is separated from the colours by an
// empty gap of that height.  With an overlap amount of zero the plate
// touches the colours.
type FoundationSlab struct {
	Color  ColorKey
	Height float64
	Top    float64
}

func (s MainSlab) Layer() ColorKey     { return s.Color }
func (s OverlapSlab) Layer() ColorKey  { return s.Color }
func (FoundationSlab) Layer() ColorKey { return BaseKey }

func (s MainSlab) ZRange() (float64, float64)       { return 0, s.Depth }
func (s OverlapSlab) ZRange() (float64, float64)    { return -s.Overlap, s.Overlap }
func (s FoundationSlab) ZRange() (float64, float64) { return s.Top - s.Height, s.Top }

func (MainSlab) isSlab()       {}
func (OverlapSlab) isSlab()    {}
func (FoundationSlab) isSlab() {}

// Solid is a mesh together with its role in the scene.
type Solid struct {
	Slab Slab
	Mesh *mesh.Mesh
}

// SceneOptions control how the solids of a scene are generated and
// placed.
type SceneOptions struct {
	Quality Quality
	Base    *BaseLayer // nil for per-colour overlap slabs
	Mirror  Mirror
	Up      UpAxis
}

func (o *SceneOptions) validate() error {
	if err := o.Quality.Validate(); err != nil {
		return err
	}
	if o.Base != nil {
		if err := o.Base.Validate(); err != nil {
			return err
		}
	}
	if o.Up != UpZ && o.Up != UpY {
		return fmt.Errorf("%w: unknown up axis %d", ErrParam, int(o.Up))
	}
	return nil
}

type sceneLayer struct {
	color   ColorKey
	shapes  []*shape.Shape
	main    Solid
	overlap *Solid // nil if a foundation is used
}

// Scene holds the solids of all colours of one conversion.
//
// Solids are stored in document coordinates, placed vertically but not
// mirrored, centred or scaled.  These global transformations are applied
// when the solids are read using [Scene.Solids] or [Scene.Groups].
type Scene struct {
	opts       SceneOptions
	layers     []*sceneLayer
	index      map[ColorKey]int
	foundation *Solid
}

// Compose extrudes all shapes of the registry and arranges the resulting
// solids.  The registry is only read; later changes to the registry do not
// affect the scene.
func Compose(reg *Registry, opts SceneOptions) (*Scene, error) {
	return compose(context.Background(), reg, opts)
}

func compose(ctx context.Context, reg *Registry, opts SceneOptions) (*Scene, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := Logger()

	s := &Scene{
		opts:  opts,
		index: make(map[ColorKey]int, reg.Len()),
	}
	for _, l := range reg.layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sl := &sceneLayer{
			color:  l.color,
			shapes: l.shapes,
		}
		if err := s.build(sl, l.depth); err != nil {
			return nil, err
		}
		s.index[l.color] = len(s.layers)
		s.layers = append(s.layers, sl)
		log.Debug("extruded colour",
			"color", l.color,
			"shapes", len(l.shapes),
			"depth", l.depth,
			"triangles", sl.main.Mesh.NumTriangles())
	}

	if base := opts.Base; base != nil {
		key, _ := ParseColorKey(string(base.Color))
		slab := FoundationSlab{
			Color:  key,
			Height: base.Height,
			Top:    -3 * opts.Quality.OverlapAmount,
		}
		m := &mesh.Mesh{}
		for _, l := range s.layers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			part, err := extrudeShapes(l.shapes, slab, opts.Quality.CurveSegments)
			if err != nil {
				return nil, fmt.Errorf("base layer: %w", err)
			}
			m.Append(part)
		}
		s.foundation = &Solid{Slab: slab, Mesh: m}
		log.Debug("extruded base layer",
			"color", key,
			"height", base.Height,
			"triangles", m.NumTriangles())
	}
	return s, nil
}

// build (re-)generates the main and overlap solids of one colour.
func (s *Scene) build(l *sceneLayer, depth float64) error {
	segs := s.opts.Quality.CurveSegments

	main := MainSlab{Color: l.color, Depth: depth}
	m, err := extrudeShapes(l.shapes, main, segs)
	if err != nil {
		return fmt.Errorf("colour %s: %w", l.color, err)
	}
	l.main = Solid{Slab: main, Mesh: m}

	l.overlap = nil
	if o := s.opts.Quality.OverlapAmount; s.opts.Base == nil && o > 0 {
		overlap := OverlapSlab{Color: l.color, Overlap: o}
		m, err := extrudeShapes(l.shapes, overlap, segs)
		if err != nil {
			return fmt.Errorf("colour %s: overlap: %w", l.color, err)
		}
		l.overlap = &Solid{Slab: overlap, Mesh: m}
	}
	return nil
}

// extrudeShapes extrudes every shape over the vertical range of the slab
// and merges the results into one mesh.
func extrudeShapes(shapes []*shape.Shape, slab Slab, curveSegments int) (*mesh.Mesh, error) {
	z0, z1 := slab.ZRange()
	res := &mesh.Mesh{}
	for i, sh := range shapes {
		m, err := mesh.Extrude(sh, z1-z0, curveSegments)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		if z0 != 0 {
			m = m.Translate(r3.Vec{Z: z0})
		}
		res.Append(m)
	}
	return res, nil
}

// Update changes the depth of one colour and regenerates the solids of
// this colour from the retained shapes.  The return value is false if the
// colour is not part of the scene; in this case nothing is changed.
func (s *Scene) Update(depth float64, key ColorKey) (bool, error) {
	key = canonical(key)
	if err := checkDepth(key, depth); err != nil {
		return false, err
	}
	i, ok := s.index[key]
	if !ok {
		return false, nil
	}
	if err := s.build(s.layers[i], depth); err != nil {
		return false, err
	}
	return true, nil
}

// Layers lists the colours of the scene in registration order.
func (s *Scene) Layers() []LayerInfo {
	res := make([]LayerInfo, len(s.layers))
	for i, l := range s.layers {
		res[i] = LayerInfo{
			Color:      l.color,
			Depth:      l.main.Slab.(MainSlab).Depth,
			ShapeCount: len(l.shapes),
		}
	}
	return res
}

// Options returns the options the scene was composed with.
func (s *Scene) Options() SceneOptions {
	return s.opts
}

// Group is the set of solids which are exported into one file.
type Group struct {
	Key    ColorKey
	Solids []Solid
}

// Groups returns the transformed solids, grouped by colour in
// registration order.  The foundation, if any, forms the last group.
func (s *Scene) Groups() []Group {
	f, flip := s.placement()
	place := func(sol Solid) Solid {
		return Solid{Slab: sol.Slab, Mesh: sol.Mesh.Transform(f, flip)}
	}

	res := make([]Group, 0, len(s.layers)+1)
	for _, l := range s.layers {
		g := Group{Key: l.color, Solids: []Solid{place(l.main)}}
		if l.overlap != nil {
			g.Solids = append(g.Solids, place(*l.overlap))
		}
		res = append(res, g)
	}
	if s.foundation != nil {
		res = append(res, Group{Key: BaseKey, Solids: []Solid{place(*s.foundation)}})
	}
	return res
}

// Solids returns all transformed solids of the scene.
func (s *Scene) Solids() []Solid {
	var res []Solid
	for _, g := range s.Groups() {
		res = append(res, g.Solids...)
	}
	return res
}

// Bounds returns the bounding box of the transformed scene.
func (s *Scene) Bounds() r3.Box {
	var meshes []*mesh.Mesh
	for _, sol := range s.Solids() {
		meshes = append(meshes, sol.Mesh)
	}
	box, _ := unionBounds(meshes)
	return box
}

// centre returns the centre of the bounding box of all outlines, in
// document coordinates.  Fallback shapes, which stand in for unreadable
// paths, only count if there is nothing else.
func (s *Scene) centre() (vec.Vec2, bool) {
	segs := s.opts.Quality.CurveSegments
	var box rect.Rect
	found := false
	for _, useFallback := range []bool{false, true} {
		for _, l := range s.layers {
			for _, sh := range l.shapes {
				if sh.IsFallback() != useFallback {
					continue
				}
				cc := sh.Contours(segs)
				if len(cc) == 0 {
					continue
				}
				b := shape.ContourBounds(cc)
				if !found {
					box = b
					found = true
					continue
				}
				box.LLx = min(box.LLx, b.LLx)
				box.LLy = min(box.LLy, b.LLy)
				box.URx = max(box.URx, b.URx)
				box.URy = max(box.URy, b.URy)
			}
		}
		if found {
			break
		}
	}
	if !found {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: (box.LLx + box.URx) / 2, Y: (box.LLy + box.URy) / 2}, true
}

// placement returns the global transformation of the scene.  In order,
// the scene is mirrored, centred on the bounding box of the mirrored
// scene, scaled in x and y, and rotated so that the extrusion direction
// becomes the up axis.  The second return value tells whether the
// transformation reverses orientation.
func (s *Scene) placement() (func(r3.Vec) r3.Vec, bool) {
	mx, my := 1.0, 1.0
	if s.opts.Mirror.X {
		mx = -1
	}
	if s.opts.Mirror.Y {
		my = -1
	}

	var cx, cy float64
	if c, ok := s.centre(); ok {
		cx, cy = mx*c.X, my*c.Y
	}

	scale := s.opts.Quality.ScaleFactor
	up := s.opts.Up
	f := func(p r3.Vec) r3.Vec {
		x := (mx*p.X - cx) * scale
		y := (my*p.Y - cy) * scale
		if up == UpY {
			return r3.Vec{X: x, Y: p.Z, Z: -y}
		}
		return r3.Vec{X: x, Y: y, Z: p.Z}
	}
	return f, s.opts.Mirror.X != s.opts.Mirror.Y
}

// unionBounds returns the bounding box of all non-empty meshes.  The
// second return value is false if all meshes are empty.
func unionBounds(meshes []*mesh.Mesh) (r3.Box, bool) {
	var box r3.Box
	found := false
	for _, m := range meshes {
		if m.Empty() {
			continue
		}
		b := m.Bounds()
		if !found {
			box = b
			found = true
		} else {
			box = box.Union(b)
		}
	}
	return box, found
}
