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

package mesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/extrude/shape"
)

var (
	// ErrDepth is returned when an extrusion depth is not strictly positive.
	ErrDepth = errors.New("extrusion depth must be positive")

	// ErrCurveSegments is returned when fewer than one segment per curve is
	// requested.
	ErrCurveSegments = errors.New("curve segments must be at least 1")
)

// Extrude sweeps the shape along the z axis, from z=0 to z=depth.  Each
// curve segment of the outline is replaced by curveSegments straight
// segments.  Sub-contours enclosed by other sub-contours become holes.
//
// A shape without any area gives an empty mesh, not an error.
func Extrude(s *shape.Shape, depth float64, curveSegments int) (*Mesh, error) {
	if !(depth > 0) || math.IsInf(depth, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrDepth, depth)
	}
	if curveSegments < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrCurveSegments, curveSegments)
	}

	m := &Mesh{}
	for _, p := range shape.Polygons(s.Contours(curveSegments)) {
		m.Append(Prism(p, 0, depth))
	}
	return m, nil
}

// Prism builds the closed solid between z=z0 and z=z1 (z0 < z1) whose
// cross-section is the polygon p.
func Prism(p shape.Polygon, z0, z1 float64) *Mesh {
	pts := p.Points()
	n := len(pts)

	m := &Mesh{
		Vertices: make([]r3.Vec, 2*n),
	}
	for i, q := range pts {
		m.Vertices[i] = r3.Vec{X: q.X, Y: q.Y, Z: z0}
		m.Vertices[i+n] = r3.Vec{X: q.X, Y: q.Y, Z: z1}
	}

	caps := Triangulate(p)
	m.Faces = make([][3]int, 0, 2*len(caps)+2*n)
	for _, t := range caps {
		m.Faces = append(m.Faces, [3]int{t[0] + n, t[1] + n, t[2] + n})
	}
	for _, t := range caps {
		m.Faces = append(m.Faces, [3]int{t[0], t[2], t[1]})
	}

	// Walls.  The outer ring runs counter-clockwise and holes run
	// clockwise, so the material is always to the left of each edge.
	addRing := func(off, l int) {
		for i := range l {
			a := off + i
			b := off + (i+1)%l
			m.Faces = append(m.Faces,
				[3]int{a, b, b + n},
				[3]int{a, b + n, a + n},
			)
		}
	}
	addRing(0, len(p.Outer))
	off := len(p.Outer)
	for _, h := range p.Holes {
		addRing(off, len(h))
		off += len(h)
	}

	return m
}
