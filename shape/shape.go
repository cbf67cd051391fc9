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

// Package shape holds closed planar outlines and converts them into
// polygons with holes, ready for triangulation.
//
// A [Shape] keeps the exact outline as a [path.Data] value.  Curves are
// only approximated when the outline is flattened, and the approximation
// uses a fixed number of segments per curve so that the same input always
// gives the same polygon.
package shape

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Shape is a closed 2D outline made of one or more sub-contours.
// Sub-contours which are enclosed by another sub-contour are holes.
//
// A Shape must not be modified after it has been created.
type Shape struct {
	Path *path.Data

	fallback bool
}

// New wraps a path as a Shape.
func New(p *path.Data) *Shape {
	if p == nil {
		p = &path.Data{}
	}
	return &Shape{Path: p}
}

// Empty reports whether the shape contains no drawing segments.
func (s *Shape) Empty() bool {
	if s == nil || s.Path == nil {
		return true
	}
	for _, cmd := range s.Path.Cmds {
		switch cmd {
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			return false
		}
	}
	return true
}

// fallbackSize is the edge length of the square returned by Fallback.
const fallbackSize = 1.0

// Fallback returns the small square which stands in for a path whose
// commands could not be interpreted.  The square sits at the origin of
// shape space, which is usually away from the rest of the drawing; use
// [Shape.IsFallback] to leave it out of layout decisions.
func Fallback() *Shape {
	p := &path.Data{
		Cmds: []path.Command{
			path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose,
		},
		Coords: []vec.Vec2{
			{X: 0, Y: 0},
			{X: fallbackSize, Y: 0},
			{X: fallbackSize, Y: fallbackSize},
			{X: 0, Y: fallbackSize},
		},
	}
	return &Shape{Path: p, fallback: true}
}

// IsFallback reports whether s was created by [Fallback].
func (s *Shape) IsFallback() bool {
	return s != nil && s.fallback
}

// Contours flattens the shape into closed polylines.  Every quadratic or
// cubic segment is replaced by exactly curveSegments straight segments.
// Sub-contours are closed implicitly.  Contours with fewer than three
// distinct points or with zero area are dropped.
func (s *Shape) Contours(curveSegments int) []Contour {
	if s == nil || s.Path == nil {
		return nil
	}
	n := max(curveSegments, 1)

	var res []Contour
	var cur Contour
	finish := func() {
		if c := cur.clean(); c != nil {
			res = append(res, c)
		}
		cur = nil
	}

	var current vec.Vec2
	var subpath vec.Vec2
	p := s.Path
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			current = p.Coords[coordIdx]
			subpath = current
			cur = append(cur, current)
			coordIdx++

		case path.CmdLineTo:
			if cur == nil {
				cur = append(cur, current)
			}
			current = p.Coords[coordIdx]
			cur = append(cur, current)
			coordIdx++

		case path.CmdQuadTo:
			if cur == nil {
				cur = append(cur, current)
			}
			cur = appendQuadratic(cur, current, p.Coords[coordIdx], p.Coords[coordIdx+1], n)
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			if cur == nil {
				cur = append(cur, current)
			}
			cur = appendCubic(cur, current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], n)
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			finish()
			current = subpath
		}
	}
	finish()
	return res
}

// appendQuadratic appends n points along a quadratic Bézier curve,
// excluding the start point p0.
func appendQuadratic(dst Contour, p0, p1, p2 vec.Vec2, n int) Contour {
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)²P0 + 2(1-t)tP1 + t²P2
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		dst = append(dst, pt)
	}
	dst[len(dst)-1] = p2
	return dst
}

// appendCubic appends n points along a cubic Bézier curve,
// excluding the start point p0.
func appendCubic(dst Contour, p0, p1, p2, p3 vec.Vec2, n int) Contour {
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		// B(t) = (1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
		omt := 1 - t
		omt2 := omt * omt
		omt3 := omt2 * omt
		t2 := t * t
		t3 := t2 * t
		pt := p0.Mul(omt3).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t3))
		dst = append(dst, pt)
	}
	dst[len(dst)-1] = p3
	return dst
}

// Bounds returns the bounding box of the flattened shape.
// The zero rectangle is returned for an empty shape.
func (s *Shape) Bounds(curveSegments int) rect.Rect {
	return ContourBounds(s.Contours(curveSegments))
}

// ContourBounds returns the bounding box of all points in the contours.
func ContourBounds(cc []Contour) rect.Rect {
	first := true
	var b rect.Rect
	for _, c := range cc {
		for _, p := range c {
			if first {
				b = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
				first = false
				continue
			}
			b.LLx = math.Min(b.LLx, p.X)
			b.LLy = math.Min(b.LLy, p.Y)
			b.URx = math.Max(b.URx, p.X)
			b.URy = math.Max(b.URy, p.Y)
		}
	}
	return b
}
