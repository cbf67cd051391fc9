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

package shape

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Contour is a closed polyline.  The last point connects back to the
// first one; the closing point is not repeated.
type Contour []vec.Vec2

// Numerical tolerances for contour clean-up.
const (
	// samePointThreshold is the distance below which two consecutive
	// points are merged.
	samePointThreshold = 1e-9

	// collinearThreshold is the relative cross product magnitude below
	// which a point between its neighbours is considered redundant.
	collinearThreshold = 1e-12

	// minAreaThreshold is the absolute area below which a contour is
	// considered degenerate.
	minAreaThreshold = 1e-12
)

// clean removes duplicate and collinear points.  It returns nil if the
// remaining contour is degenerate.
func (c Contour) clean() Contour {
	if len(c) < 3 {
		return nil
	}

	out := make(Contour, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && p.Sub(out[len(out)-1]).Length() < samePointThreshold {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Sub(out[len(out)-1]).Length() < samePointThreshold {
		out = out[:len(out)-1]
	}

	// Drop points which lie on the straight line between their neighbours.
	// Repeat until stable, since each removal can expose a new one.
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; {
			a := out[(i+len(out)-1)%len(out)]
			b := out[i]
			d := out[(i+1)%len(out)]
			u := b.Sub(a)
			v := d.Sub(b)
			scale := u.Length() * v.Length()
			if math.Abs(cross(u, v)) <= collinearThreshold*scale && dot(u, v) > 0 {
				out = slices.Delete(out, i, i+1)
				changed = true
				continue
			}
			i++
		}
	}

	// NaN areas fail the comparison; infinite ones come from overflowing
	// coordinates.
	a := out.Area()
	if len(out) < 3 || !(math.Abs(a) >= minAreaThreshold) || math.IsInf(a, 0) {
		return nil
	}
	return out
}

// Area returns the signed area of the contour.  The area is positive for
// counter-clockwise contours, in a coordinate system where y points up.
func (c Contour) Area() float64 {
	var sum float64
	n := len(c)
	for i := range n {
		p := c[i]
		q := c[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Contains reports whether p lies inside the contour, using the even-odd
// rule.  Points exactly on the boundary may be reported either way.
func (c Contour) Contains(p vec.Vec2) bool {
	inside := false
	n := len(c)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := c[i]
		b := c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Reversed returns a copy of the contour with the opposite orientation.
// The first point is kept in place.
func (c Contour) Reversed() Contour {
	if len(c) == 0 {
		return nil
	}
	res := make(Contour, len(c))
	res[0] = c[0]
	for i := 1; i < len(c); i++ {
		res[i] = c[len(c)-i]
	}
	return res
}

// interiorPoint returns a point which lies strictly inside the contour,
// close to its first vertex.  It is used to test the nesting of contours
// without being confused by shared boundary points.
func (c Contour) interiorPoint() vec.Vec2 {
	n := len(c)
	for i := range n {
		a := c[(i+n-1)%n]
		b := c[i]
		d := c[(i+1)%n]
		centroid := a.Add(b).Add(d).Mul(1.0 / 3)
		// Nudge towards b so that the point stays close to the boundary
		// of a thin triangle, but remains inside it.
		q := b.Add(centroid.Sub(b).Mul(0.5))
		if c.Contains(q) {
			return q
		}
	}
	return c[0]
}

// Polygon is an outer contour together with the holes it encloses.
// The outer contour runs counter-clockwise and the holes run clockwise.
type Polygon struct {
	Outer Contour
	Holes []Contour
}

// NumPoints returns the total number of vertices in the polygon.
func (p Polygon) NumPoints() int {
	n := len(p.Outer)
	for _, h := range p.Holes {
		n += len(h)
	}
	return n
}

// Points returns the vertices of the outer contour followed by the
// vertices of every hole, in order.  Triangle indices produced for the
// polygon refer to this sequence.
func (p Polygon) Points() []vec.Vec2 {
	res := make([]vec.Vec2, 0, p.NumPoints())
	res = append(res, p.Outer...)
	for _, h := range p.Holes {
		res = append(res, h...)
	}
	return res
}

// Polygons groups contours into polygons with holes.  A contour enclosed
// by an odd number of other contours is a hole of the innermost contour
// enclosing it; all other contours are outer boundaries.  The order of the
// result follows the order of the outer contours in the input.
func Polygons(cc []Contour) []Polygon {
	n := len(cc)
	area := make([]float64, n)
	for i, c := range cc {
		area[i] = math.Abs(c.Area())
	}

	// parent[i] is the smallest contour enclosing contour i, or -1.
	depth := make([]int, n)
	parent := make([]int, n)
	for i, c := range cc {
		parent[i] = -1
		q := c.interiorPoint()
		for j, d := range cc {
			if i == j || area[j] <= area[i] || !d.Contains(q) {
				continue
			}
			depth[i]++
			if parent[i] < 0 || area[j] < area[parent[i]] {
				parent[i] = j
			}
		}
	}

	index := make([]int, n)
	var res []Polygon
	for i, c := range cc {
		if depth[i]%2 != 0 {
			continue
		}
		outer := c
		if outer.Area() < 0 {
			outer = outer.Reversed()
		}
		index[i] = len(res)
		res = append(res, Polygon{Outer: outer})
	}
	for i, c := range cc {
		if depth[i]%2 == 0 || parent[i] < 0 {
			continue
		}
		hole := c
		if hole.Area() > 0 {
			hole = hole.Reversed()
		}
		k := index[parent[i]]
		res[k].Holes = append(res[k].Holes, hole)
	}
	return res
}

func cross(u, v vec.Vec2) float64 {
	return u.X*v.Y - u.Y*v.X
}

func dot(u, v vec.Vec2) float64 {
	return u.X*v.X + u.Y*v.Y
}
