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
	"cmp"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/extrude/shape"
)

// Triangulate splits a polygon with holes into counter-clockwise
// triangles.  The indices refer to the sequence returned by p.Points().
//
// Holes are first joined to the outer contour by bridge edges, giving a
// single weakly simple ring, which is then cut into triangles by ear
// clipping.  The result only depends on the input, never on map order or
// similar, so that repeated runs give identical meshes.
func Triangulate(p shape.Polygon) [][3]int {
	pts := p.Points()

	ring := make([]int, len(p.Outer))
	for i := range ring {
		ring[i] = i
	}

	holes := make([][]int, len(p.Holes))
	off := len(p.Outer)
	for k, h := range p.Holes {
		idx := make([]int, len(h))
		for i := range idx {
			idx[i] = off + i
		}
		holes[k] = idx
		off += len(h)
	}

	// Bridge the holes from right to left, so that each bridge can reach
	// the already merged part of the ring.
	slices.SortStableFunc(holes, func(a, b []int) int {
		return -cmp.Compare(maxX(pts, a), maxX(pts, b))
	})
	for k, h := range holes {
		ring = bridgeHole(pts, ring, h, holes[k+1:])
	}

	return earClip(pts, ring)
}

func maxX(pts []vec.Vec2, idx []int) float64 {
	m := pts[idx[0]].X
	for _, i := range idx[1:] {
		m = max(m, pts[i].X)
	}
	return m
}

// orient returns twice the signed area of the triangle pqr.  The value is
// positive if r lies to the left of the directed line from p to q.
func orient(p, q, r vec.Vec2) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// bridgeHole joins a clockwise hole to the counter-clockwise ring.  The
// hole vertex with the largest x coordinate is connected to the closest
// ring vertex which can see it.
func bridgeHole(pts []vec.Vec2, ring, hole []int, pending [][]int) []int {
	mPos := 0
	for i, idx := range hole {
		if pts[idx].X > pts[hole[mPos]].X {
			mPos = i
		}
	}
	m := pts[hole[mPos]]

	cand := make([]int, len(ring))
	for i := range cand {
		cand[i] = i
	}
	dist := func(k int) float64 {
		d := pts[ring[k]].Sub(m)
		return d.X*d.X + d.Y*d.Y
	}
	slices.SortStableFunc(cand, func(a, b int) int {
		return cmp.Compare(dist(a), dist(b))
	})

	best := cand[0]
	for _, k := range cand {
		if visible(pts, ring, k, m, hole, pending) {
			best = k
			break
		}
	}

	res := make([]int, 0, len(ring)+len(hole)+2)
	res = append(res, ring[:best+1]...)
	for i := range len(hole) + 1 {
		res = append(res, hole[(mPos+i)%len(hole)])
	}
	res = append(res, ring[best:]...)
	return res
}

// visible reports whether the segment from ring vertex k to m lies inside
// the polygon without crossing any edge.
func visible(pts []vec.Vec2, ring []int, k int, m vec.Vec2, hole []int, pending [][]int) bool {
	n := len(ring)
	v := pts[ring[k]]
	if v == m {
		return false
	}

	// The bridge must leave v into the interior of the ring.
	a := pts[ring[(k+n-1)%n]]
	b := pts[ring[(k+1)%n]]
	if orient(a, v, b) >= 0 {
		if orient(a, v, m) <= 0 || orient(v, b, m) <= 0 {
			return false
		}
	} else if orient(a, v, m) <= 0 && orient(v, b, m) <= 0 {
		return false
	}

	crosses := func(loop []int) bool {
		l := len(loop)
		for i := range l {
			p := pts[loop[i]]
			q := pts[loop[(i+1)%l]]
			if p == v || q == v || p == m || q == m {
				continue
			}
			if segmentsIntersect(v, m, p, q) {
				return true
			}
		}
		return false
	}
	if crosses(ring) || crosses(hole) {
		return false
	}
	for _, h := range pending {
		if crosses(h) {
			return false
		}
	}
	return true
}

// segmentsIntersect reports whether the closed segments p1q1 and p2q2 have
// a point in common.
func segmentsIntersect(p1, q1, p2, q2 vec.Vec2) bool {
	d1 := orient(p2, q2, p1)
	d2 := orient(p2, q2, q1)
	d3 := orient(p1, q1, p2)
	d4 := orient(p1, q1, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	onSegment := func(p, q, r vec.Vec2) bool {
		return min(p.X, q.X) <= r.X && r.X <= max(p.X, q.X) &&
			min(p.Y, q.Y) <= r.Y && r.Y <= max(p.Y, q.Y)
	}
	switch {
	case d1 == 0 && onSegment(p2, q2, p1):
		return true
	case d2 == 0 && onSegment(p2, q2, q1):
		return true
	case d3 == 0 && onSegment(p1, q1, p2):
		return true
	case d4 == 0 && onSegment(p1, q1, q2):
		return true
	}
	return false
}

// earClip triangulates a counter-clockwise, weakly simple ring.
func earClip(pts []vec.Vec2, ring []int) [][3]int {
	idx := append([]int(nil), ring...)
	tris := make([][3]int, 0, max(len(idx)-2, 0))

	i := 0
	stall := 0
	for len(idx) > 3 {
		n := len(idx)
		if stall >= n {
			idx = forceClip(pts, idx, &tris)
			stall = 0
			i = 0
			continue
		}

		i %= n
		ip := (i + n - 1) % n
		in := (i + 1) % n
		if isEar(pts, idx, ip, i, in) {
			tris = append(tris, [3]int{idx[ip], idx[i], idx[in]})
			idx = slices.Delete(idx, i, i+1)
			if i > 0 {
				i--
			}
			stall = 0
			continue
		}
		i++
		stall++
	}
	// The last triangle is kept even if it is degenerate, since its edges
	// are shared with the side walls.  Repeated indices only occur along a
	// bridge, whose two edges cancel.
	if len(idx) == 3 && idx[0] != idx[1] && idx[1] != idx[2] && idx[2] != idx[0] {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func isEar(pts []vec.Vec2, idx []int, ip, i, in int) bool {
	a := pts[idx[ip]]
	b := pts[idx[i]]
	c := pts[idx[in]]
	if orient(a, b, c) <= 0 {
		return false
	}
	for j, k := range idx {
		if j == ip || j == i || j == in {
			continue
		}
		p := pts[k]
		if p == a || p == b || p == c {
			continue
		}
		if orient(a, b, p) >= 0 && orient(b, c, p) >= 0 && orient(c, a, p) >= 0 {
			return false
		}
	}
	return true
}

// forceClip makes progress when no ear can be found, which only happens
// for rings with numerical problems.  Spikes along a bridge are removed
// first.  Otherwise a degenerate vertex is clipped if there is one, or
// else the most convex vertex.  The clipped triangle is emitted even if
// its area is zero, so that every ring edge stays part of a triangle.
func forceClip(pts []vec.Vec2, idx []int, tris *[][3]int) []int {
	n := len(idx)
	best := -1
	var bestArea float64
	for i := range n {
		if j := (i + 1) % n; idx[(i+n-1)%n] == idx[j] {
			// a spike along a bridge: both edges cancel
			if j == 0 {
				return idx[1 : n-1]
			}
			return slices.Delete(idx, i, j+1)
		}
		a := pts[idx[(i+n-1)%n]]
		b := pts[idx[i]]
		c := pts[idx[(i+1)%n]]
		area := orient(a, b, c)
		if area == 0 {
			best = i
			break
		}
		if best < 0 || area > bestArea {
			best = i
			bestArea = area
		}
	}
	*tris = append(*tris, [3]int{idx[(best+n-1)%n], idx[best], idx[(best+1)%n]})
	return slices.Delete(idx, best, best+1)
}
