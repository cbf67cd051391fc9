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

package preview

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/extrude/svgdoc"
)

// flatness is the curve flattening tolerance in device pixels.
const flatness = 0.25

// minEdgeHeight is the smallest vertical extent of an edge which still
// contributes coverage.
const minEdgeHeight = 1e-10

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

// xAt returns the x coordinate of the edge's supporting line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// rasteriser computes anti-aliased coverage for filled outlines.
// Buffers are kept between calls, so one rasteriser should be reused for
// all elements of a picture.
//
// Every pixel of a scanline gets two accumulators: cover holds the signed
// vertical extent of all edge pieces inside the pixel column, area holds
// the part of this extent which lies to the right of the edge.  Summing
// cover from the left and adding area gives the signed winding coverage.
type rasteriser struct {
	ctm           matrix.Matrix // shape space to device space
	width, height int

	edges     []edge
	active    []int
	cover     []float32
	area      []float32
	crossings []float64

	// device space bounding box of the collected edges
	bbXMin, bbXMax float64
	bbYMin, bbYMax float64
}

func newRasteriser(width, height int) *rasteriser {
	return &rasteriser{
		ctm:    matrix.Identity,
		width:  width,
		height: height,
	}
}

// fill rasterises p and calls emit once for every scanline with non-zero
// coverage.  The coverage slice is only valid during the call.
func (r *rasteriser) fill(p *path.Data, rule svgdoc.FillRule, emit func(y, xMin int, coverage []float32)) {
	if !r.collect(p) {
		return
	}

	xMin := max(int(math.Floor(r.bbXMin)), 0)
	xMax := min(int(math.Floor(r.bbXMax))+1, r.width)
	yMin := max(int(math.Floor(r.bbYMin)), 0)
	yMax := min(int(math.Floor(r.bbYMax))+1, r.height)
	if xMin >= xMax || yMin >= yMax {
		return
	}
	n := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		yf, yNext := float64(y), float64(y+1)
		for next < len(r.edges) && r.edges[next].top() < yNext {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.bottom() <= yf {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if r.accumulate(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if rule == svgdoc.EvenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if cov, off := trimZeros(r.cover); cov != nil {
			emit(y, xMin+off, cov)
		}
	}
}

// collect walks the path and builds the device space edge list.  The
// result is false if the path produces no edges.
func (r *rasteriser) collect(p *path.Data) bool {
	r.edges = r.edges[:0]

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	// fills close open sub-paths implicitly
	if cur != start {
		r.addEdge(cur, start)
	}
	return len(r.edges) > 0
}

func (r *rasteriser) apply(p vec.Vec2) vec.Vec2 {
	m := r.ctm
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// linear applies the linear part of the transformation.
func (r *rasteriser) linear(v vec.Vec2) vec.Vec2 {
	m := r.ctm
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}
}

func (r *rasteriser) addEdge(p0, p1 vec.Vec2) {
	a, b := r.apply(p0), r.apply(p1)
	dy := b.Y - a.Y
	if math.Abs(dy) < minEdgeHeight {
		return
	}

	if len(r.edges) == 0 {
		r.bbXMin, r.bbXMax = min(a.X, b.X), max(a.X, b.X)
		r.bbYMin, r.bbYMax = min(a.Y, b.Y), max(a.Y, b.Y)
	} else {
		r.bbXMin = min(r.bbXMin, a.X, b.X)
		r.bbXMax = max(r.bbXMax, a.X, b.X)
		r.bbYMin = min(r.bbYMin, a.Y, b.Y)
		r.bbYMax = max(r.bbYMax, a.Y, b.Y)
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
// The number of segments is chosen from the device space deviation of the
// control point.
func (r *rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > flatness {
		n = int(math.Ceil(math.Sqrt(dev / flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the segment count.
func (r *rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if f := math.Sqrt(3 * m / (4 * flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// accumulate adds the part of e inside scanline y to the cover and area
// buffers, which are indexed relative to xMin.  The result reports
// whether anything was added.
func (r *rasteriser) accumulate(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), e.top())
	yBot := min(float64(y+1), e.bottom())
	if yBot <= yTop {
		return false
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(yTop), e.xAt(yBot)
	pixA := int(math.Floor(min(xa, xb)))
	pixB := int(math.Floor(max(xa, xb)))

	if pixA == pixB {
		r.add(e, yTop, yBot, sign, xMin, xMax)
		return true
	}

	// split the piece where it crosses pixel boundaries
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixA + 1; x <= pixB; x++ {
		yc := e.y0 + (float64(x)-e.x0)/e.dxdy
		if yc > yTop && yc < yBot {
			r.crossings = append(r.crossings, yc)
		}
	}
	slices.Sort(r.crossings)
	for i := 1; i < len(r.crossings); i++ {
		if r.crossings[i] > r.crossings[i-1] {
			r.add(e, r.crossings[i-1], r.crossings[i], sign, xMin, xMax)
		}
	}
	return true
}

// add records an edge piece between heights y0 < y1 which lies within a
// single pixel column.
func (r *rasteriser) add(e *edge, y0, y1 float64, sign float32, xMin, xMax int) {
	c := sign * float32(y1-y0)
	x := e.xAt((y0 + y1) / 2)
	pix := int(math.Floor(x))
	switch {
	case pix < xMin:
		// left of the buffer: the whole piece counts as covered
		r.cover[0] += c
		r.area[0] += c
	case pix < xMax:
		i := pix - xMin
		r.cover[i] += c
		r.area[i] += c * float32(1-(x-float64(pix)))
	}
}

// integrateNonZero turns cover and area into coverage values in place,
// using the non-zero winding rule.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := abs32(acc + area[i])
		acc += cover[i]
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd is like integrateNonZero for the even-odd rule.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := abs32(acc + area[i])
		acc += cover[i]
		v -= 2 * float32(int(v/2))
		cover[i] = 1 - abs32(1-v)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros strips zero coverage from both ends of a scanline.
func trimZeros(cov []float32) ([]float32, int) {
	lo, hi := 0, len(cov)
	for lo < hi && cov[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for cov[hi-1] == 0 {
		hi--
	}
	return cov[lo:hi], lo
}
