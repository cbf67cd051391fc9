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

// Package svgpath interprets SVG path data as planar shapes.
//
// The pen position is tracked in document coordinates.  Every point which
// is written to the output is first mapped through the element's transform
// and then has its vertical coordinate negated, so that the resulting
// shape uses an upward pointing y axis.
package svgpath

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/extrude/shape"
)

// checkSegments is the curve resolution used to decide whether an
// interpreted path encloses any area.
const checkSegments = 16

// Interpret converts SVG path data into a shape.
//
// Malformed commands are skipped and reported in the returned diagnostics.
// If the path data yields no geometry enclosing a non-zero area, the result
// is [shape.Fallback] and a diagnostic explains why.  The returned shape is
// never nil.
//
// A zero ctm is treated as the identity matrix.
func Interpret(d string, ctm matrix.Matrix) (*shape.Shape, []Diagnostic) {
	cmds, diags := Tokenize(d)

	if ctm == (matrix.Matrix{}) {
		ctm = matrix.Identity
	}
	ip := &interpreter{
		out: &path.Data{},
		ctm: ctm,
	}
	for _, c := range cmds {
		ip.exec(c)
	}

	s := shape.New(ip.out)
	if ip.segments == 0 {
		diags = append(diags, Diagnostic{Offset: len(d), Msg: "no drawable geometry, using fallback shape"})
		return shape.Fallback(), diags
	}
	for _, p := range ip.out.Coords {
		if !finite(p.X) || !finite(p.Y) {
			diags = append(diags, Diagnostic{Offset: len(d), Msg: "coordinates out of range, using fallback shape"})
			return shape.Fallback(), diags
		}
	}
	if len(s.Contours(checkSegments)) == 0 {
		diags = append(diags, Diagnostic{Offset: len(d), Msg: "outline encloses no area, using fallback shape"})
		return shape.Fallback(), diags
	}
	return s, diags
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

type interpreter struct {
	out *path.Data
	ctm matrix.Matrix

	pen   vec.Vec2 // current point, document space
	start vec.Vec2 // start of the current sub-contour, document space
	ctrl  vec.Vec2 // last control point, for smooth curves
	last  byte     // upper case letter of the previous command
	open  bool     // whether a sub-contour has been started

	segments int // number of drawing segments emitted
}

// device maps a document space point to shape coordinates.
func (ip *interpreter) device(p vec.Vec2) vec.Vec2 {
	m := ip.ctm
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: -(m[1]*p.X + m[3]*p.Y + m[5]),
	}
}

func (ip *interpreter) ensureOpen() {
	if ip.open {
		return
	}
	ip.out.Cmds = append(ip.out.Cmds, path.CmdMoveTo)
	ip.out.Coords = append(ip.out.Coords, ip.device(ip.pen))
	ip.start = ip.pen
	ip.open = true
}

func (ip *interpreter) moveTo(p vec.Vec2) {
	ip.out.Cmds = append(ip.out.Cmds, path.CmdMoveTo)
	ip.out.Coords = append(ip.out.Coords, ip.device(p))
	ip.pen = p
	ip.start = p
	ip.open = true
}

func (ip *interpreter) lineTo(p vec.Vec2) {
	ip.ensureOpen()
	ip.out.Cmds = append(ip.out.Cmds, path.CmdLineTo)
	ip.out.Coords = append(ip.out.Coords, ip.device(p))
	ip.pen = p
	ip.segments++
}

func (ip *interpreter) quadTo(c, p vec.Vec2) {
	ip.ensureOpen()
	ip.out.Cmds = append(ip.out.Cmds, path.CmdQuadTo)
	ip.out.Coords = append(ip.out.Coords, ip.device(c), ip.device(p))
	ip.ctrl = c
	ip.pen = p
	ip.segments++
}

func (ip *interpreter) cubeTo(c1, c2, p vec.Vec2) {
	ip.ensureOpen()
	ip.out.Cmds = append(ip.out.Cmds, path.CmdCubeTo)
	ip.out.Coords = append(ip.out.Coords, ip.device(c1), ip.device(c2), ip.device(p))
	ip.ctrl = c2
	ip.pen = p
	ip.segments++
}

func (ip *interpreter) closePath() {
	if !ip.open {
		return
	}
	ip.out.Cmds = append(ip.out.Cmds, path.CmdClose)
	ip.pen = ip.start
	ip.open = false
}

// exec applies a single command.  The operand count has already been
// checked by the tokenizer.
func (ip *interpreter) exec(c Command) {
	a := c.Args
	rel := c.Op >= 'a' && c.Op <= 'z'
	var base vec.Vec2
	if rel {
		base = ip.pen
	}
	pt := func(i int) vec.Vec2 {
		return vec.Vec2{X: base.X + a[i], Y: base.Y + a[i+1]}
	}

	op := upper(c.Op)
	switch op {
	case 'M':
		ip.moveTo(pt(0))
	case 'L':
		ip.lineTo(pt(0))
	case 'H':
		x := a[0]
		if rel {
			x += ip.pen.X
		}
		ip.lineTo(vec.Vec2{X: x, Y: ip.pen.Y})
	case 'V':
		y := a[0]
		if rel {
			y += ip.pen.Y
		}
		ip.lineTo(vec.Vec2{X: ip.pen.X, Y: y})
	case 'C':
		ip.cubeTo(pt(0), pt(2), pt(4))
	case 'S':
		c1 := ip.pen
		if ip.last == 'C' || ip.last == 'S' {
			c1 = ip.pen.Mul(2).Sub(ip.ctrl)
		}
		ip.cubeTo(c1, pt(0), pt(2))
	case 'Q':
		ip.quadTo(pt(0), pt(2))
	case 'T':
		c1 := ip.pen
		if ip.last == 'Q' || ip.last == 'T' {
			c1 = ip.pen.Mul(2).Sub(ip.ctrl)
		}
		ip.quadTo(c1, pt(0))
	case 'A':
		end := pt(5)
		if a[0] == 0 || a[1] == 0 {
			ip.lineTo(end)
			break
		}
		if end == ip.pen {
			break
		}
		for _, seg := range arcToCubics(ip.pen, a[0], a[1], a[2], a[3] != 0, a[4] != 0, end) {
			ip.cubeTo(seg[0], seg[1], seg[2])
		}
	case 'Z':
		ip.closePath()
	}
	ip.last = op
}
