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

package svgpath

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// arcToCubics approximates an SVG elliptical arc by cubic Bézier curves.
// Each returned element holds the two control points and the end point of
// one curve.  The arc is split into pieces of at most 90 degrees.
//
// The conversion from endpoint to centre parameterisation follows
// appendix F.6.5 of the SVG 1.1 specification.
func arcToCubics(p0 vec.Vec2, rx, ry, phiDeg float64, large, sweep bool, p1 vec.Vec2) [][3]vec.Vec2 {
	rx = math.Abs(rx)
	ry = math.Abs(ry)
	phi := phiDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	dx2 := (p0.X - p1.X) / 2
	dy2 := (p0.Y - p1.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Scale up radii which are too small to span the end points.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	var coef float64
	if den > 0 {
		coef = math.Sqrt(max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2

	u := vec.Vec2{X: (x1p - cxp) / rx, Y: (y1p - cyp) / ry}
	v := vec.Vec2{X: (-x1p - cxp) / rx, Y: (-y1p - cyp) / ry}
	theta1 := angleBetween(vec.Vec2{X: 1, Y: 0}, u)
	dTheta := angleBetween(u, v)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	delta := dTheta / float64(n)
	k := 4.0 / 3.0 * math.Tan(delta/4)

	point := func(t float64) vec.Vec2 {
		sinT, cosT := math.Sincos(t)
		return vec.Vec2{
			X: cx + rx*cosT*cosPhi - ry*sinT*sinPhi,
			Y: cy + rx*cosT*sinPhi + ry*sinT*cosPhi,
		}
	}
	deriv := func(t float64) vec.Vec2 {
		sinT, cosT := math.Sincos(t)
		return vec.Vec2{
			X: -rx*sinT*cosPhi - ry*cosT*sinPhi,
			Y: -rx*sinT*sinPhi + ry*cosT*cosPhi,
		}
	}

	res := make([][3]vec.Vec2, 0, n)
	from := p0
	for i := range n {
		t0 := theta1 + float64(i)*delta
		t1 := t0 + delta
		to := point(t1)
		if i == n-1 {
			to = p1
		}
		c1 := from.Add(deriv(t0).Mul(k))
		c2 := to.Sub(deriv(t1).Mul(k))
		res = append(res, [3]vec.Vec2{c1, c2, to})
		from = to
	}
	return res
}

// angleBetween returns the signed angle from u to v.
func angleBetween(u, v vec.Vec2) float64 {
	return math.Atan2(u.X*v.Y-u.Y*v.X, u.X*v.X+u.Y*v.Y)
}
