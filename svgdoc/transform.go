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

package svgdoc

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"seehuhn.de/go/geom/matrix"
)

// ParseTransform reads an SVG transform list such as
// "translate(10,20) rotate(45)".
func ParseTransform(s string) (matrix.Matrix, error) {
	m := matrix.Identity
	rest := strings.TrimSpace(s)
	for rest != "" {
		name, after, ok := strings.Cut(rest, "(")
		if !ok {
			return m, fmt.Errorf("malformed transform %q", s)
		}
		argStr, tail, ok := strings.Cut(after, ")")
		if !ok {
			return m, fmt.Errorf("malformed transform %q", s)
		}
		args, err := parseNumbers(argStr)
		if err != nil {
			return m, fmt.Errorf("malformed transform %q", s)
		}
		t, err := transformFunc(strings.TrimSpace(name), args)
		if err != nil {
			return m, err
		}
		// Later entries in the list are applied to the points first.
		m = concat(t, m)
		rest = strings.TrimLeft(tail, " \t\r\n,")
	}
	return m, nil
}

func transformFunc(name string, a []float64) (matrix.Matrix, error) {
	bad := func() (matrix.Matrix, error) {
		return matrix.Identity, fmt.Errorf("%s: unexpected %d arguments", name, len(a))
	}
	switch name {
	case "matrix":
		if len(a) != 6 {
			return bad()
		}
		return matrix.Matrix{a[0], a[1], a[2], a[3], a[4], a[5]}, nil
	case "translate":
		switch len(a) {
		case 1:
			return matrix.Matrix{1, 0, 0, 1, a[0], 0}, nil
		case 2:
			return matrix.Matrix{1, 0, 0, 1, a[0], a[1]}, nil
		}
		return bad()
	case "scale":
		switch len(a) {
		case 1:
			return matrix.Matrix{a[0], 0, 0, a[0], 0, 0}, nil
		case 2:
			return matrix.Matrix{a[0], 0, 0, a[1], 0, 0}, nil
		}
		return bad()
	case "rotate":
		if len(a) != 1 && len(a) != 3 {
			return bad()
		}
		sin, cos := math.Sincos(a[0] * math.Pi / 180)
		r := matrix.Matrix{cos, sin, -sin, cos, 0, 0}
		if len(a) == 3 {
			// translate(cx,cy) rotate(angle) translate(-cx,-cy)
			to := matrix.Matrix{1, 0, 0, 1, -a[1], -a[2]}
			back := matrix.Matrix{1, 0, 0, 1, a[1], a[2]}
			r = concat(concat(to, r), back)
		}
		return r, nil
	case "skewX":
		if len(a) != 1 {
			return bad()
		}
		return matrix.Matrix{1, 0, math.Tan(a[0] * math.Pi / 180), 1, 0, 0}, nil
	case "skewY":
		if len(a) != 1 {
			return bad()
		}
		return matrix.Matrix{1, math.Tan(a[0] * math.Pi / 180), 0, 1, 0, 0}, nil
	}
	return matrix.Identity, fmt.Errorf("unknown transform %q", name)
}

// concat returns the matrix which first applies first and then then.
// Matrices use the PDF convention x' = a*x + c*y + e, y' = b*x + d*y + f.
func concat(first, then matrix.Matrix) matrix.Matrix {
	f, t := first, then
	return matrix.Matrix{
		t[0]*f[0] + t[2]*f[1],
		t[1]*f[0] + t[3]*f[1],
		t[0]*f[2] + t[2]*f[3],
		t[1]*f[2] + t[3]*f[3],
		t[0]*f[4] + t[2]*f[5] + t[4],
		t[1]*f[4] + t[3]*f[5] + t[5],
	}
}

// parseNumbers reads a list of numbers separated by white space and/or
// commas.
func parseNumbers(s string) ([]float64, error) {
	b := []byte(s)
	var res []float64
	i := skipSeparators(b)
	for i < len(b) {
		x, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("unexpected %q in number list", b[i])
		}
		res = append(res, x)
		i += n
		i += skipSeparators(b[i:])
	}
	return res, nil
}

func skipSeparators(b []byte) int {
	i := 0
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r', ',':
			i++
		default:
			return i
		}
	}
	return i
}
