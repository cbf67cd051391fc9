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

package testcases

import "math"

// kappa for cubic Bezier approximation of a quarter circle
const kappa = 0.5522847498307936

var curveCases = []TestCase{
	{
		Name:     "quadratic",
		Elements: []Element{{D: quadraticCurve(10, 50, 32, 10, 54, 50), Fill: "#36c"}},
		Width:    64,
		Height:   64,
		Area:     880 * 2 / 3.,
	},
	{
		Name:     "quadratic_s_shape",
		Elements: []Element{{D: sCurveQuadratic(10, 32, 54, 32), Fill: "#36c"}},
		Width:    64,
		Height:   64,
	},
	{
		Name:     "cubic",
		Elements: []Element{{D: cubicCurve(10, 50, 20, 10, 44, 10, 54, 50), Fill: "#36c"}},
		Width:    64,
		Height:   64,
		Area:     936,
	},
	{
		Name:     "cubic_deep",
		Elements: []Element{{D: cubicCurve(10, 50, 15, 5, 49, 5, 54, 50), Fill: "#36c"}},
		Width:    64,
		Height:   64,
		Area:     1120.5,
	},
	{
		Name:     "cubic_loop",
		Elements: []Element{{D: cubicCurve(10, 32, 60, 5, 4, 59, 54, 32), Fill: "#36c"}},
		Width:    64,
		Height:   64,
	},
	{
		Name:     "circle",
		Elements: []Element{{D: ellipse(32, 32, 25, 25), Fill: "crimson"}},
		Width:    64,
		Height:   64,
		Area:     math.Pi * 25 * 25,
	},
	{
		Name:     "ellipse",
		Elements: []Element{{D: ellipse(32, 32, 25, 15), Fill: "crimson"}},
		Width:    64,
		Height:   64,
		Area:     math.Pi * 25 * 15,
	},
	{
		Name:     "pie",
		Elements: []Element{{D: pie(32, 32, 25), Fill: "crimson"}},
		Width:    64,
		Height:   64,
		Area:     0.75 * math.Pi * 25 * 25,
	},
	{
		Name:     "arc_command",
		Elements: []Element{{D: "M32 32L52 32A20 20 0 1 1 32 12Z", Fill: "crimson"}},
		Width:    64,
		Height:   64,
		Area:     0.75 * math.Pi * 20 * 20,
	},
	{
		Name:     "circle_element",
		Elements: []Element{{Markup: `circle cx="32" cy="32" r="20"`, Fill: "crimson"}},
		Width:    64,
		Height:   64,
		Area:     math.Pi * 20 * 20,
	},
	{
		Name:     "ellipse_element",
		Elements: []Element{{Markup: `ellipse cx="32" cy="32" rx="28" ry="10"`, Fill: "crimson"}},
		Width:    64,
		Height:   64,
		Area:     math.Pi * 28 * 10,
	},
	{
		Name:     "rounded_rect",
		Elements: []Element{{Markup: `rect x="8" y="8" width="48" height="48" rx="8"`, Fill: "crimson"}},
		Width:    64,
		Height:   64,
		Area:     48*48 - (4-math.Pi)*8*8,
	},
}

func quadraticCurve(x1, y1, cx, cy, x2, y2 float64) string {
	p := &pathData{}
	return p.M(x1, y1).Q(cx, cy, x2, y2).Z().String()
}

func cubicCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float64) string {
	p := &pathData{}
	return p.M(x1, y1).C(c1x, c1y, c2x, c2y, x2, y2).Z().String()
}

// sCurveQuadratic builds a closed S-shaped outline from two quadratic
// curves.
func sCurveQuadratic(x1, y1, x2, y2 float64) string {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2
	p := &pathData{}
	return p.M(x1, y1).
		Q((x1+midX)/2, y1-20, midX, midY).
		Q((midX+x2)/2, y2+20, x2, y2).
		Z().String()
}

// ellipse builds an approximate ellipse from four cubic Bezier curves.
func ellipse(cx, cy, rx, ry float64) string {
	kx := rx * kappa
	ky := ry * kappa
	p := &pathData{}
	return p.M(cx+rx, cy).
		C(cx+rx, cy-ky, cx+kx, cy-ry, cx, cy-ry).
		C(cx-kx, cy-ry, cx-rx, cy-ky, cx-rx, cy).
		C(cx-rx, cy+ky, cx-kx, cy+ry, cx, cy+ry).
		C(cx+kx, cy+ry, cx+rx, cy+ky, cx+rx, cy).
		Z().String()
}

// pie builds three quarters of a circle.
func pie(cx, cy, r float64) string {
	k := r * kappa
	p := &pathData{}
	return p.M(cx, cy).L(cx+r, cy).
		C(cx+r, cy-k, cx+k, cy-r, cx, cy-r).
		C(cx-k, cy-r, cx-r, cy-k, cx-r, cy).
		C(cx-r, cy+k, cx-k, cy+r, cx, cy+r).
		Z().String()
}
