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

// Sub-paths which are enclosed by other sub-paths of the same element
// become holes of the extruded solid.
var subpathCases = []TestCase{
	{
		Name:     "two_triangles",
		Elements: []Element{{D: twoTriangles(16, 32, 48, 32, 12), Fill: "navy"}},
		Width:    64,
		Height:   64,
		Area:     2 * 24 * 24 / 2,
	},
	{
		Name:     "overlapping_rect_nonzero",
		Elements: []Element{{D: overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54), Fill: "navy"}},
		Width:    64,
		Height:   64,
		Area:     2*30*30 - 16*16,
	},
	{
		Name:     "overlapping_rect_evenodd",
		Elements: []Element{{D: overlappingRectangles(10, 10, 40, 40, 24, 24, 54, 54), Fill: "navy", Rule: EvenOdd}},
		Width:    64,
		Height:   64,
		Area:     2*30*30 - 2*16*16,
	},
	{
		Name:     "ring_evenodd",
		Elements: []Element{{D: ringShape(32, 32, 25, 12, false), Fill: "#080", Rule: EvenOdd}},
		Width:    64,
		Height:   64,
		Area:     50*50 - 24*24,
	},
	{
		Name:     "ring_reversed_inner",
		Elements: []Element{{D: ringShape(32, 32, 25, 12, true), Fill: "#080"}},
		Width:    64,
		Height:   64,
		Area:     50*50 - 24*24,
	},
	{
		Name: "island_in_hole",
		Elements: []Element{{
			D:    rectangle(4, 4, 60, 60) + " " + rectangle(14, 14, 50, 50) + " " + rectangle(24, 24, 40, 40),
			Fill: "purple",
			Rule: EvenOdd,
		}},
		Width:  64,
		Height: 64,
		Area:   56*56 - 36*36 + 16*16,
	},
	{
		Name:     "multiple_rings",
		Elements: []Element{{D: multipleRings(64, 64), Fill: "maroon", Rule: EvenOdd}},
		Width:    128,
		Height:   128,
		Area:     3 * (40*40 - 20*20),
	},
	{
		Name:     "many_small_shapes",
		Elements: []Element{{D: manySmallShapes(8, 8), Fill: "orange"}},
		Width:    128,
		Height:   128,
		Area:     64 * 10 * 10 / 2,
	},
}

// twoTriangles builds two separate, disjoint triangles.
func twoTriangles(cx1, cy1, cx2, cy2 float64, size float64) string {
	p := &pathData{}
	for _, c := range [][2]float64{{cx1, cy1}, {cx2, cy2}} {
		p.polygon(
			[2]float64{c[0], c[1] - size},
			[2]float64{c[0] + size, c[1] + size},
			[2]float64{c[0] - size, c[1] + size})
	}
	return p.String()
}

func overlappingRectangles(x1a, y1a, x2a, y2a, x1b, y1b, x2b, y2b float64) string {
	p := &pathData{}
	return p.rect(x1a, y1a, x2a, y2a).rect(x1b, y1b, x2b, y2b).String()
}

// ringShape builds a square with a square hole.  If reverse is set, the
// inner square runs against the outer one, so that the hole also shows
// with the non-zero rule.
func ringShape(cx, cy, outer, inner float64, reverse bool) string {
	p := &pathData{}
	p.rect(cx-outer, cy-outer, cx+outer, cy+outer)
	if reverse {
		p.rect(cx+inner, cy-inner, cx-inner, cy+inner)
	} else {
		p.rect(cx-inner, cy-inner, cx+inner, cy+inner)
	}
	return p.String()
}

// multipleRings builds three disjoint rings in one path.
func multipleRings(cx, cy float64) string {
	p := &pathData{}
	for _, c := range [][2]float64{{cx - 30, cy - 30}, {cx + 30, cy - 30}, {cx, cy + 30}} {
		p.rect(c[0]-20, c[1]-20, c[0]+20, c[1]+20)
		p.rect(c[0]-10, c[1]-10, c[0]+10, c[1]+10)
	}
	return p.String()
}

// manySmallShapes builds a grid of small triangles.
func manySmallShapes(rows, cols int) string {
	const size, spacing = 5.0, 14.0
	p := &pathData{}
	for row := range rows {
		for col := range cols {
			cx := 10 + float64(col)*spacing
			cy := 10 + float64(row)*spacing
			p.polygon(
				[2]float64{cx, cy - size},
				[2]float64{cx + size, cy + size},
				[2]float64{cx - size, cy + size})
		}
	}
	return p.String()
}
