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

// Documents with large coordinates or many elements.
var largeCases = []TestCase{
	{
		Name:     "large_rectangle",
		Elements: []Element{{D: rectangle(50, 50, 462, 462), Fill: "#246"}},
		Width:    512,
		Height:   512,
		Area:     412 * 412,
	},
	{
		Name:     "large_concentric_nonzero",
		Elements: []Element{{D: concentricSquares(256, 256, 200, 100), Fill: "#246"}},
		Width:    512,
		Height:   512,
		Area:     400 * 400,
	},
	{
		Name:     "large_concentric_evenodd",
		Elements: []Element{{D: concentricSquares(256, 256, 200, 100), Fill: "#246", Rule: EvenOdd}},
		Width:    512,
		Height:   512,
		Area:     400*400 - 200*200,
	},
	{
		Name:     "large_diamond",
		Elements: []Element{{D: diamond(256, 256, 180), Fill: "#246"}},
		Width:    512,
		Height:   512,
		Area:     2 * 180 * 180,
	},
	{
		Name:     "large_grid",
		Elements: []Element{{D: rectangleGrid(8, 8, 512, 512, 4), Fill: "#246"}},
		Width:    512,
		Height:   512,
		Area:     64 * 56 * 56,
	},
	{
		Name:     "large_clipped",
		Elements: []Element{{D: rectangle(-100, 100, 612, 400), Fill: "#246"}},
		Width:    512,
		Height:   512,
		Area:     512 * 300,
	},
	{
		Name:     "many_elements",
		Elements: checkerboard(16, 32),
		Width:    512,
		Height:   512,
		Area:     16 * 16 * 32 * 32,
	},
}

// concentricSquares builds two squares with the same orientation.
func concentricSquares(cx, cy, outer, inner float64) string {
	p := &pathData{}
	p.rect(cx-outer, cy-outer, cx+outer, cy+outer)
	p.rect(cx-inner, cy-inner, cx+inner, cy+inner)
	return p.String()
}

func diamond(cx, cy, r float64) string {
	p := &pathData{}
	return p.polygon(
		[2]float64{cx, cy - r}, [2]float64{cx + r, cy},
		[2]float64{cx, cy + r}, [2]float64{cx - r, cy}).String()
}

func rectangleGrid(rows, cols, width, height int, gap float64) string {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)
	p := &pathData{}
	for row := range rows {
		for col := range cols {
			p.rect(float64(col)*cellW+gap, float64(row)*cellH+gap,
				float64(col+1)*cellW-gap, float64(row+1)*cellH-gap)
		}
	}
	return p.String()
}

// checkerboard returns one element per cell of an n by n board, in two
// alternating colours.
func checkerboard(n int, cell float64) []Element {
	var res []Element
	for row := range n {
		for col := range n {
			fill := "#111"
			if (row+col)%2 == 1 {
				fill = "#eee"
			}
			x, y := float64(col)*cell, float64(row)*cell
			res = append(res, Element{D: rectangle(x, y, x+cell, y+cell), Fill: fill})
		}
	}
	return res
}
