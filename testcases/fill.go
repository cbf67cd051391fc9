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

var fillCases = []TestCase{
	{
		Name:     "triangle_nonzero",
		Elements: []Element{{D: triangle(10, 50, 32, 10, 54, 50), Fill: "#c00"}},
		Width:    64,
		Height:   64,
		Area:     880,
	},
	{
		Name:     "triangle_evenodd",
		Elements: []Element{{D: triangle(10, 50, 32, 10, 54, 50), Fill: "#c00", Rule: EvenOdd}},
		Width:    64,
		Height:   64,
		Area:     880,
	},
	{
		Name:     "star_nonzero",
		Elements: []Element{{D: fivePointStar(32, 32, 25), Fill: "gold"}},
		Width:    64,
		Height:   64,
		Area:     starArea(25, false),
	},
	{
		Name:     "star_evenodd",
		Elements: []Element{{D: fivePointStar(32, 32, 25), Fill: "gold", Rule: EvenOdd}},
		Width:    64,
		Height:   64,
		Area:     starArea(25, true),
	},
	{
		Name:     "rectangle",
		Elements: []Element{{D: rectangle(10, 10, 54, 54)}},
		Width:    64,
		Height:   64,
		Area:     44 * 44,
	},
	{
		Name:     "rect_element",
		Elements: []Element{{Markup: `rect x="10" y="20" width="44" height="24"`, Fill: "rgb(0, 128, 255)"}},
		Width:    64,
		Height:   64,
		Area:     44 * 24,
	},
	{
		Name:     "polygon_element",
		Elements: []Element{{Markup: `polygon points="10,10 54,10 54,54"`, Fill: "teal"}},
		Width:    64,
		Height:   64,
		Area:     44 * 44 / 2,
	},
}

func triangle(x1, y1, x2, y2, x3, y3 float64) string {
	p := &pathData{}
	return p.polygon([2]float64{x1, y1}, [2]float64{x2, y2}, [2]float64{x3, y3}).String()
}

// fivePointStar builds a self-intersecting five-pointed star.
func fivePointStar(cx, cy, r float64) string {
	var pts [5][2]float64
	for i := range pts {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		pts[i] = [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	p := &pathData{}
	return p.polygon(pts[0], pts[2], pts[4], pts[1], pts[3]).String()
}

// starArea gives the area of the star drawn by fivePointStar.  With the
// even-odd rule the central pentagon is left out.
func starArea(r float64, evenOdd bool) float64 {
	inner := r * math.Cos(2*math.Pi/5) / math.Cos(math.Pi/5)
	star := 5 * r * inner * math.Sin(math.Pi/5)
	if evenOdd {
		star -= 2.5 * inner * inner * math.Sin(2*math.Pi/5)
	}
	return star
}

func rectangle(x1, y1, x2, y2 float64) string {
	p := &pathData{}
	return p.rect(x1, y1, x2, y2).String()
}
