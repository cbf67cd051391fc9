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

// A 20x20 square centred on (32, 32), drawn under different transforms.
var square = rectangle(-10, -10, 10, 10)

var transformCases = []TestCase{
	{
		Name:     "translate",
		Elements: []Element{{D: square, Fill: "olive", Transform: "translate(32 32)"}},
		Width:    64,
		Height:   64,
		Area:     400,
	},
	{
		Name:     "rotate_45deg",
		Elements: []Element{{D: square, Fill: "olive", Transform: "translate(32,32) rotate(45)"}},
		Width:    64,
		Height:   64,
		Area:     400,
	},
	{
		Name:     "rotate_about_point",
		Elements: []Element{{D: rectangle(22, 22, 42, 42), Fill: "olive", Transform: "rotate(30 32 32)"}},
		Width:    64,
		Height:   64,
		Area:     400,
	},
	{
		Name:     "scale_2x",
		Elements: []Element{{D: square, Fill: "olive", Transform: "translate(32 32) scale(2)"}},
		Width:    64,
		Height:   64,
		Area:     1600,
	},
	{
		Name:     "scale_2x_1y",
		Elements: []Element{{D: square, Fill: "olive", Transform: "translate(32 32) scale(2 1)"}},
		Width:    64,
		Height:   64,
		Area:     800,
	},
	{
		Name:     "shear_horizontal",
		Elements: []Element{{D: square, Fill: "olive", Transform: "translate(32 32) skewX(30)"}},
		Width:    64,
		Height:   64,
		Area:     400,
	},
	{
		Name:     "matrix",
		Elements: []Element{{D: square, Fill: "olive", Transform: "matrix(1.5 0 0 0.5 32 32)"}},
		Width:    64,
		Height:   64,
		Area:     300,
	},
	{
		Name:     "circle_to_ellipse",
		Elements: []Element{{Markup: `circle r="10"`, Fill: "olive", Transform: "translate(32 32) scale(2.5 1)"}},
		Width:    64,
		Height:   64,
		Area:     2.5 * 100 * math.Pi,
	},
}
