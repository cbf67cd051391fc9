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

// Path data using the less common command forms.
var commandCases = []TestCase{
	{
		Name:     "relative_lines",
		Elements: []Element{{D: "m10 10 l44 0 l0 44 l-44 0 z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
		Area:     44 * 44,
	},
	{
		Name:     "horizontal_vertical",
		Elements: []Element{{D: "M10 10H54V54H10Z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
		Area:     44 * 44,
	},
	{
		Name:     "relative_horizontal_vertical",
		Elements: []Element{{D: "m10 10h44v44h-44z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
		Area:     44 * 44,
	},
	{
		Name:     "implicit_lineto",
		Elements: []Element{{D: "M10,10 54,10 54,54 10,54z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
		Area:     44 * 44,
	},
	{
		Name:     "compact_numbers",
		Elements: []Element{{D: "M10-0.5.5.5L54 .5 54 54Z", Fill: "sienna", Transform: "translate(0 10)"}},
		Width:    64,
		Height:   64,
	},
	{
		Name:     "smooth_cubic",
		Elements: []Element{{D: "M10 32C10 10 32 10 32 32S54 54 54 32V54H10Z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
	},
	{
		Name:     "smooth_quadratic",
		Elements: []Element{{D: "M10 32Q21 10 32 32T54 32V54H10Z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
		Area:     44 * 22,
	},
	{
		Name:     "relative_curves",
		Elements: []Element{{D: "m10 50 c10 -40 34 -40 44 0 z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
		Area:     936,
	},
	{
		Name:     "two_closed_subpaths_relative",
		Elements: []Element{{D: "m4 4h20v20h-20z m32 0h20v20h-20z", Fill: "sienna"}},
		Width:    64,
		Height:   64,
		Area:     800,
	},
}
