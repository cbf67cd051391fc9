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

// Path data with errors.  Broken parts are skipped; an element without
// usable geometry is replaced by a small fallback square.
var brokenCases = []TestCase{
	{
		Name: "unknown_command",
		Elements: []Element{
			{D: "M10 10H54V54H10Z", Fill: "#00f"},
			{D: "M10 10 X 3 4 L20 10 L20 20Z", Fill: "#f00"},
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "missing_arguments",
		Elements: []Element{
			{D: "M10 10H54V54H10Z", Fill: "#00f"},
			{D: "M10 10 L20", Fill: "#f00"},
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "move_only",
		Elements: []Element{
			{D: "M5 5", Fill: "#f00"},
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "zero_area",
		Elements: []Element{
			{D: "M10 10H54V54H10Z", Fill: "#00f"},
			{D: "M10 10L54 54Z", Fill: "#0f0"},
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "empty_data",
		Elements: []Element{
			{D: "M10 10H54V54H10Z", Fill: "#00f"},
			{D: "", Fill: "#f00"},
		},
		Width:  64,
		Height: 64,
	},
}
