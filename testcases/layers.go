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

// Documents with several colours.
var layerCases = []TestCase{
	{
		Name: "two_colours",
		Elements: []Element{
			{D: rectangle(10, 10, 30, 30), Fill: "red"},
			{D: rectangle(34, 34, 54, 54), Fill: "blue"},
		},
		Width:  64,
		Height: 64,
		Area:   800,
	},
	{
		Name: "stacked",
		Elements: []Element{
			{D: rectangle(4, 4, 60, 60), Fill: "#eee"},
			{Markup: `circle cx="32" cy="32" r="20"`, Fill: "#333"},
			{D: rectangle(28, 28, 36, 36), Fill: "#e00"},
		},
		Width:  64,
		Height: 64,
		Area:   56 * 56,
	},
	{
		Name: "same_colour_spelled_differently",
		Elements: []Element{
			{D: rectangle(4, 4, 20, 20), Fill: "#f00"},
			{D: rectangle(24, 4, 40, 20), Fill: "red"},
			{D: rectangle(44, 4, 60, 20), Fill: "rgb(255, 0, 0)"},
		},
		Width:  64,
		Height: 24,
		Area:   3 * 16 * 16,
	},
	{
		Name: "default_black",
		Elements: []Element{
			{D: rectangle(4, 4, 30, 30)},
			{D: rectangle(34, 4, 60, 30), Fill: "white"},
		},
		Width:  64,
		Height: 34,
		Area:   2 * 26 * 26,
	},
	{
		Name: "flag",
		Elements: []Element{
			{D: rectangle(0, 0, 90, 20), Fill: "#000"},
			{D: rectangle(0, 20, 90, 40), Fill: "#d00"},
			{D: rectangle(0, 40, 90, 60), Fill: "#fc0"},
		},
		Width:  90,
		Height: 60,
		Area:   90 * 60,
	},
}
