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

// Package colorname finds human readable names for palette colours.
//
// Names are chosen from a small fixed table by distance in the CIE Lab
// colour space, so that similar looking colours get the same name.
package colorname

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	name string
	c    colorful.Color
}

var table []entry

func init() {
	for _, e := range named {
		c, err := colorful.Hex(e[1])
		if err != nil {
			panic("colorname: bad table entry " + e[0])
		}
		table = append(table, entry{name: e[0], c: c})
	}
}

// named lists the candidate names.  Earlier entries win ties.
var named = [][2]string{
	{"red", "#ff0000"},
	{"green", "#008000"},
	{"blue", "#0000ff"},
	{"yellow", "#ffff00"},
	{"orange", "#ffa500"},
	{"purple", "#800080"},
	{"pink", "#ffc0cb"},
	{"brown", "#a52a2a"},
	{"black", "#000000"},
	{"white", "#ffffff"},
	{"gray", "#808080"},

	{"dark red", "#8b0000"},
	{"light red", "#ffb6c1"},
	{"dark green", "#006400"},
	{"light green", "#90ee90"},
	{"dark blue", "#00008b"},
	{"light blue", "#add8e6"},
	{"dark yellow", "#daa520"},
	{"light yellow", "#ffffe0"},
	{"dark orange", "#ff8c00"},
	{"light orange", "#ffe4b5"},
	{"dark purple", "#4b0082"},
	{"light purple", "#dda0dd"},
	{"dark pink", "#c71585"},
	{"dark brown", "#654321"},
	{"light brown", "#d2b48c"},
	{"dark gray", "#a9a9a9"},
	{"light gray", "#d3d3d3"},

	{"gold", "#ffd700"},
	{"silver", "#c0c0c0"},
	{"bronze", "#cd7f32"},
	{"copper", "#b87333"},

	{"forest green", "#228b22"},
	{"lime", "#00ff00"},
	{"olive", "#808000"},
	{"navy", "#000080"},
	{"teal", "#008080"},
	{"cyan", "#00ffff"},
	{"magenta", "#ff00ff"},
	{"maroon", "#800000"},

	{"crimson", "#dc143c"},
	{"coral", "#ff7f50"},
	{"salmon", "#fa8072"},
	{"khaki", "#f0e68c"},
	{"beige", "#f5f5dc"},
	{"ivory", "#fffff0"},
	{"lavender", "#e6e6fa"},
	{"turquoise", "#40e0d0"},
	{"violet", "#ee82ee"},
	{"wheat", "#f5deb3"},
	{"linen", "#faf0e6"},
	{"snow", "#fffafa"},
}

// Name returns a display name like "Dark Red" for a colour given as hex
// digits, with or without a leading '#'.  If the colour cannot be parsed,
// the upper case hex digits are returned.
func Name(hex string) string {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	c, err := colorful.Hex("#" + expand(hex))
	if err != nil {
		return strings.ToUpper(hex)
	}
	// A Caser keeps state and must not be shared between goroutines.
	return cases.Title(language.English).String(nearest(c))
}

// Filename returns a lower case, hyphenated form of [Name], suitable for
// use in file names.
func Filename(hex string) string {
	name := strings.ToLower(Name(hex))
	var b strings.Builder
	dash := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		} else {
			dash = true
		}
	}
	return b.String()
}

func nearest(c colorful.Color) string {
	best := table[0]
	bestDist := c.DistanceLab(best.c)
	for _, e := range table[1:] {
		if d := c.DistanceLab(e.c); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best.name
}

func expand(hex string) string {
	if len(hex) == 3 {
		return string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return hex
}
