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
package extrude

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ColorKey identifies a palette colour by six lower case hex digits,
// without a leading '#'.
type ColorKey string

// BaseKey is the key of the foundation slab.  Since it is not a hex
// number, it never coincides with the key of a palette colour.
const BaseKey ColorKey = "base"

// ParseColorKey normalises a colour given as three or six hex digits,
// optionally preceded by '#'.
func ParseColorKey(s string) (ColorKey, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", fmt.Errorf("%w: colour %q is not a hex colour", ErrParam, s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", fmt.Errorf("%w: colour %q is not a hex colour", ErrParam, s)
	}
	return ColorKey(strings.ToLower(hex)), nil
}

// Equal reports whether two keys denote the same colour.
func (k ColorKey) Equal(other ColorKey) bool {
	return strings.EqualFold(string(k), string(other))
}

// RGBA returns the colour as an opaque [color.RGBA].  Keys which are not
// hex colours, like [BaseKey], give mid grey.
func (k ColorKey) RGBA() color.RGBA {
	v, err := strconv.ParseUint(string(k), 16, 32)
	if err != nil || len(k) != 6 {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func (k ColorKey) String() string {
	return string(k)
}

func canonical(k ColorKey) ColorKey {
	return ColorKey(strings.ToLower(strings.TrimPrefix(string(k), "#")))
}
