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

package svgdoc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts an SVG colour value into six lower case hex digits.
// Supported forms are #rgb, #rrggbb, rgb(r,g,b) with integer or percentage
// components, and the SVG colour keywords.
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty colour")
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return normaliseHex(hex, s)
	}

	lower := strings.ToLower(s)
	if args, ok := strings.CutPrefix(lower, "rgb("); ok {
		args, ok = strings.CutSuffix(args, ")")
		if !ok {
			return "", fmt.Errorf("malformed colour %q", s)
		}
		parts := strings.Split(args, ",")
		if len(parts) != 3 {
			parts = strings.Fields(args)
		}
		if len(parts) != 3 {
			return "", fmt.Errorf("malformed colour %q", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			p = strings.TrimSpace(p)
			var v float64
			var err error
			if pct, isPct := strings.CutSuffix(p, "%"); isPct {
				v, err = strconv.ParseFloat(pct, 64)
				v = v * 255 / 100
			} else {
				v, err = strconv.ParseFloat(p, 64)
			}
			if err != nil {
				return "", fmt.Errorf("malformed colour %q", s)
			}
			rgb[i] = uint8(math.Round(min(max(v, 0), 255)))
		}
		return fmt.Sprintf("%02x%02x%02x", rgb[0], rgb[1], rgb[2]), nil
	}

	if c, ok := colornames.Map[lower]; ok {
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B), nil
	}

	// Tracers sometimes omit the leading '#'.
	if len(s) == 6 || len(s) == 3 {
		if hex, err := normaliseHex(s, s); err == nil {
			return hex, nil
		}
	}
	return "", fmt.Errorf("unsupported colour %q", s)
}

func normaliseHex(hex, orig string) (string, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", fmt.Errorf("malformed colour %q", orig)
	}
	for _, c := range []byte(hex) {
		if !isHexDigit(c) {
			return "", fmt.Errorf("malformed colour %q", orig)
		}
	}
	return strings.ToLower(hex), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
