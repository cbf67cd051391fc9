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
	"errors"
	"strconv"
	"strings"
)

// pathData converts a drawable element into SVG path data.  The second
// return value is false for elements which do not describe an outline.
func pathData(tag string, attrs map[string]string) (string, bool, error) {
	num := func(key string) float64 {
		return parseLength(attrs[key])
	}

	switch tag {
	case "path":
		d, ok := attrs["d"]
		if !ok {
			return "", false, nil
		}
		return d, true, nil

	case "rect":
		x, y, w, h := num("x"), num("y"), num("width"), num("height")
		if w <= 0 || h <= 0 {
			return "", false, nil
		}
		rx, hasRx := attrs["rx"]
		ry, hasRy := attrs["ry"]
		var rxv, ryv float64
		switch {
		case hasRx && hasRy:
			rxv, ryv = parseLength(rx), parseLength(ry)
		case hasRx:
			rxv = parseLength(rx)
			ryv = rxv
		case hasRy:
			ryv = parseLength(ry)
			rxv = ryv
		}
		rxv = min(max(rxv, 0), w/2)
		ryv = min(max(ryv, 0), h/2)
		if rxv == 0 || ryv == 0 {
			return "M" + fmtList(x, y) + "H" + fmtNum(x+w) + "V" + fmtNum(y+h) + "H" + fmtNum(x) + "Z", true, nil
		}
		arc := "A" + fmtList(rxv, ryv, 0, 0, 1) + " "
		var b strings.Builder
		b.WriteString("M" + fmtList(x+rxv, y))
		b.WriteString("H" + fmtNum(x+w-rxv))
		b.WriteString(arc + fmtList(x+w, y+ryv))
		b.WriteString("V" + fmtNum(y+h-ryv))
		b.WriteString(arc + fmtList(x+w-rxv, y+h))
		b.WriteString("H" + fmtNum(x+rxv))
		b.WriteString(arc + fmtList(x, y+h-ryv))
		b.WriteString("V" + fmtNum(y+ryv))
		b.WriteString(arc + fmtList(x+rxv, y))
		b.WriteString("Z")
		return b.String(), true, nil

	case "circle":
		r := num("r")
		if r <= 0 {
			return "", false, nil
		}
		return ellipse(num("cx"), num("cy"), r, r), true, nil

	case "ellipse":
		rx, ry := num("rx"), num("ry")
		if rx <= 0 || ry <= 0 {
			return "", false, nil
		}
		return ellipse(num("cx"), num("cy"), rx, ry), true, nil

	case "polygon", "polyline":
		pts, err := parseNumbers(attrs["points"])
		if err != nil {
			return "", false, err
		}
		if len(pts)%2 != 0 {
			return "", false, errors.New("odd number of coordinates in points")
		}
		if len(pts) < 6 {
			return "", false, nil
		}
		var b strings.Builder
		b.WriteString("M" + fmtList(pts[0], pts[1]))
		for i := 2; i < len(pts); i += 2 {
			b.WriteString("L" + fmtList(pts[i], pts[i+1]))
		}
		b.WriteString("Z")
		return b.String(), true, nil
	}
	return "", false, nil
}

func ellipse(cx, cy, rx, ry float64) string {
	arc := "A" + fmtList(rx, ry, 0, 1, 0) + " "
	return "M" + fmtList(cx+rx, cy) +
		arc + fmtList(cx-rx, cy) +
		arc + fmtList(cx+rx, cy) + "Z"
}

func fmtNum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func fmtList(xs ...float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmtNum(x)
	}
	return strings.Join(parts, " ")
}
