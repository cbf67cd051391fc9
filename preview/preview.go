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

// Package preview draws a top-down picture of the colour layers of a
// document.
//
// Every element is interpreted exactly the way the extrusion pipeline
// interprets it, so the preview shows the outlines which end up in the
// printed solids.
package preview

import (
	"errors"
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/extrude/svgdoc"
	"seehuhn.de/go/extrude/svgpath"
)

// MaxWidth is the largest supported preview width in pixels.
const MaxWidth = 8192

// Render draws the elements of doc into a new image which is width pixels
// wide.  The height follows from the aspect ratio of the document.
// Pixels not covered by any element are transparent.
//
// If keys is non-empty, only elements whose fill is in keys are drawn.
func Render(doc *svgdoc.Document, width int, keys ...string) (*image.RGBA, error) {
	if width < 1 || width > MaxWidth {
		return nil, errors.New("preview: invalid width")
	}
	w, h := doc.Size()
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, errors.New("preview: document has no size")
	}
	height := max(int(math.Round(float64(width)*h/w)), 1)
	if height > MaxWidth {
		return nil, errors.New("preview: document too tall")
	}

	var only map[string]bool
	if len(keys) > 0 {
		only = make(map[string]bool, len(keys))
		for _, k := range keys {
			only[k] = true
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	r := newRasteriser(width, height)

	// Shapes use an upward y axis; undo this and map the viewBox onto
	// the image.
	s := float64(width) / w
	r.ctm = matrix.Matrix{s, 0, 0, -s, -doc.ViewBox.LLx * s, -doc.ViewBox.LLy * s}

	for _, e := range doc.Elements {
		if only != nil && !only[e.Fill] {
			continue
		}
		sh, _ := svgpath.Interpret(e.D, e.Transform)
		col := fillColor(e.Fill)
		r.fill(sh.Path, e.FillRule, func(y, xMin int, coverage []float32) {
			row := img.Pix[y*img.Stride+4*xMin:]
			for i, c := range coverage {
				blend(row[4*i:4*i+4], col, c)
			}
		})
	}
	return img, nil
}

// fillColor converts a six digit hex string to a colour.  Invalid strings
// give black, matching the default SVG fill.
func fillColor(hex string) color.RGBA {
	var v [3]uint8
	if len(hex) == 6 {
		for i := range v {
			hi, ok1 := nibble(hex[2*i])
			lo, ok2 := nibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return color.RGBA{A: 255}
			}
			v[i] = hi<<4 | lo
		}
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 255}
}

func nibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// blend composites an opaque colour with coverage c over one
// premultiplied RGBA pixel.
func blend(px []uint8, col color.RGBA, c float32) {
	if c <= 0 {
		return
	}
	if c >= 1 {
		px[0], px[1], px[2], px[3] = col.R, col.G, col.B, 255
		return
	}
	k := 1 - c
	px[0] = uint8(float32(col.R)*c + float32(px[0])*k + 0.5)
	px[1] = uint8(float32(col.G)*c + float32(px[1])*k + 0.5)
	px[2] = uint8(float32(col.B)*c + float32(px[2])*k + 0.5)
	px[3] = uint8(255*c + float32(px[3])*k + 0.5)
}
