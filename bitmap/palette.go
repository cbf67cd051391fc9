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
package bitmap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/soniakeys/quant/median"
)

// Hex formats a colour as six lower case hex digits.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// Quantize finds a palette of at most n colours which represents the
// image well.  Fully transparent pixels are ignored.
func Quantize(img image.Image, n int) ([]color.RGBA, error) {
	if n < 1 || n > 256 {
		return nil, fmt.Errorf("%w: got %d", ErrColorCount, n)
	}

	// Collect the visible pixels into a strip, so that transparent areas
	// do not contribute to the palette.
	b := img.Bounds()
	var visible []color.RGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			visible = append(visible, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	if len(visible) == 0 {
		return nil, ErrTransparent
	}
	strip := image.NewRGBA(image.Rect(0, 0, len(visible), 1))
	for i, c := range visible {
		strip.SetRGBA(i, 0, c)
	}

	pal := median.Quantizer(min(n, len(visible))).Quantize(make(color.Palette, 0, n), strip)

	var res []color.RGBA
	seen := make(map[color.RGBA]bool)
	for _, c := range pal {
		r, g, b, _ := c.RGBA()
		rgba := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
		if !seen[rgba] {
			seen[rgba] = true
			res = append(res, rgba)
		}
	}
	return res, nil
}

// alphaCutoff is the smallest alpha value of pixels which are assigned to
// a palette colour.
const alphaCutoff = 128

// Separate splits the image into one mask per palette colour.  Every
// pixel with alpha of at least 128 is assigned to the nearest palette
// colour, and is white in the mask of this colour.  All other mask pixels
// are black.
func Separate(img image.Image, palette []color.RGBA) []*image.Gray {
	b := img.Bounds()
	masks := make([]*image.Gray, len(palette))
	for i := range masks {
		masks[i] = image.NewGray(b)
	}
	if len(palette) == 0 {
		return masks
	}

	pal := make([]colorful.Color, len(palette))
	for i, c := range palette {
		pal[i], _ = colorful.MakeColor(c)
	}
	cache := make(map[color.NRGBA]int)
	nearest := func(c color.NRGBA) int {
		if i, ok := cache[c]; ok {
			return i
		}
		cc, _ := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		best, bestDist := 0, cc.DistanceRgb(pal[0])
		for i := 1; i < len(pal); i++ {
			if d := cc.DistanceRgb(pal[i]); d < bestDist {
				best, bestDist = i, d
			}
		}
		cache[c] = best
		return best
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < alphaCutoff {
				continue
			}
			c.A = 0xff
			masks[nearest(c)].SetGray(x, y, color.Gray{Y: 0xff})
		}
	}
	return masks
}
