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
// Package bitmap converts raster images into coloured vector documents.
//
// An image is reduced to a small palette, split into one mask per palette
// colour, and each mask is traced into outlines.  The traced outlines of
// all colours are joined into one SVG document which can then be
// extruded.
package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

var (
	// ErrNotImage is returned for input which is not a supported image.
	ErrNotImage = errors.New("not a supported image")

	// ErrColorCount is returned if the requested number of colours is
	// outside the range 1 to 256.
	ErrColorCount = errors.New("colour count must be between 1 and 256")

	// ErrTransparent is returned for images without any opaque pixels.
	ErrTransparent = errors.New("image has no visible pixels")
)

// sniffLen is the number of bytes inspected to guess the file type.
const sniffLen = 262

// Decode reads an image in PNG, JPEG, GIF, BMP, TIFF or WebP format.
func Decode(data []byte) (image.Image, error) {
	head := data[:min(len(data), sniffLen)]
	if !filetype.IsImage(head) {
		kind, _ := filetype.Match(head)
		return nil, fmt.Errorf("%w: detected %q", ErrNotImage, kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotImage, err)
	}
	return img, nil
}

// Downscale shrinks the image so that neither side exceeds maxDim pixels,
// keeping the aspect ratio.  Smaller images and maxDim <= 0 give an
// unscaled copy.  The result always has its origin at (0, 0).
func Downscale(img image.Image, maxDim int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		res := clone.AsRGBA(img)
		if b.Min != (image.Point{}) {
			res.Rect = res.Rect.Sub(b.Min)
		}
		return res
	}
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	return transform.Resize(img, w, h, transform.Linear)
}
