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
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/extrude/svgdoc"
)

// Vectorize converts an image into an SVG document with one group of
// outlines per palette colour.  The image is quantised to at most n
// colours, and the colour masks are traced concurrently.  Colours are
// listed in palette order in the result.
func Vectorize(ctx context.Context, img image.Image, n int, tracer Tracer) ([]byte, []color.RGBA, error) {
	if tracer == nil {
		tracer = RunTracer{}
	}
	palette, err := Quantize(img, n)
	if err != nil {
		return nil, nil, err
	}
	masks := Separate(img, palette)

	docs := make([][]byte, len(masks))
	g, ctx := errgroup.WithContext(ctx)
	for i, mask := range masks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := tracer.Trace(mask, Hex(palette[i]))
			if err != nil {
				return fmt.Errorf("colour %s: %w", Hex(palette[i]), err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	joined, err := svgdoc.Join(docs...)
	if err != nil {
		return nil, nil, err
	}
	return joined, palette, nil
}

// SaveMasks writes the colour masks as PNG files named after their
// colour into dir, and returns the file names.
func SaveMasks(dir string, img image.Image, palette []color.RGBA) ([]string, error) {
	var names []string
	for i, mask := range Separate(img, palette) {
		name := filepath.Join(dir, Hex(palette[i])+"-mask.png")
		if err := imgio.Save(name, mask, imgio.PNGEncoder()); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
