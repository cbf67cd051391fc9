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
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/segment"

	"seehuhn.de/go/extrude/svgdoc"
)

// A Tracer converts a single-colour mask into an SVG document.  The
// outlines enclose the white pixels of the mask and are filled with the
// given colour (six hex digits).
type Tracer interface {
	Trace(mask image.Image, fill string) ([]byte, error)
}

// RunTracer is a [Tracer] which outlines the mask with axis-aligned
// rectangles.  Each row of the mask is split into runs of white pixels,
// and identical runs in consecutive rows are merged into one rectangle.
type RunTracer struct {
	// Level is the threshold at which a mask pixel counts as white.
	// Zero selects 128.
	Level uint8
}

type openRun struct {
	x0, x1 int // horizontal extent, x1 exclusive
	y0     int // first row
}

// Trace implements the [Tracer] interface.
func (t RunTracer) Trace(mask image.Image, fill string) ([]byte, error) {
	level := t.Level
	if level == 0 {
		level = 128
	}
	bin := segment.Threshold(mask, level)
	b := bin.Bounds()

	var rects []image.Rectangle
	closeRun := func(r openRun, y int) {
		rects = append(rects, image.Rect(r.x0, r.y0, r.x1, y))
	}

	var prev []openRun
	for y := b.Min.Y; y < b.Max.Y; y++ {
		var next []openRun
		j := 0
		for _, run := range rowRuns(bin, y) {
			for j < len(prev) && prev[j].x0 < run[0] {
				closeRun(prev[j], y)
				j++
			}
			if j < len(prev) && prev[j].x0 == run[0] && prev[j].x1 == run[1] {
				next = append(next, prev[j])
				j++
			} else {
				next = append(next, openRun{x0: run[0], x1: run[1], y0: y})
			}
		}
		for ; j < len(prev); j++ {
			closeRun(prev[j], y)
		}
		prev = next
	}
	for _, r := range prev {
		closeRun(r, b.Max.Y)
	}

	var elems []svgdoc.Element
	if len(rects) > 0 {
		var d strings.Builder
		for _, r := range rects {
			r = r.Sub(b.Min)
			fmt.Fprintf(&d, "M%d %dh%dv%dh%dz", r.Min.X, r.Min.Y, r.Dx(), r.Dy(), -r.Dx())
		}
		elems = append(elems, svgdoc.Element{D: d.String(), Fill: fill})
	}

	buf := &bytes.Buffer{}
	err := svgdoc.Write(buf, float64(b.Dx()), float64(b.Dy()), elems)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rowRuns returns the runs of white pixels in row y as [x0, x1) pairs.
func rowRuns(img *image.Gray, y int) [][2]int {
	b := img.Bounds()
	var runs [][2]int
	start := -1
	for x := b.Min.X; x < b.Max.X; x++ {
		white := img.GrayAt(x, y).Y >= 0x80
		if white && start < 0 {
			start = x
		} else if !white && start >= 0 {
			runs = append(runs, [2]int{start, x})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, b.Max.X})
	}
	return runs
}
