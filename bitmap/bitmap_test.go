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
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/extrude/svgdoc"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

// halves returns an image with a red left half and a blue right half.
// The top left pixel is transparent.
func halves(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if x < w/2 {
				img.SetRGBA(x, y, red)
			} else {
				img.SetRGBA(x, y, blue)
			}
		}
	}
	img.SetRGBA(0, 0, color.RGBA{})
	return img
}

func TestQuantize(t *testing.T) {
	img := halves(8, 8)
	img.SetRGBA(1, 0, color.RGBA{}) // keep both colours equally frequent
	img.SetRGBA(0, 1, color.RGBA{})
	img.SetRGBA(7, 7, color.RGBA{})
	img.SetRGBA(6, 7, color.RGBA{})
	img.SetRGBA(7, 6, color.RGBA{})

	pal, err := Quantize(img, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []color.RGBA{red, blue}, pal)

	_, err = Quantize(img, 0)
	assert.True(t, errors.Is(err, ErrColorCount))
	_, err = Quantize(img, 257)
	assert.True(t, errors.Is(err, ErrColorCount))
	_, err = Quantize(image.NewRGBA(image.Rect(0, 0, 4, 4)), 3)
	assert.True(t, errors.Is(err, ErrTransparent))
}

func TestSeparate(t *testing.T) {
	img := halves(4, 2)
	img.Set(3, 1, color.NRGBA{B: 0xff, A: 100}) // too transparent
	img.Set(1, 1, color.NRGBA{R: 0xf0, G: 0x10, A: 0xff})

	masks := Separate(img, []color.RGBA{red, blue})
	require.Len(t, masks, 2)
	want := [2][]string{
		{".#..", "##.."},
		{"..##", "..#."},
	}
	for i, m := range masks {
		for y := range 2 {
			row := ""
			for x := range 4 {
				if m.GrayAt(x, y).Y == 0xff {
					row += "#"
				} else {
					row += "."
				}
			}
			assert.Equal(t, want[i][y], row, "mask %d row %d", i, y)
		}
	}
}

func TestRunTracer(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 4, 3))
	for _, p := range []image.Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}, {0, 2}} {
		mask.SetGray(p.X, p.Y, color.Gray{Y: 0xff})
	}
	out, err := RunTracer{}.Trace(mask, "ab12cd")
	require.NoError(t, err)

	doc, err := svgdoc.Parse(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "ab12cd", doc.Elements[0].Fill)
	assert.Equal(t, "M0 0h3v2h-3zM0 2h1v1h-1z", doc.Elements[0].D)
	w, h := doc.Size()
	assert.Equal(t, 4.0, w)
	assert.Equal(t, 3.0, h)

	// an empty mask gives a document without paths
	out, err = RunTracer{}.Trace(image.NewGray(image.Rect(0, 0, 2, 2)), "000000")
	require.NoError(t, err)
	_, err = svgdoc.Parse(bytes.NewReader(out))
	assert.ErrorIs(t, err, svgdoc.ErrNoPaths)
}

func TestRunTracerOffset(t *testing.T) {
	mask := image.NewGray(image.Rect(10, 20, 13, 22))
	mask.SetGray(12, 21, color.Gray{Y: 0xff})
	out, err := RunTracer{}.Trace(mask, "000000")
	require.NoError(t, err)
	doc, err := svgdoc.Parse(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "M2 1h1v1h-1z", doc.Elements[0].D)
}

func TestDecode(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, halves(6, 4)))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())

	_, err = Decode([]byte("<svg></svg>"))
	assert.ErrorIs(t, err, ErrNotImage)
	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDownscale(t *testing.T) {
	img := halves(100, 50)
	small := Downscale(img, 10)
	assert.Equal(t, image.Rect(0, 0, 10, 5), small.Bounds())

	same := Downscale(img.SubImage(image.Rect(10, 10, 30, 20)), 64)
	assert.Equal(t, image.Rect(0, 0, 20, 10), same.Bounds())
	assert.Equal(t, img.RGBAAt(10, 10), same.RGBAAt(0, 0))

	tall := Downscale(halves(20, 200), 50)
	assert.Equal(t, image.Rect(0, 0, 5, 50), tall.Bounds())
}

func TestVectorize(t *testing.T) {
	img := halves(8, 8)
	img.SetRGBA(7, 7, color.RGBA{}) // same number of red and blue pixels
	doc, pal, err := Vectorize(context.Background(), img, 2, nil)
	require.NoError(t, err)
	require.Len(t, pal, 2)

	parsed, err := svgdoc.Parse(bytes.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, parsed.Elements, 2)
	for i, e := range parsed.Elements {
		assert.Equal(t, Hex(pal[i]), e.Fill)
	}
	w, h := parsed.Size()
	assert.Equal(t, 8.0, w)
	assert.Equal(t, 8.0, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = Vectorize(ctx, img, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

type failingTracer struct{}

func (failingTracer) Trace(image.Image, string) ([]byte, error) {
	return nil, errors.New("no luck")
}

func TestVectorizeTracerError(t *testing.T) {
	_, _, err := Vectorize(context.Background(), halves(4, 4), 2, failingTracer{})
	assert.ErrorContains(t, err, "no luck")
}

func TestSaveMasks(t *testing.T) {
	dir := t.TempDir()
	names, err := SaveMasks(dir, halves(4, 4), []color.RGBA{red, blue})
	require.NoError(t, err)
	require.Len(t, names, 2)
	for _, name := range names {
		_, err := os.Stat(name)
		assert.NoError(t, err)
	}
}
