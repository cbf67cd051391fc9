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
package preview

import (
	"image"
	"image/color"
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/extrude/svgdoc"
	"seehuhn.de/go/extrude/testcases"
)

// coveredArea returns the sum of all alpha values, with an opaque pixel
// counting as one.
func coveredArea(img *image.RGBA) float64 {
	var sum float64
	for i := 3; i < len(img.Pix); i += 4 {
		sum += float64(img.Pix[i]) / 255
	}
	return sum
}

func TestAgainstCatalogue(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			if tc.Area == 0 {
				continue
			}
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				doc, err := svgdoc.ParseString(tc.SVG())
				if err != nil {
					t.Fatal(err)
				}
				img, err := Render(doc, tc.Width)
				if err != nil {
					t.Fatal(err)
				}
				if b := img.Bounds(); b.Dx() != tc.Width || b.Dy() != tc.Height {
					t.Fatalf("image size %dx%d", b.Dx(), b.Dy())
				}
				got := coveredArea(img)
				if math.Abs(got-tc.Area) > 0.02*tc.Area+2 {
					t.Errorf("covered area %.1f, want %.1f", got, tc.Area)
				}
			})
		}
	}
}

func TestColours(t *testing.T) {
	doc, err := svgdoc.ParseString(`<svg viewBox="0 0 64 64">
  <path d="M10 10H30V30H10Z" fill="red"/>
  <path d="M34 34H54V54H34Z" fill="blue"/>
  <path d="M20 20H24V24H20Z" fill="#00ff00"/>
</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(doc, 64)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{12, 12, color.RGBA{R: 255, A: 255}},
		{44, 44, color.RGBA{B: 255, A: 255}},
		{22, 22, color.RGBA{G: 255, A: 255}},
		{32, 5, color.RGBA{}},
		{60, 60, color.RGBA{}},
	}
	for _, c := range cases {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}

	// only the blue layer
	img, err = Render(doc, 64, "0000ff")
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(12, 12); got.A != 0 {
		t.Errorf("red pixel drawn: %v", got)
	}
	if got := img.RGBAAt(44, 44); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("blue pixel = %v", got)
	}
}

func TestFillRules(t *testing.T) {
	for _, rule := range []string{"nonzero", "evenodd"} {
		doc, err := svgdoc.ParseString(`<svg viewBox="0 0 10 10">
  <path d="M0 0H10V10H0Z M3 3H7V7H3Z" fill-rule="` + rule + `"/>
</svg>`)
		if err != nil {
			t.Fatal(err)
		}
		img, err := Render(doc, 10)
		if err != nil {
			t.Fatal(err)
		}
		want := uint8(255)
		if rule == "evenodd" {
			want = 0
		}
		if a := img.RGBAAt(5, 5).A; a != want {
			t.Errorf("%s: centre alpha %d, want %d", rule, a, want)
		}
		if a := img.RGBAAt(1, 1).A; a != 255 {
			t.Errorf("%s: corner alpha %d", rule, a)
		}
	}
}

func TestScaleAndViewBox(t *testing.T) {
	doc, err := svgdoc.ParseString(`<svg viewBox="100 50 20 10">
  <rect x="100" y="50" width="10" height="10" fill="black"/>
</svg>`)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(doc, 40)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("image size %v", b)
	}
	if got := coveredArea(img); math.Abs(got-400) > 0.5 {
		t.Errorf("covered area %g, want 400", got)
	}
	if a := img.RGBAAt(5, 5).A; a != 255 {
		t.Errorf("inside alpha %d", a)
	}
	if a := img.RGBAAt(30, 5).A; a != 0 {
		t.Errorf("outside alpha %d", a)
	}
}

func TestAntialiasing(t *testing.T) {
	doc, err := svgdoc.ParseString(`<svg viewBox="0 0 4 4"><path d="M0 0H2.5V4H0Z"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(doc, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 4 {
		if a := img.RGBAAt(2, y).A; a < 126 || a > 129 {
			t.Errorf("row %d: edge alpha %d, want about 128", y, a)
		}
		if a := img.RGBAAt(3, y).A; a != 0 {
			t.Errorf("row %d: alpha %d right of the edge", y, a)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	doc, err := svgdoc.ParseString(`<svg viewBox="0 0 10 10"><path d="M0 0H1V1Z"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []int{0, -1, MaxWidth + 1} {
		if _, err := Render(doc, w); err == nil {
			t.Errorf("width %d: expected an error", w)
		}
	}

	noSize, err := svgdoc.ParseString(`<svg><path d="M0 0H1V1Z"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Render(noSize, 10); err == nil {
		t.Error("expected an error for a document without size")
	}
}

func TestTrimZeros(t *testing.T) {
	cov, off := trimZeros([]float32{0, 0, 0.5, 1, 0})
	if off != 2 || len(cov) != 2 {
		t.Errorf("got %v at %d", cov, off)
	}
	if cov, _ := trimZeros([]float32{0, 0}); cov != nil {
		t.Errorf("got %v", cov)
	}
}
