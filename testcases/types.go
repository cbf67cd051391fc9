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

// Package testcases is a catalogue of small coloured SVG documents, shared
// by the tests of the conversion pipeline and the preview renderer.
package testcases

import (
	"fmt"
	"strconv"
	"strings"
)

// TestCase is one sample document.
type TestCase struct {
	Name     string // lowercase a-z, 0-9 and _ only
	Width    int    // width of the viewBox, starting at 0
	Height   int    // height of the viewBox, starting at 0
	Elements []Element

	// Area is the area covered by all elements together, in document
	// units, as drawn by an SVG renderer.  Zero means unknown.
	Area float64
}

// Element is one drawable element of a test document.
type Element struct {
	D         string   // path data, for <path> elements
	Markup    string   // attributes of a basic shape, e.g. `circle r="2"`
	Fill      string   // fill attribute; empty means the SVG default
	Rule      FillRule // fill-rule attribute
	Transform string   // transform attribute
}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

// SVG returns the test case as an SVG document.
func (tc TestCase) SVG() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\">\n",
		tc.Width, tc.Height)
	for _, e := range tc.Elements {
		if e.Markup != "" {
			b.WriteString("  <" + e.Markup)
		} else {
			fmt.Fprintf(b, "  <path d=%q", e.D)
		}
		if e.Fill != "" {
			fmt.Fprintf(b, " fill=%q", e.Fill)
		}
		if e.Rule == EvenOdd {
			b.WriteString(` fill-rule="evenodd"`)
		}
		if e.Transform != "" {
			fmt.Fprintf(b, " transform=%q", e.Transform)
		}
		b.WriteString("/>\n")
	}
	b.WriteString("</svg>\n")
	return b.String()
}

// Fills returns the distinct fill attributes of the elements, in order of
// first use.  An empty fill is reported as "black".
func (tc TestCase) Fills() []string {
	var res []string
	seen := map[string]bool{}
	for _, e := range tc.Elements {
		f := e.Fill
		if f == "" {
			f = "black"
		}
		if !seen[f] {
			seen[f] = true
			res = append(res, f)
		}
	}
	return res
}

// pathData assembles SVG path data.
type pathData struct {
	strings.Builder
}

func (p *pathData) cmd(c byte, args ...float64) *pathData {
	if p.Len() > 0 {
		p.WriteByte(' ')
	}
	p.WriteByte(c)
	for i, a := range args {
		if i > 0 {
			p.WriteByte(' ')
		}
		p.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
	}
	return p
}

func (p *pathData) M(x, y float64) *pathData { return p.cmd('M', x, y) }
func (p *pathData) L(x, y float64) *pathData { return p.cmd('L', x, y) }
func (p *pathData) Z() *pathData             { return p.cmd('Z') }

func (p *pathData) Q(cx, cy, x, y float64) *pathData {
	return p.cmd('Q', cx, cy, x, y)
}

func (p *pathData) C(c1x, c1y, c2x, c2y, x, y float64) *pathData {
	return p.cmd('C', c1x, c1y, c2x, c2y, x, y)
}

// rect appends a closed axis-parallel rectangle.  The orientation follows
// the order of the corners.
func (p *pathData) rect(x1, y1, x2, y2 float64) *pathData {
	return p.M(x1, y1).L(x2, y1).L(x2, y2).L(x1, y2).Z()
}

// polygon appends a closed polygon.
func (p *pathData) polygon(pts ...[2]float64) *pathData {
	for i, pt := range pts {
		if i == 0 {
			p.M(pt[0], pt[1])
		} else {
			p.L(pt[0], pt[1])
		}
	}
	return p.Z()
}
