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

// Package svgdoc extracts the filled outlines from an SVG document.
//
// Only the parts of SVG which matter for extrusion are read: the drawable
// shape elements, their fill colour and fill rule, and the transforms of
// the elements and their enclosing groups.  Strokes, gradients, text and
// styling from style sheets are ignored.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// DefaultFill is the fill colour of elements without a fill attribute.
const DefaultFill = "000000"

// ErrNoPaths is returned when a document contains no drawable element.
var ErrNoPaths = errors.New("svg: no drawable paths")

// FillRule determines which points are inside a self-intersecting outline.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Element is one filled outline of the document.
type Element struct {
	Index     int           // position among the drawable elements
	Tag       string        // name of the source element, e.g. "path" or "rect"
	Fill      string        // six lower case hex digits
	FillRule  FillRule      // fill rule in effect for the element
	D         string        // SVG path data
	Transform matrix.Matrix // maps element coordinates to document coordinates
}

// Skipped describes a drawable element which was left out because its
// fill cannot be used, for example a gradient reference.
type Skipped struct {
	Tag    string // name of the source element
	Fill   string // the fill value as written in the document
	Reason string
}

// Document is the drawable content of an SVG file.
type Document struct {
	Width, Height float64   // from the width and height attributes, or 0
	ViewBox       rect.Rect // zero if the root element has no viewBox
	Elements      []Element
	Skipped       []Skipped
}

// Size returns the width and height of the drawing area, preferring the
// viewBox.
func (d *Document) Size() (w, h float64) {
	if d.ViewBox.URx > d.ViewBox.LLx && d.ViewBox.URy > d.ViewBox.LLy {
		return d.ViewBox.URx - d.ViewBox.LLx, d.ViewBox.URy - d.ViewBox.LLy
	}
	return d.Width, d.Height
}

// state is the inherited presentation state of an element.
type state struct {
	fill      string // "" means not drawable
	badFill   string // unusable fill value, if fill is "" because of it
	badReason string
	fillRule  FillRule
	transform matrix.Matrix
	hidden    bool // inside <defs> and similar
}

// hiddenContainers hold content which is not rendered directly.
var hiddenContainers = map[string]bool{
	"defs": true, "clipPath": true, "mask": true, "symbol": true,
	"pattern": true, "marker": true, "linearGradient": true,
	"radialGradient": true, "title": true, "desc": true, "metadata": true,
}

// ParseString is like [Parse] but reads from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads an SVG document.  An error is returned if the XML is
// malformed, if a transform or shape attribute cannot be parsed, or if the
// document contains no drawable elements.
//
// Elements whose fill is not a plain colour, and which have no fallback
// colour, are listed in Document.Skipped instead.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	doc := &Document{}
	stack := []state{{fill: DefaultFill, transform: matrix.Identity}}
	seenRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			attrs := attrMap(t.Attr)
			name := t.Name.Local

			if !seenRoot {
				if name != "svg" {
					return nil, fmt.Errorf("svg: root element is <%s>", name)
				}
				seenRoot = true
				doc.readRoot(attrs)
			}

			st, err := inherit(parent, attrs)
			if err != nil {
				return nil, fmt.Errorf("svg: element <%s> %d: %w", name, len(doc.Elements), err)
			}
			if hiddenContainers[name] {
				st.hidden = true
			}
			stack = append(stack, st)

			if st.hidden {
				continue
			}
			if st.fill == "" {
				if st.badFill == "" {
					continue
				}
				if _, ok, _ := pathData(name, attrs); ok {
					doc.Skipped = append(doc.Skipped, Skipped{Tag: name, Fill: st.badFill, Reason: st.badReason})
				}
				continue
			}
			d, ok, err := pathData(name, attrs)
			if err != nil {
				return nil, fmt.Errorf("svg: element <%s> %d: %w", name, len(doc.Elements), err)
			}
			if !ok {
				continue
			}
			doc.Elements = append(doc.Elements, Element{
				Index:     len(doc.Elements),
				Tag:       name,
				Fill:      st.fill,
				FillRule:  st.fillRule,
				D:         d,
				Transform: st.transform,
			})

		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !seenRoot {
		return nil, errors.New("svg: empty document")
	}
	if len(doc.Elements) == 0 {
		return nil, ErrNoPaths
	}
	return doc, nil
}

func (doc *Document) readRoot(attrs map[string]string) {
	doc.Width = parseLength(attrs["width"])
	doc.Height = parseLength(attrs["height"])
	if vb, err := parseNumbers(attrs["viewBox"]); err == nil && len(vb) == 4 {
		doc.ViewBox = rect.Rect{LLx: vb[0], LLy: vb[1], URx: vb[0] + vb[2], URy: vb[1] + vb[3]}
	}
}

// inherit computes the state of an element from its parent's state and
// its own attributes.
func inherit(parent state, attrs map[string]string) (state, error) {
	st := parent
	style := parseStyle(attrs["style"])

	fill, ok := style["fill"]
	if !ok {
		fill, ok = attrs["fill"]
	}
	if ok {
		switch v := strings.TrimSpace(fill); v {
		case "", "inherit", "currentColor":
			// keep the parent's fill
		case "none", "transparent":
			st.fill = ""
			st.badFill = ""
		default:
			hex, err := paint(v)
			if err != nil {
				st.fill = ""
				st.badFill = v
				st.badReason = err.Error()
			} else {
				st.fill = hex
				st.badFill = ""
			}
		}
	}

	rule, ok := style["fill-rule"]
	if !ok {
		rule, ok = attrs["fill-rule"]
	}
	if ok {
		switch strings.TrimSpace(rule) {
		case "evenodd":
			st.fillRule = EvenOdd
		case "nonzero":
			st.fillRule = NonZero
		}
	}

	if tr, ok := attrs["transform"]; ok {
		m, err := ParseTransform(tr)
		if err != nil {
			return st, err
		}
		st.transform = concat(m, parent.transform)
	}
	return st, nil
}

// paint resolves a fill value.  Paint server references such as
// "url(#grad)" are replaced by their fallback colour, if one is given.
func paint(v string) (string, error) {
	rest, isURL := strings.CutPrefix(v, "url(")
	if !isURL {
		return ParseColor(v)
	}
	_, fallback, ok := strings.Cut(rest, ")")
	fallback = strings.TrimSpace(fallback)
	switch {
	case !ok:
		return "", fmt.Errorf("malformed paint %q", v)
	case fallback == "" || fallback == "none":
		return "", fmt.Errorf("paint server %q is not supported", v)
	}
	return ParseColor(fallback)
}

func attrMap(attrs []xml.Attr) map[string]string {
	res := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space != "" && a.Name.Space != "http://www.w3.org/2000/svg" {
			continue
		}
		res[a.Name.Local] = a.Value
	}
	return res
}

// parseStyle splits a style attribute into its declarations.
func parseStyle(s string) map[string]string {
	if s == "" {
		return nil
	}
	res := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		res[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return res
}

// parseLength reads a length attribute, ignoring any unit.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyz%")
	v, err := parseNumbers(s)
	if err != nil || len(v) != 1 {
		return 0
	}
	return v[0]
}
