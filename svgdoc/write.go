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
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/geom/matrix"
)

// JoinSize is the width and height of a joined document whose first part
// has no viewBox.
const JoinSize = 1024

// Write writes a minimal SVG document containing the given elements as
// <path> elements.
func Write(w io.Writer, width, height float64, elems []Element) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
		fmtNum(width), fmtNum(height), fmtNum(width), fmtNum(height))
	for _, e := range elems {
		bw.WriteString(`<path d="`)
		if err := xml.EscapeText(bw, []byte(e.D)); err != nil {
			return err
		}
		fill := e.Fill
		if fill == "" {
			fill = DefaultFill
		}
		fmt.Fprintf(bw, `" fill="#%s"`, fill)
		if e.FillRule == EvenOdd {
			bw.WriteString(` fill-rule="evenodd"`)
		}
		if e.Transform != matrix.Identity && e.Transform != (matrix.Matrix{}) {
			t := e.Transform
			fmt.Fprintf(bw, ` transform="matrix(%s)"`, fmtList(t[0], t[1], t[2], t[3], t[4], t[5]))
		}
		bw.WriteString("/>\n")
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// Join combines several SVG documents into one by concatenating the
// content of their root elements.  The viewBox of the first document is
// kept; if it has none, a square of side [JoinSize] is used.
func Join(docs ...[]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, errors.New("svg: nothing to join")
	}

	buf := &bytes.Buffer{}
	for i, doc := range docs {
		attrs, body, err := splitRoot(doc)
		if err != nil {
			return nil, fmt.Errorf("svg: document %d: %w", i, err)
		}
		if i == 0 {
			vb := attrs["viewBox"]
			if vb == "" {
				vb = fmt.Sprintf("0 0 %d %d", JoinSize, JoinSize)
			}
			buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="`)
			xml.EscapeText(buf, []byte(vb))
			if width, ok := attrs["width"]; ok {
				buf.WriteString(`" width="`)
				xml.EscapeText(buf, []byte(width))
			}
			if height, ok := attrs["height"]; ok {
				buf.WriteString(`" height="`)
				xml.EscapeText(buf, []byte(height))
			}
			buf.WriteString("\">\n")
		}
		buf.Write(bytes.TrimSpace(body))
		buf.WriteByte('\n')
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// splitRoot returns the attributes of the root <svg> element and the raw
// bytes of its content.
func splitRoot(doc []byte) (map[string]string, []byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, nil, errors.New("no root element")
		} else if err != nil {
			return nil, nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return nil, nil, fmt.Errorf("root element is <%s>", start.Name.Local)
		}
		attrs := attrMap(start.Attr)
		from := int(dec.InputOffset())
		to := bytes.LastIndex(doc, []byte("</svg>"))
		if to < from {
			// <svg/> has no content
			return attrs, nil, nil
		}
		return attrs, doc[from:to], nil
	}
}
