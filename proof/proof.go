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

// Package proof writes one PDF page per colour layer, showing the layer's
// outlines at their printed size.  Printing such a proof on paper is a
// quick way to check dimensions before starting a long 3D print.
package proof

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/extrude"
	"seehuhn.de/go/extrude/colorname"
	"seehuhn.de/go/extrude/shape"
)

// ptPerMM converts millimetres to PDF points.
const ptPerMM = 72 / 25.4

// Margin is the white space around the outlines, in millimetres.
const Margin = 5.0

// WriteLayers writes a proof for every colour layer of reg into dir and
// returns the names of the written files.  Shapes are scaled by
// q.ScaleFactor, so that one unit on the page corresponds to one
// millimetre of the printed solid.
func WriteLayers(dir string, reg *extrude.Registry, q extrude.Quality) ([]string, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if reg.Len() == 0 {
		return nil, extrude.ErrNoColors
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var files []string
	for _, key := range reg.Colors() {
		name := filepath.Join(dir, colorname.Filename(string(key))+"-"+string(key)+".pdf")
		err := writeLayer(name, reg.Shapes(key), q)
		if errors.Is(err, errBlank) {
			continue
		} else if err != nil {
			return files, fmt.Errorf("proof for %s: %w", key, err)
		}
		files = append(files, name)
	}
	return files, nil
}

var errBlank = errors.New("layer has no outlines")

func writeLayer(fname string, shapes []*shape.Shape, q extrude.Quality) error {
	bbox, ok := bounds(shapes, q.CurveSegments)
	if !ok {
		return errBlank
	}

	k := q.ScaleFactor * ptPerMM
	m := Margin * ptPerMM
	paper := &pdf.Rectangle{
		URx: (bbox.URx-bbox.LLx)*k + 2*m,
		URy: (bbox.URy-bbox.LLy)*k + 2*m,
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// shape coordinates already have an upward y axis, like PDF
	page.Transform(matrix.Matrix{k, 0, 0, k, m - bbox.LLx*k, m - bbox.LLy*k})
	page.SetFillColor(color.DeviceGray(0))
	for _, s := range shapes {
		if s.Empty() {
			continue
		}
		for cmd, pts := range s.Path.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
		// holes are nested sub-contours, as in the extruded solids
		page.FillEvenOdd()
	}
	return page.Close()
}

// bounds returns the union of the bounding boxes of all non-empty shapes.
func bounds(shapes []*shape.Shape, segs int) (rect.Rect, bool) {
	var b rect.Rect
	found := false
	for _, s := range shapes {
		if s.Empty() {
			continue
		}
		sb := s.Bounds(segs)
		if sb.URx <= sb.LLx && sb.URy <= sb.LLy {
			continue
		}
		if !found {
			b = sb
			found = true
			continue
		}
		b.LLx = min(b.LLx, sb.LLx)
		b.LLy = min(b.LLy, sb.LLy)
		b.URx = max(b.URx, sb.URx)
		b.URy = max(b.URy, sb.URy)
	}
	return b, found
}
