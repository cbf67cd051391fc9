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
package extrude

import (
	"fmt"
	"math"
	"strings"
)

// DefaultDepth is the extrusion depth in millimetres of colours without
// a depth override.
const DefaultDepth = 2.0

// Quality controls the resolution and the size of the generated solids.
type Quality struct {
	// CurveSegments is the number of straight segments each curve segment
	// of an outline is replaced by.
	CurveSegments int

	// ScaleFactor converts document units into millimetres.  It applies
	// to the x and y coordinates only; depths are always in millimetres.
	ScaleFactor float64

	// OverlapAmount is the vertical overlap in millimetres between a
	// colour's main slab and the slab below it.
	OverlapAmount float64
}

// DefaultQuality returns the settings used for file export.
func DefaultQuality() Quality {
	return Quality{
		CurveSegments: 8,
		ScaleFactor:   0.25,
		OverlapAmount: 0.5,
	}
}

// Validate checks that the settings are usable.
func (q Quality) Validate() error {
	if q.CurveSegments < 1 {
		return fmt.Errorf("%w: curve segments %d < 1", ErrParam, q.CurveSegments)
	}
	if !finitePositive(q.ScaleFactor) {
		return fmt.Errorf("%w: scale factor %g", ErrParam, q.ScaleFactor)
	}
	if !(q.OverlapAmount >= 0) || math.IsInf(q.OverlapAmount, 0) {
		return fmt.Errorf("%w: overlap amount %g", ErrParam, q.OverlapAmount)
	}
	return nil
}

// BaseLayer requests a foundation slab below all colours.
type BaseLayer struct {
	Height float64  // thickness in millimetres
	Color  ColorKey // colour of the foundation, for previews and names
}

// Validate checks the height and the colour of the foundation slab.
func (b *BaseLayer) Validate() error {
	if !finitePositive(b.Height) {
		return fmt.Errorf("%w: base layer height %g", ErrParam, b.Height)
	}
	if _, err := ParseColorKey(string(b.Color)); err != nil {
		return fmt.Errorf("base layer: %w", err)
	}
	return nil
}

// Mirror selects the axes along which the scene is mirrored.
type Mirror struct {
	X, Y bool
}

// UpAxis is the axis of the exported model which points upwards, along
// the direction of extrusion.
type UpAxis int

const (
	UpZ UpAxis = iota // usual for slicers
	UpY               // usual for 3D viewers
)

func (a UpAxis) String() string {
	switch a {
	case UpZ:
		return "z"
	case UpY:
		return "y"
	}
	return fmt.Sprintf("UpAxis(%d)", int(a))
}

// ParseUpAxis converts "z" or "y" into an [UpAxis].  The empty string
// selects [UpZ].
func ParseUpAxis(s string) (UpAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "z":
		return UpZ, nil
	case "y":
		return UpY, nil
	}
	return 0, fmt.Errorf("%w: unknown up axis %q", ErrParam, s)
}

// ExportMode determines how the solids are grouped into files.
type ExportMode int

const (
	// Combined writes all solids into one mesh file.
	Combined ExportMode = iota

	// Separate writes one mesh file per colour, packed into an archive.
	Separate
)

func (m ExportMode) String() string {
	switch m {
	case Combined:
		return "combined"
	case Separate:
		return "separate"
	}
	return fmt.Sprintf("ExportMode(%d)", int(m))
}

// ParseExportMode converts "combined" or "separate" into an [ExportMode].
// The empty string selects [Combined].
func ParseExportMode(s string) (ExportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "combined":
		return Combined, nil
	case "separate":
		return Separate, nil
	}
	return 0, fmt.Errorf("%w: unknown export mode %q", ErrParam, s)
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

func checkDepth(key ColorKey, depth float64) error {
	if !finitePositive(depth) {
		return fmt.Errorf("%w: colour %s: depth %g must be positive", ErrParam, key, depth)
	}
	return nil
}
