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

import "errors"

// The errors below classify the failures of a conversion.  Errors returned
// by this package wrap one of them, with details about the offending
// colour or path, and can be matched with [errors.Is].
var (
	// ErrInput indicates a malformed or empty input document.
	ErrInput = errors.New("invalid input document")

	// ErrParam indicates an invalid depth, quality setting, base layer or
	// export option.
	ErrParam = errors.New("invalid parameter")

	// ErrNoColors is returned when exporting a scene without any colour
	// layers.
	ErrNoColors = errors.New("no colour layers found")

	// ErrEmptySolids is returned when colour layers exist, but every
	// solid is empty.
	ErrEmptySolids = errors.New("all solids are empty")
)
