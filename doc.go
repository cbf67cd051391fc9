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
// Package extrude turns the coloured outlines of a vector drawing into
// solids for multi-colour 3D printing.
//
// The outlines of each colour are extruded into a flat slab of a per-colour
// thickness.  To make the separately printed colours bond, every colour
// either gets a thin overlap slab straddling z=0, or all colours share one
// foundation slab below them.  The resulting scene is centred, scaled and
// written as STL, either as one combined file or as one file per colour.
//
// A conversion is described by a [Request] and run with [Convert].  The
// individual stages are available as [Registry], [Compose], [ExportCombined]
// and [ExportByColor].  All state is owned by the values of a single
// conversion, so independent conversions may run concurrently.
package extrude

//go:generate go run ./testcases/export
