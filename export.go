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
	"bytes"
	"errors"
	"fmt"

	"seehuhn.de/go/extrude/colorname"
	"seehuhn.de/go/extrude/mesh"
	"seehuhn.de/go/extrude/stl"
)

// File names used for exported meshes.
const (
	CombinedFilename = "combined.stl"
	ArchiveFilename  = "stl-layers.zip"
	layerSuffix      = "-layer.stl"
)

// LayerFile is the mesh file of one colour, or of the foundation.
type LayerFile struct {
	Key  ColorKey
	Name string // file name, e.g. "dark-red-layer.stl"
	Data []byte
}

// ExportCombined writes all solids of the scene into one mesh file.
// The scene is not modified.
func ExportCombined(s *Scene, f stl.Format) ([]byte, error) {
	if len(s.layers) == 0 {
		return nil, ErrNoColors
	}
	var meshes []*mesh.Mesh
	for _, sol := range s.Solids() {
		meshes = append(meshes, sol.Mesh)
	}
	buf := &bytes.Buffer{}
	err := stl.Write(buf, f, "combined", meshes...)
	if errors.Is(err, stl.ErrEmpty) {
		return nil, fmt.Errorf("%w: %d colours", ErrEmptySolids, len(s.layers))
	} else if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportByColor writes one mesh file per colour, in registration order.
// The foundation, if present, comes last under the key [BaseKey].
// Colours whose solids are all empty are left out.
func ExportByColor(s *Scene, f stl.Format) ([]LayerFile, error) {
	if len(s.layers) == 0 {
		return nil, ErrNoColors
	}

	var res []LayerFile
	used := make(map[string]bool)
	for _, g := range s.Groups() {
		var meshes []*mesh.Mesh
		for _, sol := range g.Solids {
			meshes = append(meshes, sol.Mesh)
		}
		buf := &bytes.Buffer{}
		err := stl.Write(buf, f, string(g.Key), meshes...)
		if errors.Is(err, stl.ErrEmpty) {
			Logger().Debug("skipping empty layer", "color", g.Key)
			continue
		} else if err != nil {
			return nil, fmt.Errorf("colour %s: %w", g.Key, err)
		}

		name := layerFilename(g.Key, used)
		used[name] = true
		res = append(res, LayerFile{Key: g.Key, Name: name, Data: buf.Bytes()})
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: %d colours", ErrEmptySolids, len(s.layers))
	}
	return res, nil
}

// layerFilename names the file of a colour after the nearest named
// colour.  If two colours map to the same name, the hex digits are
// appended to keep the names unique.
func layerFilename(key ColorKey, used map[string]bool) string {
	if key == BaseKey {
		return string(BaseKey) + layerSuffix
	}
	name := colorname.Filename(string(key)) + layerSuffix
	if used[name] || name == string(BaseKey)+layerSuffix {
		name = colorname.Filename(string(key)) + "-" + string(key) + layerSuffix
	}
	return name
}
