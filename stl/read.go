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

package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/extrude/mesh"
)

// Triangle is one facet of an STL file.
type Triangle struct {
	Normal r3.Vec
	V      [3]r3.Vec
}

// Model is the content of an STL file.
type Model struct {
	Name      string
	Format    Format
	Triangles []Triangle
}

// Read decodes a binary or ASCII STL file.
func Read(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Binary files may also start with "solid", so the size check comes
	// first.
	if len(data) >= headerSize+4 {
		n := binary.LittleEndian.Uint32(data[headerSize:])
		if uint64(len(data)) == headerSize+4+50*uint64(n) {
			return readBinary(data, int(n)), nil
		}
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return readASCII(data)
	}
	return nil, fmt.Errorf("stl: unrecognised file (%d bytes)", len(data))
}

func readBinary(data []byte, n int) *Model {
	m := &Model{
		Name:      strings.TrimRight(string(data[:headerSize]), " \x00"),
		Format:    Binary,
		Triangles: make([]Triangle, n),
	}
	get := func(off int) r3.Vec {
		return r3.Vec{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))),
			Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))),
		}
	}
	for i := range n {
		off := headerSize + 4 + 50*i
		t := &m.Triangles[i]
		t.Normal = get(off)
		t.V[0] = get(off + 12)
		t.V[1] = get(off + 24)
		t.V[2] = get(off + 36)
	}
	return m
}

func readASCII(data []byte) (*Model, error) {
	m := &Model{Format: ASCII}
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0

	parseVec := func(fields []string) (r3.Vec, error) {
		if len(fields) != 3 {
			return r3.Vec{}, fmt.Errorf("stl: line %d: expected 3 coordinates", line)
		}
		var v [3]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return r3.Vec{}, fmt.Errorf("stl: line %d: %w", line, err)
			}
			v[i] = x
		}
		return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
	}

	var cur Triangle
	nv := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			m.Name = strings.Join(fields[1:], " ")
		case "facet":
			if len(fields) < 2 || fields[1] != "normal" {
				return nil, fmt.Errorf("stl: line %d: malformed facet", line)
			}
			n, err := parseVec(fields[2:])
			if err != nil {
				return nil, err
			}
			cur = Triangle{Normal: n}
			nv = 0
		case "vertex":
			if nv >= 3 {
				return nil, fmt.Errorf("stl: line %d: too many vertices", line)
			}
			v, err := parseVec(fields[1:])
			if err != nil {
				return nil, err
			}
			cur.V[nv] = v
			nv++
		case "endfacet":
			if nv != 3 {
				return nil, fmt.Errorf("stl: line %d: facet with %d vertices", line, nv)
			}
			m.Triangles = append(m.Triangles, cur)
		case "outer", "endloop", "endsolid":
			// structural keywords
		default:
			return nil, fmt.Errorf("stl: line %d: unexpected %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Bounds returns the bounding box of all triangle vertices.
func (m *Model) Bounds() r3.Box {
	return m.Mesh().Bounds()
}

// Mesh converts the model into an indexed mesh, merging vertices with
// identical coordinates.
func (m *Model) Mesh() *mesh.Mesh {
	res := &mesh.Mesh{}
	index := make(map[r3.Vec]int)
	for _, t := range m.Triangles {
		var f [3]int
		for k, v := range t.V {
			idx, ok := index[v]
			if !ok {
				idx = len(res.Vertices)
				res.Vertices = append(res.Vertices, v)
				index[v] = idx
			}
			f[k] = idx
		}
		res.Faces = append(res.Faces, f)
	}
	return res
}
