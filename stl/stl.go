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

// Package stl reads and writes triangle meshes in the STL format.
//
// Both the binary and the ASCII variant are supported.  Colour is not
// stored; multi-colour prints use one file per colour.
package stl

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/extrude/mesh"
)

// Format selects the STL variant.
type Format int

const (
	Binary Format = iota
	ASCII
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case ASCII:
		return "ascii"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts "binary" or "ascii" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "binary", "bin":
		return Binary, nil
	case "ascii", "text":
		return ASCII, nil
	}
	return 0, fmt.Errorf("unknown STL format %q", s)
}

// ErrEmpty is returned when asked to write a mesh without triangles.
var ErrEmpty = errors.New("stl: no triangles to write")

// headerSize is the length of the binary STL header.
const headerSize = 80

// Write writes the meshes as one STL solid in the given format.
func Write(w io.Writer, f Format, name string, meshes ...*mesh.Mesh) error {
	switch f {
	case Binary:
		return WriteBinary(w, name, meshes...)
	case ASCII:
		return WriteASCII(w, name, meshes...)
	}
	return fmt.Errorf("unknown STL format %d", int(f))
}

func countTriangles(meshes []*mesh.Mesh) int {
	n := 0
	for _, m := range meshes {
		n += m.NumTriangles()
	}
	return n
}

// WriteBinary writes the meshes as a binary STL file.  The name is stored
// in the file header and truncated to fit.
func WriteBinary(w io.Writer, name string, meshes ...*mesh.Mesh) error {
	n := countTriangles(meshes)
	if n == 0 {
		return ErrEmpty
	}
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("stl: too many triangles (%d)", n)
	}

	bw := bufio.NewWriter(w)
	var header [headerSize + 4]byte
	copy(header[:headerSize], name)
	binary.LittleEndian.PutUint32(header[headerSize:], uint32(n))
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	// normal, three vertices, attribute byte count
	var rec [4*3*4 + 2]byte
	put := func(off int, v r3.Vec) {
		binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(float32(v.X)))
		binary.LittleEndian.PutUint32(rec[off+4:], math.Float32bits(float32(v.Y)))
		binary.LittleEndian.PutUint32(rec[off+8:], math.Float32bits(float32(v.Z)))
	}
	for _, m := range meshes {
		for i := range m.NumTriangles() {
			t := m.Triangle(i)
			put(0, m.Normal(i))
			put(12, t[0])
			put(24, t[1])
			put(36, t[2])
			if _, err := bw.Write(rec[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteASCII writes the meshes as an ASCII STL file.
func WriteASCII(w io.Writer, name string, meshes ...*mesh.Mesh) error {
	if countTriangles(meshes) == 0 {
		return ErrEmpty
	}
	name = strings.Join(strings.Fields(name), "_")

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, m := range meshes {
		for i := range m.NumTriangles() {
			t := m.Triangle(i)
			nv := m.Normal(i)
			fmt.Fprintf(bw, "  facet normal %g %g %g\n", nv.X, nv.Y, nv.Z)
			fmt.Fprintf(bw, "    outer loop\n")
			for _, v := range t {
				fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
			}
			fmt.Fprintf(bw, "    endloop\n")
			fmt.Fprintf(bw, "  endfacet\n")
		}
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}
