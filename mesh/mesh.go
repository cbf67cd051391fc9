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

// Package mesh implements indexed triangle meshes and the extrusion of
// planar shapes into prisms.
package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh.  Triangles are listed counter-clockwise
// when seen from outside the solid.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int {
	if m == nil {
		return 0
	}
	return len(m.Faces)
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool {
	return m.NumTriangles() == 0
}

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) [3]r3.Vec {
	f := m.Faces[i]
	return [3]r3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Normal returns the unit normal of face i.  The zero vector is returned
// for degenerate faces.
func (m *Mesh) Normal(i int) r3.Vec {
	t := m.Triangle(i)
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Bounds returns the axis-aligned bounding box of all vertices which are
// used by at least one face.  The zero box is returned for an empty mesh.
func (m *Mesh) Bounds() r3.Box {
	if m.Empty() {
		return r3.Box{}
	}
	inf := math.Inf(1)
	b := r3.Box{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
	for _, f := range m.Faces {
		for _, idx := range f {
			v := m.Vertices[idx]
			b.Min.X = math.Min(b.Min.X, v.X)
			b.Min.Y = math.Min(b.Min.Y, v.Y)
			b.Min.Z = math.Min(b.Min.Z, v.Z)
			b.Max.X = math.Max(b.Max.X, v.X)
			b.Max.Y = math.Max(b.Max.Y, v.Y)
			b.Max.Z = math.Max(b.Max.Z, v.Z)
		}
	}
	return b
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]r3.Vec(nil), m.Vertices...),
		Faces:    append([][3]int(nil), m.Faces...),
	}
}

// Transform returns a copy of the mesh with f applied to every vertex.
// If flip is set, the orientation of every face is reversed; this is
// needed when f is a reflection.
func (m *Mesh) Transform(f func(r3.Vec) r3.Vec, flip bool) *Mesh {
	res := &Mesh{
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		res.Vertices[i] = f(v)
	}
	for i, face := range m.Faces {
		if flip {
			face[1], face[2] = face[2], face[1]
		}
		res.Faces[i] = face
	}
	return res
}

// Translate returns a copy of the mesh moved by d.
func (m *Mesh) Translate(d r3.Vec) *Mesh {
	return m.Transform(func(v r3.Vec) r3.Vec { return r3.Add(v, d) }, false)
}

// Append adds all faces of other to m.
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
	}
}

// Volume returns the signed volume enclosed by the mesh.  The volume is
// positive for a closed mesh whose faces point outwards.
func (m *Mesh) Volume() float64 {
	var sum float64
	for i := range m.Faces {
		t := m.Triangle(i)
		sum += r3.Dot(t[0], r3.Cross(t[1], t[2]))
	}
	return sum / 6
}
