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

package mesh

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/extrude/shape"
)

const kappa = 0.5522847498307936 // 4*(√2-1)/3

func addRect(p *path.Data, x0, y0, x1, y1 float64) {
	p.Cmds = append(p.Cmds, path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose)
	p.Coords = append(p.Coords,
		vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y0},
		vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x0, Y: y1},
	)
}

func addCircle(p *path.Data, cx, cy, r float64, clockwise bool) {
	sign := 1.0
	if clockwise {
		sign = -1
	}
	at := func(theta float64) (pt, tangent vec.Vec2) {
		sin, cos := math.Sincos(theta)
		pt = vec.Vec2{X: cx + r*cos, Y: cy + r*sin}
		tangent = vec.Vec2{X: -sin * sign, Y: cos * sign}
		return pt, tangent
	}
	k := kappa * r
	start, _ := at(0)
	p.Cmds = append(p.Cmds, path.CmdMoveTo)
	p.Coords = append(p.Coords, start)
	for i := range 4 {
		p0, t0 := at(sign * float64(i) * math.Pi / 2)
		p1, t1 := at(sign * float64(i+1) * math.Pi / 2)
		p.Cmds = append(p.Cmds, path.CmdCubeTo)
		p.Coords = append(p.Coords, p0.Add(t0.Mul(k)), p1.Sub(t1.Mul(k)), p1)
	}
	p.Cmds = append(p.Cmds, path.CmdClose)
}

// checkClosed verifies that every directed edge is matched by exactly one
// edge in the opposite direction, i.e. that the mesh is watertight and
// consistently oriented.
func checkClosed(t *testing.T, m *Mesh) {
	t.Helper()
	edges := make(map[[2]int]int)
	for _, f := range m.Faces {
		for i := range 3 {
			edges[[2]int{f[i], f[(i+1)%3]}]++
		}
	}
	for e, n := range edges {
		if n != 1 {
			t.Fatalf("edge %v used %d times", e, n)
		}
		if edges[[2]int{e[1], e[0]}] != 1 {
			t.Fatalf("edge %v has no partner", e)
		}
	}
}

func TestExtrudeSquare(t *testing.T) {
	p := &path.Data{}
	addRect(p, 0, 0, 10, 10)
	m, err := Extrude(shape.New(p), 3, 8)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumTriangles() != 12 {
		t.Errorf("got %d triangles, want 12", m.NumTriangles())
	}
	checkClosed(t, m)
	if v := m.Volume(); math.Abs(v-300) > 1e-9 {
		t.Errorf("volume = %g, want 300", v)
	}
	b := m.Bounds()
	want := r3.Box{Min: r3.Vec{}, Max: r3.Vec{X: 10, Y: 10, Z: 3}}
	if b != want {
		t.Errorf("bounds = %v, want %v", b, want)
	}
}

func TestExtrudeHole(t *testing.T) {
	p := &path.Data{}
	addRect(p, 0, 0, 20, 20)
	addRect(p, 5, 5, 15, 15) // same orientation, still a hole
	m, err := Extrude(shape.New(p), 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	checkClosed(t, m)
	if v := m.Volume(); math.Abs(v-2*(400-100)) > 1e-9 {
		t.Errorf("volume = %g, want 600", v)
	}
}

func TestExtrudeTwoHoles(t *testing.T) {
	p := &path.Data{}
	addRect(p, 0, 0, 30, 10)
	addRect(p, 2, 2, 8, 8)
	addRect(p, 12, 2, 18, 8)
	addCircle(p, 25, 5, 3, true)
	m, err := Extrude(shape.New(p), 1, 8)
	if err != nil {
		t.Fatal(err)
	}
	checkClosed(t, m)
	circle := shape.New(&path.Data{})
	addCircle(circle.Path, 25, 5, 3, false)
	circleArea := circle.Contours(8)[0].Area()
	want := 300 - 36 - 36 - circleArea
	if v := m.Volume(); math.Abs(v-want) > 1e-6 {
		t.Errorf("volume = %g, want %g", v, want)
	}
}

func TestExtrudeCurves(t *testing.T) {
	p := &path.Data{}
	addCircle(p, 0, 0, 5, false)
	addCircle(p, 0, 0, 3, true)
	for _, segs := range []int{1, 4, 8} {
		m, err := Extrude(shape.New(p), 4, segs)
		if err != nil {
			t.Fatal(err)
		}
		checkClosed(t, m)
		if m.Volume() <= 0 {
			t.Errorf("segs=%d: non-positive volume", segs)
		}
	}
}

func TestExtrudeDeterministic(t *testing.T) {
	p := &path.Data{}
	addCircle(p, 0, 0, 5, false)
	addRect(p, -1, -1, 1, 1)
	a, _ := Extrude(shape.New(p), 2, 8)
	b, _ := Extrude(shape.New(p), 2, 8)
	if len(a.Vertices) != len(b.Vertices) || len(a.Faces) != len(b.Faces) {
		t.Fatal("vertex or face counts differ")
	}
	for i := range a.Faces {
		if a.Faces[i] != b.Faces[i] {
			t.Fatalf("face %d differs", i)
		}
	}
}

func TestExtrudeExtent(t *testing.T) {
	p := &path.Data{}
	addRect(p, -3, 2, 7, 4)
	for _, d := range []float64{0.1, 2, 5} {
		m, err := Extrude(shape.New(p), d, 8)
		if err != nil {
			t.Fatal(err)
		}
		size := m.Bounds().Size()
		if math.Abs(size.Z-d) > 1e-12 || size.X != 10 || size.Y != 2 {
			t.Errorf("depth %g: size %v", d, size)
		}
	}
}

func TestExtrudeErrors(t *testing.T) {
	s := shape.Fallback()
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Extrude(s, d, 8); !errors.Is(err, ErrDepth) {
			t.Errorf("depth %g: got %v", d, err)
		}
	}
	if _, err := Extrude(s, 1, 0); !errors.Is(err, ErrCurveSegments) {
		t.Errorf("got %v", err)
	}
}

func TestExtrudeEmpty(t *testing.T) {
	m, err := Extrude(shape.New(nil), 1, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Empty() {
		t.Error("mesh of an empty shape is not empty")
	}
}

func TestTransformFlip(t *testing.T) {
	p := &path.Data{}
	addRect(p, 0, 0, 1, 1)
	m, _ := Extrude(shape.New(p), 1, 8)
	mirror := func(v r3.Vec) r3.Vec { return r3.Vec{X: -v.X, Y: v.Y, Z: v.Z} }
	if v := m.Transform(mirror, true).Volume(); math.Abs(v-1) > 1e-12 {
		t.Errorf("mirrored volume with flip = %g, want 1", v)
	}
	if v := m.Transform(mirror, false).Volume(); math.Abs(v+1) > 1e-12 {
		t.Errorf("mirrored volume without flip = %g, want -1", v)
	}
	if math.Abs(m.Volume()-1) > 1e-12 {
		t.Error("Transform modified the original mesh")
	}
}

func TestNormal(t *testing.T) {
	p := &path.Data{}
	addRect(p, 0, 0, 1, 1)
	m, _ := Extrude(shape.New(p), 1, 8)
	// the first faces form the top cap
	if n := m.Normal(0); n != (r3.Vec{Z: 1}) {
		t.Errorf("top normal = %v", n)
	}
}

// checkCovers verifies that the triangles, with interior edges cancelled,
// have exactly the edges of the ring as their boundary.
func checkCovers(t *testing.T, ring []int, tris [][3]int) {
	t.Helper()
	edges := make(map[[2]int]int)
	for _, tri := range tris {
		for i := range 3 {
			e := [2]int{tri[i], tri[(i+1)%3]}
			if r := [2]int{e[1], e[0]}; edges[r] > 0 {
				edges[r]--
			} else {
				edges[e]++
			}
		}
	}
	for i := range ring {
		e := [2]int{ring[i], ring[(i+1)%len(ring)]}
		if edges[e] != 1 {
			t.Fatalf("ring edge %v covered %d times", e, edges[e])
		}
		delete(edges, e)
	}
	for e, n := range edges {
		if n > 0 {
			t.Fatalf("edge %v is not on the ring", e)
		}
	}
}

func TestForceClip(t *testing.T) {
	// vertex 1 lies on the straight line from vertex 0 to vertex 2
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}

	var tris [][3]int
	rest := forceClip(pts, []int{0, 1, 2, 3, 4}, &tris)
	if len(rest) != 4 || len(tris) != 1 {
		t.Fatalf("got ring %v and triangles %v", rest, tris)
	}
	if tris[0] != [3]int{0, 1, 2} {
		t.Errorf("clipped %v, want [0 1 2]", tris[0])
	}
	tris = append(tris, earClip(pts, rest)...)
	checkCovers(t, []int{0, 1, 2, 3, 4}, tris)

	// a spike along a bridge is removed without a triangle
	tris = nil
	rest = forceClip(pts, []int{0, 3, 0, 2, 4}, &tris)
	if len(tris) != 0 {
		t.Errorf("unexpected triangles %v", tris)
	}
	if len(rest) != 3 {
		t.Errorf("got ring %v", rest)
	}
}

func TestEarClipDegenerateLast(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	tris := earClip(pts, []int{0, 1, 2})
	checkCovers(t, []int{0, 1, 2}, tris)
}
