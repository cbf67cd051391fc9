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
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"seehuhn.de/go/extrude/mesh"
	"seehuhn.de/go/extrude/shape"
)

func cube(t *testing.T, depth float64) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Extrude(shape.Fallback(), depth, 8)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestBinaryLayout(t *testing.T) {
	m := cube(t, 2)
	buf := &bytes.Buffer{}
	if err := WriteBinary(buf, "test", m); err != nil {
		t.Fatal(err)
	}
	want := headerSize + 4 + 50*m.NumTriangles()
	if buf.Len() != want {
		t.Fatalf("got %d bytes, want %d", buf.Len(), want)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("test")) {
		t.Error("header does not contain the name")
	}
}

func TestWriteRead(t *testing.T) {
	a := cube(t, 2)
	b := cube(t, 3).Translate(r3.Vec{X: 5})
	for _, f := range []Format{Binary, ASCII} {
		t.Run(f.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := Write(buf, f, "two cubes", a, b); err != nil {
				t.Fatal(err)
			}
			model, err := Read(buf)
			if err != nil {
				t.Fatal(err)
			}
			if model.Format != f {
				t.Errorf("format = %v, want %v", model.Format, f)
			}
			if n := len(model.Triangles); n != a.NumTriangles()+b.NumTriangles() {
				t.Errorf("got %d triangles", n)
			}
			box := model.Bounds()
			if box.Min != (r3.Vec{}) || box.Max != (r3.Vec{X: 6, Y: 1, Z: 3}) {
				t.Errorf("unexpected bounds %v", box)
			}
			// normals point outwards, so the volume is positive
			if v := model.Mesh().Volume(); math.Abs(v-5) > 1e-5 {
				t.Errorf("volume = %g, want 5", v)
			}
		})
	}
}

func TestASCIIName(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteASCII(buf, "red layer", cube(t, 1)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "solid red_layer\n") {
		t.Errorf("unexpected start %q", buf.String()[:20])
	}
	if !strings.HasSuffix(buf.String(), "endsolid red_layer\n") {
		t.Error("missing endsolid line")
	}
}

func TestWriteEmpty(t *testing.T) {
	for _, f := range []Format{Binary, ASCII} {
		buf := &bytes.Buffer{}
		err := Write(buf, f, "empty", &mesh.Mesh{}, nil)
		if !errors.Is(err, ErrEmpty) {
			t.Errorf("%v: got %v, want ErrEmpty", f, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%v: %d bytes written", f, buf.Len())
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Binary, "binary": Binary, "ASCII": ASCII, "text": ASCII} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("%q: got %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("obj"); err == nil {
		t.Error("expected an error")
	}
}

func TestReadGarbage(t *testing.T) {
	if _, err := Read(strings.NewReader("not an stl file")); err == nil {
		t.Error("expected an error")
	}
	if _, err := Read(strings.NewReader("solid x\n  facet normal 0 0\n")); err == nil {
		t.Error("expected an error for a short normal")
	}
}
