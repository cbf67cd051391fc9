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

package proof

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/extrude"
)

const twoLayers = `<svg viewBox="0 0 100 100">
  <path d="M10 10H40V40H10Z M20 20V30H30V20Z" fill="#ff0000"/>
  <circle cx="70" cy="70" r="15" fill="#0000ff"/>
</svg>`

func TestWriteLayers(t *testing.T) {
	reg, _, err := extrude.Load([]byte(twoLayers))
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "proofs")

	files, err := WriteLayers(dir, reg, extrude.DefaultQuality())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"red-ff0000.pdf", "blue-0000ff.pdf"}
	if len(files) != len(want) {
		t.Fatalf("got %d files: %v", len(files), files)
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Errorf("file %d: %s, want %s", i, filepath.Base(f), want[i])
		}
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("%s: not a PDF file", f)
		}
	}
}

func TestWriteLayersErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteLayers(dir, extrude.NewRegistry(), extrude.DefaultQuality())
	if !errors.Is(err, extrude.ErrNoColors) {
		t.Errorf("got %v, want ErrNoColors", err)
	}

	reg, _, err := extrude.Load([]byte(twoLayers))
	if err != nil {
		t.Fatal(err)
	}
	bad := extrude.DefaultQuality()
	bad.ScaleFactor = 0
	if _, err := WriteLayers(dir, reg, bad); err == nil {
		t.Error("expected an error for a zero scale factor")
	}
}
