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
// Command export writes the test case catalogue to testdata/, one SVG file
// per test case plus an index in JSON format.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/extrude/testcases"
)

const outDir = "testdata"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

type jsonTestCase struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Fills  []string `json:"fills"`
	Area   float64  `json:"area,omitempty"`
}

func run() error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			file := name + ".svg"
			err := os.WriteFile(filepath.Join(outDir, file), []byte(tc.SVG()), 0o644)
			if err != nil {
				return err
			}
			out.TestCases = append(out.TestCases, jsonTestCase{
				Name:   name,
				File:   file,
				Width:  tc.Width,
				Height: tc.Height,
				Fills:  tc.Fills(),
				Area:   tc.Area,
			})
		}
	}

	f, err := os.Create(filepath.Join(outDir, "testcases.json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
