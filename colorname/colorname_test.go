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

package colorname

import (
	"testing"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func TestName(t *testing.T) {
	cases := map[string]string{
		"ff0000":  "Red",
		"#FF0000": "Red",
		"fe0101":  "Red",
		"00ff00":  "Lime",
		"8b0000":  "Dark Red",
		"228b22":  "Forest Green",
		"000":     "Black",
		"fffffe":  "White",
		"xyz":     "XYZ",
	}
	for in, want := range cases {
		if got := Name(in); got != want {
			t.Errorf("Name(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"ff0000": "red",
		"8b0000": "dark-red",
		"228b22": "forest-green",
		"bogus!": "bogus",
	}
	for in, want := range cases {
		if got := Filename(in); got != want {
			t.Errorf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTableDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range named {
		if seen[e[0]] {
			t.Errorf("duplicate name %q", e[0])
		}
		seen[e[0]] = true
		if got := Name(e[1]); got != cases.Title(language.English).String(e[0]) {
			t.Errorf("%s: exact match named %q", e[0], got)
		}
	}
}
