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

package svgpath

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// Command is one drawing command with its operands.  Implicitly repeated
// commands are split into separate Command values, so that len(Args)
// always equals the operand count of Op.
type Command struct {
	Op     byte // command letter, lower case for relative coordinates
	Args   []float64
	Offset int // byte offset of the command in the path data
}

// Diagnostic describes a part of the path data which was skipped.
type Diagnostic struct {
	Offset int    // byte offset into the path data
	Op     byte   // command letter, or 0 if unknown
	Msg    string // human readable description
}

func (d Diagnostic) String() string {
	if d.Op == 0 {
		return fmt.Sprintf("offset %d: %s", d.Offset, d.Msg)
	}
	return fmt.Sprintf("offset %d: %c: %s", d.Offset, d.Op, d.Msg)
}

// operandCount gives the number of operands for every command letter.
var operandCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// skipCommaWhitespace returns the number of leading bytes of b which are
// white space or a single separating comma.
func skipCommaWhitespace(b []byte) int {
	i := 0
	comma := false
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r', '\f':
			i++
		case ',':
			if comma {
				return i
			}
			comma = true
			i++
		default:
			return i
		}
	}
	return i
}

// Tokenize splits SVG path data into commands.  Unknown command letters,
// stray numbers and incomplete operand lists are skipped and reported as
// diagnostics.
func Tokenize(d string) ([]Command, []Diagnostic) {
	b := []byte(d)
	var cmds []Command
	var diags []Diagnostic

	var op byte    // current command letter, 0 if none or unknown
	var opPos int  // offset of the current command letter
	var groups int // operand groups emitted for the current command
	var args []float64
	var argPos int // offset of the first pending operand

	// emit moves complete operand groups from args to cmds.
	emit := func() {
		n := operandCount[upper(op)]
		for n > 0 && len(args) >= n {
			c := op
			// Extra coordinate pairs after a move-to are line-tos.
			if groups > 0 && op == 'M' {
				c = 'L'
			} else if groups > 0 && op == 'm' {
				c = 'l'
			}
			cmds = append(cmds, Command{Op: c, Args: append([]float64(nil), args[:n]...), Offset: opPos})
			args = args[n:]
			groups++
		}
	}

	// flush reports operands which could not be used by the current command.
	flush := func() {
		if op == 0 {
			return
		}
		n := operandCount[upper(op)]
		switch {
		case n == 0 && len(args) > 0:
			diags = append(diags, Diagnostic{Offset: argPos, Op: op, Msg: "unexpected operands"})
		case n > 0 && groups == 0 && len(args) == 0:
			diags = append(diags, Diagnostic{Offset: opPos, Op: op, Msg: "missing operands"})
		case n > 0 && len(args) > 0:
			diags = append(diags, Diagnostic{
				Offset: argPos,
				Op:     op,
				Msg:    fmt.Sprintf("%d trailing operands ignored", len(args)),
			})
		}
		args = args[:0]
	}

	i := skipCommaWhitespace(b)
	for i < len(b) {
		c := b[i]
		if isLetter(c) && c != 'e' && c != 'E' {
			emit()
			flush()
			args = args[:0]
			if _, ok := operandCount[upper(c)]; ok {
				op = c
				opPos = i
				groups = 0
				if upper(c) == 'Z' {
					cmds = append(cmds, Command{Op: c, Offset: i})
				}
			} else {
				diags = append(diags, Diagnostic{Offset: i, Op: c, Msg: "unknown command"})
				op = 0
			}
			i++
			i += skipCommaWhitespace(b[i:])
			continue
		}

		// Arc flags may be written without separators, e.g. "a5 5 0 01 10 10".
		if op != 0 && upper(op) == 'A' && (len(args)%7 == 3 || len(args)%7 == 4) && (c == '0' || c == '1') {
			if len(args) == 0 {
				argPos = i
			}
			args = append(args, float64(c-'0'))
			i++
			i += skipCommaWhitespace(b[i:])
			emit()
			continue
		}

		x, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			diags = append(diags, Diagnostic{Offset: i, Op: op, Msg: fmt.Sprintf("unexpected character %q", c)})
			i++
			i += skipCommaWhitespace(b[i:])
			continue
		}
		if op == 0 {
			diags = append(diags, Diagnostic{Offset: i, Msg: "operand without command"})
		} else {
			if len(args) == 0 {
				argPos = i
			}
			args = append(args, x)
			emit()
		}
		i += n
		i += skipCommaWhitespace(b[i:])
	}
	emit()
	flush()

	return cmds, diags
}
