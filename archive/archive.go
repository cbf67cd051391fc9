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

// Package archive packs exported mesh files into a zip archive.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one file of an archive.
type Entry struct {
	Name string
	Data []byte
}

// modTime is stored for every entry, so that identical input gives
// identical archives.
var modTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Write writes a zip archive containing the given entries, in order.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		name := filepath.ToSlash(e.Name)
		if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
			return fmt.Errorf("zip: invalid entry name %q", e.Name)
		}
		if seen[name] {
			return fmt.Errorf("zip: duplicate entry %q", name)
		}
		seen[name] = true

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modTime,
		})
		if err != nil {
			return fmt.Errorf("zip: %w", err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("zip: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	return nil
}

// Pending is an archive which is being assembled in the background.
type Pending struct {
	done chan struct{}
	data []byte
	err  error
}

// Start begins assembling an archive from the given entries.  The
// caller must not modify the entries until Wait has returned.
func Start(entries []Entry) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		buf := &bytes.Buffer{}
		p.err = Write(buf, entries)
		if p.err == nil {
			p.data = buf.Bytes()
		}
	}()
	return p
}

// Wait blocks until the archive is complete or ctx is done.
func (p *Pending) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-p.done:
		return p.data, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Extract unpacks a zip archive into destDir and returns the paths of the
// written files.  Entries which would escape destDir are skipped.
func Extract(data []byte, destDir string) ([]string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}

	var extracted []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		dest, err := filepath.Abs(filepath.Join(destDir, f.Name))
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue // path escape
		}
		if err := extractFile(f, dest); err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}
	if len(extracted) == 0 {
		return nil, errors.New("unzip: archive is empty")
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
