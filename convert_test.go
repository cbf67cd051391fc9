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
package extrude

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/extrude/shape"
	"seehuhn.de/go/extrude/stl"
)

const twoSquaresSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20">
  <path d="M0 0H10V10H0Z" fill="#ff0000"/>
  <path d="M10 10H15V15H10Z" fill="#00FF00"/>
</svg>`

func unzip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	res := make(map[string][]byte)
	var names []string
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		res[f.Name] = body
		names = append(names, f.Name)
	}
	res[""] = []byte(strings.Join(names, ","))
	return res
}

func TestConvertSeparate(t *testing.T) {
	res, err := Convert(context.Background(), Request{
		Document: []byte(twoSquaresSVG),
		Depths:   map[string]float64{"ff0000": 3, "#00ff00": 1},
		Quality:  Quality{CurveSegments: 4, ScaleFactor: 1, OverlapAmount: 0.5},
		Mode:     Separate,
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, ArchiveFilename, res.Files[0].Name)
	assert.Equal(t, 0, res.Diagnostics)
	assert.Equal(t, []LayerInfo{
		{Color: "ff0000", Depth: 3, ShapeCount: 1},
		{Color: "00ff00", Depth: 1, ShapeCount: 1},
	}, res.Layers)

	files := unzip(t, res.Files[0].Data)
	assert.Equal(t, "red-layer.stl,lime-layer.stl", string(files[""]))

	for name, depth := range map[string]float64{"red-layer.stl": 3, "lime-layer.stl": 1} {
		model, err := stl.Read(bytes.NewReader(files[name]))
		require.NoError(t, err, name)
		b := model.Bounds()
		// main slab up to the depth, overlap slab from -0.5 to 0.5
		assert.InDelta(t, -0.5, b.Min.Z, 1e-5, name)
		assert.InDelta(t, depth, b.Max.Z, 1e-5, name)
		// 12 triangles per box
		assert.Len(t, model.Triangles, 24, name)
	}
}

func TestConvertCombined(t *testing.T) {
	for _, f := range []stl.Format{stl.Binary, stl.ASCII} {
		t.Run(f.String(), func(t *testing.T) {
			res, err := Convert(context.Background(), Request{
				Document: []byte(twoSquaresSVG),
				Quality:  Quality{CurveSegments: 4, ScaleFactor: 2, OverlapAmount: 0.5},
				Base:     &BaseLayer{Height: 1, Color: "ffffff"},
				Format:   f,
			})
			require.NoError(t, err)
			require.Len(t, res.Files, 1)
			assert.Equal(t, CombinedFilename, res.Files[0].Name)

			model, err := stl.Read(bytes.NewReader(res.Files[0].Data))
			require.NoError(t, err)
			assert.Equal(t, f, model.Format)
			// two main slabs and two foundation boxes
			assert.Len(t, model.Triangles, 48)

			b := model.Bounds()
			assert.InDelta(t, -2.5, b.Min.Z, 1e-5)
			assert.InDelta(t, DefaultDepth, b.Max.Z, 1e-5)
			assert.InDelta(t, 30, b.Size().X, 1e-5)
			assert.InDelta(t, 0, b.Center().X, 1e-5)
			assert.InDelta(t, 0, b.Center().Y, 1e-5)
		})
	}
}

func TestConvertSeparateBase(t *testing.T) {
	res, err := Convert(context.Background(), Request{
		Document: []byte(twoSquaresSVG),
		Base:     &BaseLayer{Height: 1, Color: "#000"},
		Mode:     Separate,
	})
	require.NoError(t, err)
	files := unzip(t, res.Files[0].Data)
	assert.Equal(t, "red-layer.stl,lime-layer.stl,base-layer.stl", string(files[""]))
}

func TestConvertMalformedPath(t *testing.T) {
	var logBuf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logBuf, nil)))
	defer SetLogger(nil)

	doc := `<svg><path d="M0 0 L10 0 X 3 L10 10 L0 10 Z" fill="#123456"/><path d="Q" fill="#654321"/></svg>`
	res, err := Convert(context.Background(), Request{Document: []byte(doc)})
	require.NoError(t, err)
	assert.Greater(t, res.Diagnostics, 1)
	require.Len(t, res.Files, 1)
	assert.NotEmpty(t, res.Files[0].Data)
	require.Len(t, res.Layers, 2)

	assert.Contains(t, logBuf.String(), "path data problem")
	assert.Contains(t, logBuf.String(), "color=654321")
}

func TestConvertGradientFill(t *testing.T) {
	var logBuf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logBuf, nil)))
	defer SetLogger(nil)

	doc := `<svg viewBox="0 0 20 20">
  <defs><radialGradient id="shade"/></defs>
  <path d="M0 0H10V10H0Z" fill="#ff0000"/>
  <circle cx="15" cy="15" r="4" fill="url(#shade)"/>
</svg>`
	res, err := Convert(context.Background(), Request{Document: []byte(doc)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Diagnostics)
	assert.Equal(t, []LayerInfo{{Color: "ff0000", Depth: DefaultDepth, ShapeCount: 1}}, res.Layers)
	assert.Contains(t, logBuf.String(), "element skipped")
	assert.Contains(t, logBuf.String(), "tag=circle")
}

func TestConvertOverflowingPath(t *testing.T) {
	doc := `<svg viewBox="0 0 20 20">
  <path d="M0 0H10V10H0Z" fill="#ff0000"/>
  <path d="M0 0H1e200V1e200H0Z" transform="scale(1e200)" fill="#0000ff"/>
</svg>`
	for _, f := range []stl.Format{stl.Binary, stl.ASCII} {
		t.Run(f.String(), func(t *testing.T) {
			res, err := Convert(context.Background(), Request{
				Document: []byte(doc),
				Quality:  Quality{CurveSegments: 4, ScaleFactor: 1},
				Mode:     Separate,
				Format:   f,
			})
			require.NoError(t, err)
			assert.Greater(t, res.Diagnostics, 0)

			files := unzip(t, res.Files[0].Data)
			assert.Equal(t, "red-layer.stl,blue-layer.stl", string(files[""]))

			// the fallback square for the blue path does not move the
			// red layer away from the centre
			red, err := stl.Read(bytes.NewReader(files["red-layer.stl"]))
			require.NoError(t, err)
			b := red.Bounds()
			assert.InDelta(t, -5, b.Min.X, 1e-5)
			assert.InDelta(t, 5, b.Max.X, 1e-5)
			assert.InDelta(t, -5, b.Min.Y, 1e-5)
			assert.InDelta(t, 5, b.Max.Y, 1e-5)

			blue, err := stl.Read(bytes.NewReader(files["blue-layer.stl"]))
			require.NoError(t, err)
			b = blue.Bounds()
			for _, v := range []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
				assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "blue bounds %v", b)
			}
			assert.InDelta(t, 1, b.Max.X-b.Min.X, 1e-5)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	ok := []byte(twoSquaresSVG)
	cases := map[string]struct {
		req  Request
		want error
	}{
		"empty":       {Request{Document: []byte("  ")}, ErrInput},
		"not svg":     {Request{Document: []byte("<html/>")}, ErrInput},
		"no paths":    {Request{Document: []byte("<svg><g/></svg>")}, ErrInput},
		"bad xml":     {Request{Document: []byte("<svg><path")}, ErrInput},
		"depth":       {Request{Document: ok, Depths: map[string]float64{"ff0000": 0}}, ErrParam},
		"depth key":   {Request{Document: ok, Depths: map[string]float64{"red": 1}}, ErrParam},
		"mode":        {Request{Document: ok, Mode: ExportMode(9)}, ErrParam},
		"format":      {Request{Document: ok, Format: stl.Format(9)}, ErrParam},
		"base height": {Request{Document: ok, Base: &BaseLayer{Color: "ffffff"}}, ErrParam},
		"quality":     {Request{Document: ok, Quality: Quality{CurveSegments: -1}}, ErrParam},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Convert(context.Background(), c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Convert(ctx, Request{Document: []byte(twoSquaresSVG)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertConcurrent(t *testing.T) {
	req := Request{Document: []byte(twoSquaresSVG), Mode: Separate}
	want, err := Convert(context.Background(), req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Convert(context.Background(), req)
		}()
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want.Files, results[i].Files)
	}
}

func TestExportEmpty(t *testing.T) {
	scene, err := Compose(NewRegistry(), testOptions())
	require.NoError(t, err)
	_, err = ExportCombined(scene, stl.Binary)
	assert.ErrorIs(t, err, ErrNoColors)
	_, err = ExportByColor(scene, stl.Binary)
	assert.ErrorIs(t, err, ErrNoColors)
}

func TestExportSkipsEmptyLayers(t *testing.T) {
	reg, _, err := Load([]byte(twoSquaresSVG))
	require.NoError(t, err)
	reg.Register("0000ff", shape.New(nil))

	scene, err := Compose(reg, testOptions())
	require.NoError(t, err)
	files, err := ExportByColor(scene, stl.ASCII)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, ColorKey("ff0000"), files[0].Key)
	assert.Equal(t, ColorKey("00ff00"), files[1].Key)
	assert.True(t, bytes.HasPrefix(files[0].Data, []byte("solid ff0000")))
}

func TestLayerFilenames(t *testing.T) {
	used := map[string]bool{}
	names := []string{}
	for _, k := range []ColorKey{"ff0000", "fe0000", BaseKey} {
		n := layerFilename(k, used)
		used[n] = true
		names = append(names, n)
	}
	assert.Equal(t, []string{"red-layer.stl", "red-fe0000-layer.stl", "base-layer.stl"}, names)
}

func TestInspect(t *testing.T) {
	layers, err := Inspect([]byte(`<svg>
  <path d="M0 0H1V1Z"/>
  <path d="M0 0H1V1Z" fill="red"/>
  <rect width="3" height="3" fill="#000"/>
</svg>`))
	require.NoError(t, err)
	assert.Equal(t, []LayerInfo{
		{Color: "000000", Depth: DefaultDepth, ShapeCount: 2},
		{Color: "ff0000", Depth: DefaultDepth, ShapeCount: 1},
	}, layers)

	_, err = Inspect(nil)
	assert.ErrorIs(t, err, ErrInput)
}
