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
// Command extrude converts a coloured SVG drawing, or a raster image, into
// STL files for multi-colour 3D printing.
//
// Usage:
//
//	extrude [flags] input.svg
//	extrude [flags] picture.png
//	extrude --serve :8080
//
// Each fill colour of the drawing becomes a separate solid.  Settings can
// be read from a YAML or TOML job file with --config; flags given on the
// command line override the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/spf13/pflag"

	"seehuhn.de/go/extrude"
	"seehuhn.de/go/extrude/archive"
	"seehuhn.de/go/extrude/bitmap"
	"seehuhn.de/go/extrude/colorname"
	"seehuhn.de/go/extrude/config"
	"seehuhn.de/go/extrude/httpapi"
	"seehuhn.de/go/extrude/preview"
	"seehuhn.de/go/extrude/proof"
	"seehuhn.de/go/extrude/svgdoc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, pflag.ErrHelp) {
		return
	} else if err != nil {
		fmt.Fprintln(os.Stderr, "extrude:", err)
		os.Exit(1)
	}
}

// options holds the command line flags which are not part of a job.
type options struct {
	configFile   string
	writeConfig  string
	output       string
	extract      bool
	list         bool
	previewFile  string
	previewWidth int
	proofDir     string
	masksDir     string
	serve        string
	verbose      bool
}

// flags binds the command line to opt and to the job settings.
type flags struct {
	*pflag.FlagSet

	depths     map[string]string
	export     string
	format     string
	upAxis     string
	segments   int
	scale      float64
	overlap    float64
	baseHeight float64
	baseColor  string
	mirrorX    bool
	mirrorY    bool
	colors     int
	maxSize    int
}

func newFlags(opt *options, stderr io.Writer) *flags {
	def := config.Default()
	fs := pflag.NewFlagSet("extrude", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &flags{FlagSet: fs}

	fs.StringVarP(&opt.configFile, "config", "c", "", "read settings from a YAML or TOML `file`")
	fs.StringVar(&opt.writeConfig, "write-config", "", "write the effective settings to `file` and exit")
	fs.StringVarP(&opt.output, "output", "o", ".", "output `directory`")
	fs.BoolVar(&opt.extract, "extract", false, "unpack the archive of per-colour files")
	fs.BoolVar(&opt.list, "list", false, "list the colour layers and exit")
	fs.StringVar(&opt.previewFile, "preview", "", "write a PNG preview to `file`")
	fs.IntVar(&opt.previewWidth, "preview-width", 512, "width of the preview in pixels")
	fs.StringVar(&opt.proofDir, "proof", "", "write one PDF proof per colour into `directory`")
	fs.StringVar(&opt.masksDir, "masks", "", "raster input: write the colour masks into `directory`")
	fs.StringVar(&opt.serve, "serve", "", "serve the HTTP API on `address` instead of converting a file")
	fs.BoolVarP(&opt.verbose, "verbose", "v", false, "log progress details")

	fs.StringToStringVarP(&f.depths, "depth", "d", nil, "extrusion depth in mm per colour, e.g. ff0000=3")
	fs.StringVarP(&f.export, "export", "e", def.Export, "combined or separate")
	fs.StringVarP(&f.format, "format", "f", def.Format, "STL flavour, binary or ascii")
	fs.StringVar(&f.upAxis, "up", def.UpAxis, "axis pointing up in the output, z or y")
	fs.IntVar(&f.segments, "segments", def.Quality.CurveSegments, "straight segments per curve segment")
	fs.Float64VarP(&f.scale, "scale", "s", def.Quality.ScaleFactor, "millimetres per document unit")
	fs.Float64Var(&f.overlap, "overlap", def.Quality.OverlapAmount, "overlap between layers in mm")
	fs.Float64Var(&f.baseHeight, "base", 0, "add a foundation slab of the given height in mm")
	fs.StringVar(&f.baseColor, "base-color", "ffffff", "colour of the foundation slab")
	fs.BoolVar(&f.mirrorX, "mirror-x", false, "mirror along the x axis")
	fs.BoolVar(&f.mirrorY, "mirror-y", false, "mirror along the y axis")
	fs.IntVar(&f.colors, "colors", def.Colors, "raster input: number of colours")
	fs.IntVar(&f.maxSize, "max-size", def.MaxSize, "raster input: largest width or height before tracing")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: extrude [flags] input.(svg|png|jpg|gif|bmp|tiff|webp)")
		fmt.Fprintln(stderr, "       extrude --serve address")
		fs.PrintDefaults()
	}
	return f
}

// apply copies the flags which were given on the command line into job.
func (f *flags) apply(job *config.Job) error {
	if f.Changed("depth") {
		if job.Depths == nil {
			job.Depths = map[string]float64{}
		}
		for k, v := range f.depths {
			d, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("--depth %s=%s: %w", k, v, err)
			}
			job.Depths[k] = d
		}
	}
	if f.Changed("export") {
		job.Export = f.export
	}
	if f.Changed("format") {
		job.Format = f.format
	}
	if f.Changed("up") {
		job.UpAxis = f.upAxis
	}
	if f.Changed("segments") {
		job.Quality.CurveSegments = f.segments
	}
	if f.Changed("scale") {
		job.Quality.ScaleFactor = f.scale
	}
	if f.Changed("overlap") {
		job.Quality.OverlapAmount = f.overlap
	}
	if f.Changed("base") {
		job.Base = &config.Base{Height: f.baseHeight, Color: f.baseColor}
	} else if f.Changed("base-color") && job.Base != nil {
		job.Base.Color = f.baseColor
	}
	if f.Changed("mirror-x") {
		job.Mirror.X = f.mirrorX
	}
	if f.Changed("mirror-y") {
		job.Mirror.Y = f.mirrorY
	}
	if f.Changed("colors") {
		job.Colors = f.colors
	}
	if f.Changed("max-size") {
		job.MaxSize = f.maxSize
	}
	return job.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opt := &options{}
	f := newFlags(opt, stderr)
	if err := f.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opt.verbose {
		level = slog.LevelDebug
	}
	extrude.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer extrude.SetLogger(nil)

	job := config.Default()
	if opt.configFile != "" {
		var err error
		job, err = config.Load(opt.configFile)
		if err != nil {
			return err
		}
	}
	if err := f.apply(job); err != nil {
		return err
	}

	if opt.writeConfig != "" {
		return writeConfig(opt.writeConfig, job)
	}
	if opt.serve != "" {
		return serve(ctx, opt.serve, job)
	}
	if f.NArg() != 1 {
		f.Usage()
		return errors.New("expected exactly one input file")
	}

	input := f.Arg(0)
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	document, err := toSVG(ctx, data, job, opt.masksDir)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	if opt.list {
		return listLayers(stdout, document, job)
	}
	if opt.previewFile != "" {
		if err := writePreview(opt.previewFile, document, opt.previewWidth); err != nil {
			return err
		}
	}
	req, err := job.Request(document)
	if err != nil {
		return err
	}
	if opt.proofDir != "" {
		reg, _, err := extrude.Load(document)
		if err != nil {
			return err
		}
		files, err := proof.WriteLayers(opt.proofDir, reg, req.Quality)
		if err != nil {
			return err
		}
		extrude.Logger().Info("wrote proofs", "files", len(files), "dir", opt.proofDir)
	}

	res, err := extrude.Convert(ctx, req)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opt.output, 0o755); err != nil {
		return err
	}
	for _, file := range res.Files {
		if req.Mode == extrude.Separate && opt.extract {
			names, err := archive.Extract(file.Data, opt.output)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(stdout, name)
			}
			continue
		}
		name := filepath.Join(opt.output, file.Name)
		if err := os.WriteFile(name, file.Data, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(stdout, name)
	}
	if res.Diagnostics > 0 {
		extrude.Logger().Warn("some paths could not be read completely", "problems", res.Diagnostics)
	}
	return nil
}

// toSVG returns data unchanged if it is not a raster image.  Raster images
// are traced into an SVG document.
func toSVG(ctx context.Context, data []byte, job *config.Job, masksDir string) ([]byte, error) {
	img, err := bitmap.Decode(data)
	if errors.Is(err, bitmap.ErrNotImage) {
		return data, nil
	} else if err != nil {
		return nil, err
	}

	small := bitmap.Downscale(img, job.MaxSize)
	svg, palette, err := bitmap.Vectorize(ctx, small, job.Colors, nil)
	if err != nil {
		return nil, err
	}
	extrude.Logger().Info("traced raster image",
		"width", small.Bounds().Dx(), "height", small.Bounds().Dy(), "colors", len(palette))
	if masksDir != "" {
		if err := os.MkdirAll(masksDir, 0o755); err != nil {
			return nil, err
		}
		if _, err := bitmap.SaveMasks(masksDir, small, palette); err != nil {
			return nil, err
		}
	}
	return svg, nil
}

func listLayers(w io.Writer, document []byte, job *config.Job) error {
	layers, err := extrude.Inspect(document)
	if err != nil {
		return err
	}
	depths := map[extrude.ColorKey]float64{}
	for k, d := range job.Depths {
		if key, err := extrude.ParseColorKey(k); err == nil {
			depths[key] = d
		}
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "COLOR\tNAME\tDEPTH\tSHAPES")
	for _, l := range layers {
		depth := l.Depth
		if d, ok := depths[l.Color]; ok {
			depth = d
		}
		fmt.Fprintf(tw, "#%s\t%s\t%g\t%d\n", l.Color, colorname.Name(string(l.Color)), depth, l.ShapeCount)
	}
	return tw.Flush()
}

func writePreview(name string, document []byte, width int) error {
	doc, err := svgdoc.ParseString(string(document))
	if err != nil {
		return err
	}
	img, err := preview.Render(doc, width)
	if err != nil {
		return err
	}
	return imgio.Save(name, img, imgio.PNGEncoder())
}

func writeConfig(name string, job *config.Job) error {
	format, err := config.FormatOf(name)
	if err != nil {
		return err
	}
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := job.Encode(out, format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func serve(ctx context.Context, addr string, job *config.Job) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           (&httpapi.Server{MaxImageSize: job.MaxSize}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		extrude.Logger().Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
