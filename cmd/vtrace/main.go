// seehuhn.de/go/vectorize - convert raster images to vector graphics
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

// Command vtrace converts a raster image into an SVG or PDF file.
//
// Usage:
//
//	vtrace [flags] input.png output.svg
//
// The output format is chosen by the extension of the output file.
// Settings can be read from a TOML file using -config; flags given on the
// command line take precedence.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/vectorize"
	"seehuhn.de/go/vectorize/pdfout"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "vtrace:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("vtrace", flag.ContinueOnError)
	configFile := fs.String("config", "", "read settings from this TOML `file`")
	previewFile := fs.String("preview", "", "also render the result into this PNG `file`")
	verbose := fs.Bool("v", false, "log the progress of the tracer")

	p := defaultPreset()
	flags := &preset{}
	fs.StringVar(&flags.Mode, "mode", p.Mode, "outline simplification: spline, polygon or none")
	fs.StringVar(&flags.Hierarchical, "hierarchical", p.Hierarchical, "layering: stacked or cutout")
	fs.Float64Var(&flags.CornerThreshold, "corner", p.CornerThreshold, "minimum corner angle in `degrees`")
	fs.Float64Var(&flags.LengthThreshold, "length", p.LengthThreshold, "segment length for subdivision")
	fs.IntVar(&flags.MaxIterations, "iterations", p.MaxIterations, "maximum number of subdivision rounds")
	fs.Float64Var(&flags.SpliceThreshold, "splice", p.SpliceThreshold, "minimum splice angle in `degrees`")
	fs.IntVar(&flags.FilterSpeckle, "speckle", p.FilterSpeckle, "discard patches smaller than this many pixels")
	fs.IntVar(&flags.PathPrecision, "precision", p.PathPrecision, "decimal digits of path coordinates")
	fs.IntVar(&flags.LayerDifference, "gradient", p.LayerDifference, "colour difference between layers")
	fs.IntVar(&flags.ColorPrecision, "color-bits", p.ColorPrecision, "low-order colour bits to ignore")
	fs.BoolVar(&flags.Invert, "invert", p.Invert, "trace the colour negative")
	fs.StringVar(&flags.PathFill, "fill", p.PathFill, "fill every path with this colour")
	fs.StringVar(&flags.BackgroundColor, "background", p.BackgroundColor, "background colour of the document")
	fs.StringVar(&flags.Attributes, "attrs", "", "attributes of the svg element (default: the image size)")
	fs.Float64Var(&flags.Scale, "scale", p.Scale, "scale factor of the output")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: vtrace [flags] input output.svg|output.pdf")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("expected an input and an output file")
	}
	inName, outName := fs.Arg(0), fs.Arg(1)

	if *configFile != "" {
		if err := loadPreset(*configFile, &p); err != nil {
			return err
		}
	}
	overrideSet(fs, &p, flags)
	if !(p.Scale > 0) {
		return fmt.Errorf("scale must be positive, got %g", p.Scale)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	img, err := readImage(inName)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if p.Attributes == "" {
		p.Attributes = fmt.Sprintf(`width="%g" height="%g"`,
			float64(b.Dx())*p.Scale, float64(b.Dy())*p.Scale)
	}

	s, err := vectorize.NewSession(img, p.config(), p.options(), vectorize.WithLogger(logger))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = s.Run(ctx, func(progress int) {
		logger.Debug("progress", "percent", progress, "stage", s.Stage())
	})
	if err != nil {
		return errors.Wrapf(err, "cannot trace %q", inName)
	}
	logger.Info("traced", "input", inName, "paths", s.Document().Len())

	w, h := float64(b.Dx())*p.Scale, float64(b.Dy())*p.Scale
	switch strings.ToLower(filepath.Ext(outName)) {
	case ".pdf":
		err = pdfout.Write(outName, s.Document(), w, h)
	case ".svg":
		err = os.WriteFile(outName, []byte(s.Render()), 0644)
	default:
		return fmt.Errorf("unknown output format %q", filepath.Ext(outName))
	}
	if err != nil {
		return errors.Wrapf(err, "cannot write %q", outName)
	}

	if *previewFile != "" {
		prev := vectorize.Preview(s.Document(), int(w+0.5), int(h+0.5))
		if err := writePNG(*previewFile, prev); err != nil {
			return errors.Wrapf(err, "cannot write %q", *previewFile)
		}
	}
	return nil
}

// overrideSet copies the values of the flags given on the command line
// from flags into p.
func overrideSet(fs *flag.FlagSet, p, flags *preset) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			p.Mode = flags.Mode
		case "hierarchical":
			p.Hierarchical = flags.Hierarchical
		case "corner":
			p.CornerThreshold = flags.CornerThreshold
		case "length":
			p.LengthThreshold = flags.LengthThreshold
		case "iterations":
			p.MaxIterations = flags.MaxIterations
		case "splice":
			p.SpliceThreshold = flags.SpliceThreshold
		case "speckle":
			p.FilterSpeckle = flags.FilterSpeckle
		case "precision":
			p.PathPrecision = flags.PathPrecision
		case "gradient":
			p.LayerDifference = flags.LayerDifference
		case "color-bits":
			p.ColorPrecision = flags.ColorPrecision
		case "invert":
			p.Invert = flags.Invert
		case "fill":
			p.PathFill = flags.PathFill
		case "background":
			p.BackgroundColor = flags.BackgroundColor
		case "attrs":
			p.Attributes = flags.Attributes
		case "scale":
			p.Scale = flags.Scale
		}
	})
}

// readImage decodes an image file and converts it to NRGBA.
func readImage(fileName string) (*image.NRGBA, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %q", fileName)
	}

	if img, ok := src.(*image.NRGBA); ok {
		return img, nil
	}
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return img, nil
}

func writePNG(fileName string, img image.Image) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
