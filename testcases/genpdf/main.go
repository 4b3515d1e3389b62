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

// Command genpdf traces all test cases, stores the results as PDF files and
// renders them to PNGs using Ghostscript. The PNGs can be compared to the
// input bitmaps to judge the tracing quality.
package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/vectorize"
	"seehuhn.de/go/vectorize/pdfout"
	"seehuhn.de/go/vectorize/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			pngPath := filepath.Join(refDir, name+".png")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	cfg := vectorize.DefaultConfig()
	cfg.Mode = tc.Mode
	cfg.Hierarchical = tc.Hierarchical
	cfg.LayerDifference = 16

	s, err := vectorize.NewSession(tc.Image(), cfg, vectorize.Options{})
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Run(context.Background(), nil); err != nil {
		return err
	}

	// one pixel per point
	return pdfout.Write(pdfPath, s.Document(), float64(tc.Width), float64(tc.Height))
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=png16m: 24-bit colour
	// -r72: 72 DPI (1 point = 1 pixel)
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=png16m",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
