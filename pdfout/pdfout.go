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

// Package pdfout writes traced documents as PDF files.
package pdfout

import (
	stdcolor "image/color"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/vectorize/svg"
)

// Write stores doc as a single-page PDF file. The page size is given in
// PDF points; one unit of the document corresponds to one point.
//
// The paths are painted in document order with the nonzero winding rule.
// The background colour of the document is painted first, if it is a hex
// colour.
func Write(fileName string, doc *svg.Document, width, height float64) error {
	paper := &pdf.Rectangle{
		URx: width,
		URy: height,
	}
	page, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	opts := doc.Options()
	if bg, err := svg.ParseHexColor(opts.BackgroundColor); err == nil {
		page.SetFillColor(deviceRGB(bg))
		page.Rectangle(0, 0, width, height)
		page.Fill()
	}

	// PDF origin is bottom-left, documents use top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, height})
	s := opts.Scale
	page.Transform(matrix.Matrix{s, 0, 0, s, 0, 0})

	for _, e := range doc.All() {
		if len(e.Path) == 0 {
			continue
		}
		page.SetFillColor(deviceRGB(doc.FillColor(e)))

		ox, oy := e.Offset.X, e.Offset.Y
		var current, start curve.Point
		for _, el := range e.Path {
			switch el.Kind {
			case curve.MoveToKind:
				page.MoveTo(el.P0.X+ox, el.P0.Y+oy)
				current, start = el.P0, el.P0
			case curve.LineToKind:
				page.LineTo(el.P0.X+ox, el.P0.Y+oy)
				current = el.P0
			case curve.QuadToKind:
				c := curve.QuadBez{P0: current, P1: el.P0, P2: el.P1}.Raise()
				page.CurveTo(c.P1.X+ox, c.P1.Y+oy, c.P2.X+ox, c.P2.Y+oy, c.P3.X+ox, c.P3.Y+oy)
				current = el.P1
			case curve.CubicToKind:
				page.CurveTo(el.P0.X+ox, el.P0.Y+oy, el.P1.X+ox, el.P1.Y+oy, el.P2.X+ox, el.P2.Y+oy)
				current = el.P2
			case curve.ClosePathKind:
				page.ClosePath()
				current = start
			}
		}
		page.Fill()
	}

	return page.Close()
}

func deviceRGB(c stdcolor.NRGBA) color.Color {
	return color.DeviceRGB{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}
