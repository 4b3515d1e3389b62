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

package vectorize

import (
	"image"
	"image/color"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/internal/raster"
	"seehuhn.de/go/vectorize/svg"
)

// Preview renders doc into an image of the given size. Paths are filled
// with the nonzero winding rule and painted in document order. The
// background colour is used if it is a hex colour; otherwise the
// background is transparent.
func Preview(doc *svg.Document, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	opts := doc.Options()
	if bg, err := svg.ParseHexColor(opts.BackgroundColor); err == nil {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
		}
	}

	s := opts.Scale
	r := raster.NewRasteriser(rect.Rect{URx: float64(width), URy: float64(height)})
	for _, e := range doc.All() {
		r.CTM = matrix.Matrix{s, 0, 0, s, e.Offset.X * s, e.Offset.Y * s}
		fill := doc.FillColor(e)
		fill.A = 0xFF // documents are written without opacity
		r.FillNonZero(toPathData(e.Path), func(y, xMin int, coverage []float32) {
			for i, c := range coverage {
				blend(img, xMin+i, y, fill, c)
			}
		})
	}
	return img
}

// blend composites c with the given coverage over the pixel at (x, y).
func blend(img *image.NRGBA, x, y int, c color.NRGBA, coverage float32) {
	if coverage <= 0 {
		return
	}
	coverage = min(coverage, 1)
	off := img.PixOffset(x, y)
	dst := img.Pix[off : off+4 : off+4]

	sa := coverage * float32(c.A) / 255
	da := float32(dst[3]) / 255
	oa := sa + da*(1-sa)
	if oa == 0 {
		return
	}
	mix := func(s, d uint8) uint8 {
		v := (float32(s)*sa + float32(d)*da*(1-sa)) / oa
		return uint8(v + 0.5)
	}
	dst[0] = mix(c.R, dst[0])
	dst[1] = mix(c.G, dst[1])
	dst[2] = mix(c.B, dst[2])
	dst[3] = uint8(oa*255 + 0.5)
}

// toPathData converts a curve path into the form used by the rasteriser.
func toPathData(p curve.BezPath) *path.Data {
	res := &path.Data{}
	pt := func(q curve.Point) vec.Vec2 { return vec.Vec2{X: q.X, Y: q.Y} }
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			res.Cmds = append(res.Cmds, path.CmdMoveTo)
			res.Coords = append(res.Coords, pt(el.P0))
		case curve.LineToKind:
			res.Cmds = append(res.Cmds, path.CmdLineTo)
			res.Coords = append(res.Coords, pt(el.P0))
		case curve.QuadToKind:
			res.Cmds = append(res.Cmds, path.CmdQuadTo)
			res.Coords = append(res.Coords, pt(el.P0), pt(el.P1))
		case curve.CubicToKind:
			res.Cmds = append(res.Cmds, path.CmdCubeTo)
			res.Coords = append(res.Coords, pt(el.P0), pt(el.P1), pt(el.P2))
		case curve.ClosePathKind:
			res.Cmds = append(res.Cmds, path.CmdClose)
		}
	}
	return res
}
