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

package pdfout

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/vectorize/svg"
)

func TestWrite(t *testing.T) {
	var quad curve.BezPath
	quad.MoveTo(curve.Pt(0, 0))
	quad.QuadTo(curve.Pt(4, 0), curve.Pt(4, 4))
	quad.CubicTo(curve.Pt(4, 6), curve.Pt(2, 8), curve.Pt(0, 8))
	quad.ClosePath()

	var square curve.BezPath
	square.MoveTo(curve.Pt(0, 0))
	square.LineTo(curve.Pt(2, 0))
	square.LineTo(curve.Pt(2, 2))
	square.ClosePath()

	doc := svg.New(svg.Options{BackgroundColor: "#ffffff", Scale: 2})
	doc.PrependPath(quad, vec.Vec2{X: 1, Y: 1}, color.NRGBA{R: 255, A: 255}, 8)
	doc.PrependPath(square, vec.Vec2{X: 5, Y: 5}, color.NRGBA{B: 255, A: 255}, 8)
	doc.PrependPath(nil, vec.Vec2{}, color.NRGBA{A: 255}, 8)

	fname := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, Write(fname, doc, 40, 40))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestWriteBadPath(t *testing.T) {
	doc := svg.New(svg.Options{})
	err := Write(filepath.Join(t.TempDir(), "missing", "out.pdf"), doc, 10, 10)
	assert.Error(t, err)
}

func TestDeviceRGB(t *testing.T) {
	c := deviceRGB(color.NRGBA{R: 0xFF, G: 0x33, B: 0x00, A: 0x80})
	assert.Equal(t, pdfcolor.DeviceRGB{1, 0.2, 0}, c)
}
