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

// Package testcases provides synthetic bitmaps for tracing tests.
package testcases

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
)

// TestCase defines a single tracing test.
type TestCase struct {
	Name         string  // lowercase a-z and _ only
	Width        int     // bitmap width in pixels
	Height       int     // bitmap height in pixels
	Pattern      Pattern // the bitmap contents
	Hierarchical string  // "stacked" or "cutout"
	Mode         string  // "spline", "polygon" or "none"
}

// Image renders the bitmap of the test case.
func (tc TestCase) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, tc.Width, tc.Height))
	switch p := tc.Pattern.(type) {
	case Solid:
		fill(img, func(x, y int) color.NRGBA { return p.Color })
	case Stripes:
		fill(img, func(x, y int) color.NRGBA {
			k := x
			if p.Horizontal {
				k = y
			}
			return p.Colors[(k/p.Width)%len(p.Colors)]
		})
	case Checker:
		fill(img, func(x, y int) color.NRGBA {
			if (x/p.Cell+y/p.Cell)%2 == 0 {
				return p.A
			}
			return p.B
		})
	case Ring:
		fill(img, func(x, y int) color.NRGBA {
			d := math.Hypot(float64(x)+0.5-float64(tc.Width)/2, float64(y)+0.5-float64(tc.Height)/2)
			switch {
			case d <= p.Inner:
				return p.Hole
			case d <= p.Outer:
				return p.Ring
			default:
				return p.Background
			}
		})
	case Gradient:
		fill(img, func(x, y int) color.NRGBA {
			t := float64(x) / float64(max(tc.Width-1, 1))
			return color.NRGBA{
				R: lerp(p.From.R, p.To.R, t),
				G: lerp(p.From.G, p.To.G, t),
				B: lerp(p.From.B, p.To.B, t),
				A: lerp(p.From.A, p.To.A, t),
			}
		})
	case Noise:
		rng := rand.New(rand.NewPCG(p.Seed, 0))
		fill(img, func(x, y int) color.NRGBA {
			return p.Palette[rng.IntN(len(p.Palette))]
		})
	}
	return img
}

func fill(img *image.NRGBA, f func(x, y int) color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, f(x, y))
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Pattern describes the contents of a test bitmap.
type Pattern interface {
	isPattern()
}

// Solid fills the whole bitmap with one colour.
type Solid struct {
	Color color.NRGBA
}

func (Solid) isPattern() {}

// Stripes repeats the given colours in bands of the given width.
type Stripes struct {
	Colors     []color.NRGBA
	Width      int
	Horizontal bool // bands run left to right
}

func (Stripes) isPattern() {}

// Checker is a checkerboard of square cells.
type Checker struct {
	A, B color.NRGBA
	Cell int // cell size in pixels
}

func (Checker) isPattern() {}

// Ring is an annulus centred in the bitmap.
type Ring struct {
	Inner, Outer           float64 // radii in pixels
	Hole, Ring, Background color.NRGBA
}

func (Ring) isPattern() {}

// Gradient blends linearly from left to right.
type Gradient struct {
	From, To color.NRGBA
}

func (Gradient) isPattern() {}

// Noise chooses a random palette colour for every pixel.
// The same seed always gives the same bitmap.
type Noise struct {
	Palette []color.NRGBA
	Seed    uint64
}

func (Noise) isPattern() {}

// rgb is a helper to create an opaque colour.
func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}
