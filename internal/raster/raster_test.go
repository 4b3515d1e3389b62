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

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1})
	coverage := make([]float32, 10)
	r.FillNonZero(triangle, func(y, xMin int, cov []float32) {
		if y == 0 {
			copy(coverage[xMin:], cov)
		}
	})

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20.0
		if math.Abs(float64(coverage[x]-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, coverage[x])
		}
	}
}

// square returns an axis-aligned square, clockwise on screen if cw is set.
func square(x0, y0, size float64, cw bool) *path.Data {
	p := &path.Data{}
	if cw {
		return p.MoveTo(vec.Vec2{X: x0, Y: y0}).
			LineTo(vec.Vec2{X: x0 + size, Y: y0}).
			LineTo(vec.Vec2{X: x0 + size, Y: y0 + size}).
			LineTo(vec.Vec2{X: x0, Y: y0 + size}).
			Close()
	}
	return p.MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x0, Y: y0 + size}).
		LineTo(vec.Vec2{X: x0 + size, Y: y0 + size}).
		LineTo(vec.Vec2{X: x0 + size, Y: y0}).
		Close()
}

// join concatenates the subpaths of several paths.
func join(parts ...*path.Data) *path.Data {
	res := &path.Data{}
	for _, p := range parts {
		res.Cmds = append(res.Cmds, p.Cmds...)
		res.Coords = append(res.Coords, p.Coords...)
	}
	return res
}

func render(r *Rasteriser, fill func(*path.Data, func(int, int, []float32)), p *path.Data, w, h int) []float32 {
	buf := make([]float32, w*h)
	fill(p, func(y, xMin int, cov []float32) {
		copy(buf[y*w+xMin:], cov)
	})
	return buf
}

func TestFillRules(t *testing.T) {
	const w, h = 8, 8
	clip := rect.Rect{URx: w, URy: h}

	sameDirection := join(square(1, 1, 6, true), square(3, 3, 2, true))
	hole := join(square(1, 1, 6, true), square(3, 3, 2, false))

	cases := []struct {
		name    string
		p       *path.Data
		evenOdd bool
		inner   float32 // coverage at pixel (3,3)
		outer   float32 // coverage at pixel (1,1)
	}{
		{"nonzero_same_direction", sameDirection, false, 1, 1},
		{"nonzero_hole", hole, false, 0, 1},
		{"evenodd_same_direction", sameDirection, true, 0, 1},
		{"evenodd_hole", hole, true, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasteriser(clip)
			fill := r.FillNonZero
			if tc.evenOdd {
				fill = r.FillEvenOdd
			}
			buf := render(r, fill, tc.p, w, h)
			if got := buf[3*w+3]; got != tc.inner {
				t.Errorf("inner coverage = %g, want %g", got, tc.inner)
			}
			if got := buf[1*w+1]; got != tc.outer {
				t.Errorf("outer coverage = %g, want %g", got, tc.outer)
			}
			if got := buf[0]; got != 0 {
				t.Errorf("coverage outside the path = %g, want 0", got)
			}
		})
	}
}

func TestCTM(t *testing.T) {
	const w, h = 16, 16
	r := NewRasteriser(rect.Rect{URx: w, URy: h})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 4, 6}

	buf := render(r, r.FillNonZero, square(0, 0, 2, true), w, h)
	for y := range h {
		for x := range w {
			want := float32(0)
			if x >= 4 && x < 8 && y >= 6 && y < 10 {
				want = 1
			}
			if got := buf[y*w+x]; got != want {
				t.Fatalf("pixel (%d,%d): coverage %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestCubicArea(t *testing.T) {
	// A circle of radius 20 made from four cubic arcs; the total coverage
	// must approximate the area of the disc.
	const size = 64
	p := &path.Data{}
	const k = 0.5522847498
	cx, cy, rad := 32.0, 32.0, 20.0
	kr := k * rad
	pts := [][3]vec.Vec2{
		{{X: cx + kr, Y: cy - rad}, {X: cx + rad, Y: cy - kr}, {X: cx + rad, Y: cy}},
		{{X: cx + rad, Y: cy + kr}, {X: cx + kr, Y: cy + rad}, {X: cx, Y: cy + rad}},
		{{X: cx - kr, Y: cy + rad}, {X: cx - rad, Y: cy + kr}, {X: cx - rad, Y: cy}},
		{{X: cx - rad, Y: cy - kr}, {X: cx - kr, Y: cy - rad}, {X: cx, Y: cy - rad}},
	}
	p.Cmds = append(p.Cmds, path.CmdMoveTo)
	p.Coords = append(p.Coords, vec.Vec2{X: cx, Y: cy - rad})
	for _, c := range pts {
		p.Cmds = append(p.Cmds, path.CmdCubeTo)
		p.Coords = append(p.Coords, c[0], c[1], c[2])
	}
	p.Cmds = append(p.Cmds, path.CmdClose)

	r := NewRasteriser(rect.Rect{URx: size, URy: size})
	var total float64
	r.FillNonZero(p, func(y, xMin int, cov []float32) {
		for _, c := range cov {
			total += float64(c)
		}
	})

	want := math.Pi * rad * rad
	if math.Abs(total-want) > 0.01*want {
		t.Errorf("total coverage %.2f, want %.2f", total, want)
	}
}

func TestTrimZeros(t *testing.T) {
	cov := []float32{0, 0, 0.5, 1, 0}
	trimmed, offset := trimZeros(cov)
	if offset != 2 || len(trimmed) != 2 {
		t.Errorf("trimZeros = %v, %d", trimmed, offset)
	}
	if trimmed, _ := trimZeros([]float32{0, 0}); trimmed != nil {
		t.Errorf("expected nil for all-zero input, got %v", trimmed)
	}
}

// BenchmarkSquares compares the rasteriser with x/image/vector on a
// grid of small squares, similar to a traced pixel-art image.
func BenchmarkSquares(b *testing.B) {
	for _, size := range []int{64, 512} {
		b.Run(fmt.Sprintf("raster/%d", size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			p := squareGrid(size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillNonZero(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
		b.Run(fmt.Sprintf("vector/%d", size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				for y := 0; y < size; y += 8 {
					for x := 0; x < size; x += 8 {
						fx, fy := float32(x), float32(y)
						z.MoveTo(fx, fy)
						z.LineTo(fx+4, fy)
						z.LineTo(fx+4, fy+4)
						z.LineTo(fx, fy+4)
						z.ClosePath()
					}
				}
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

func squareGrid(size int) *path.Data {
	var parts []*path.Data
	for y := 0; y < size; y += 8 {
		for x := 0; x < size; x += 8 {
			parts = append(parts, square(float64(x), float64(y), 4, true))
		}
	}
	return join(parts...)
}
