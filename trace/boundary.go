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

package trace

import (
	"image"

	"honnef.co/go/curve"
)

// Directions along the pixel lattice, in clockwise order on screen
// (the y axis points down).
const (
	dirRight = iota
	dirDown
	dirLeft
	dirUp
)

var dirStep = [4]image.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Offsets from the start vertex of a unit edge to the pixels on its right
// and left hand side.
var (
	rightPixel = [4]image.Point{{0, 0}, {-1, 0}, {-1, -1}, {0, -1}}
	leftPixel  = [4]image.Point{{0, -1}, {0, 0}, {-1, 0}, {-1, -1}}
)

// boundaries returns the outlines of the non-zero pixels of mask as closed
// loops of lattice vertices, relative to the top-left corner of the mask.
//
// Every unit edge between an inside and an outside pixel is traversed with
// the inside on its right. As a result, outer boundaries run clockwise on
// screen and the boundaries of holes run counter-clockwise. Where two
// inside pixels touch only at a corner, the loops turn clockwise, so that
// diagonal neighbours have separate outlines. Only vertices where the
// direction changes are included.
func boundaries(mask *image.Alpha) [][]curve.Point {
	b := mask.Rect
	w, h := b.Dx(), b.Dy()
	inside := func(p image.Point) bool {
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			return false
		}
		return mask.Pix[mask.PixOffset(p.X+b.Min.X, p.Y+b.Min.Y)] != 0
	}
	isEdge := func(v image.Point, d int) bool {
		return inside(v.Add(rightPixel[d])) && !inside(v.Add(leftPixel[d]))
	}

	// Every loop contains a rightwards edge, and these are exactly the top
	// edges of inside pixels.
	seen := make([]bool, (w+1)*(h+1))

	var loops [][]curve.Point
	for y := range h {
		for x := range w {
			start := image.Point{x, y}
			if seen[y*(w+1)+x] || !isEdge(start, dirRight) {
				continue
			}

			var verts []image.Point
			var dirs []int
			v, d := start, dirRight
			for {
				if d == dirRight {
					seen[v.Y*(w+1)+v.X] = true
				}
				verts = append(verts, v)
				dirs = append(dirs, d)

				v = v.Add(dirStep[d])
				switch {
				case isEdge(v, (d+1)%4):
					d = (d + 1) % 4
				case isEdge(v, d):
				default:
					d = (d + 3) % 4
				}
				if v == start && d == dirRight {
					break
				}
			}

			n := len(verts)
			var loop []curve.Point
			for i, v := range verts {
				if dirs[(i+n-1)%n] != dirs[i] {
					loop = append(loop, curve.Pt(float64(v.X), float64(v.Y)))
				}
			}
			loops = append(loops, loop)
		}
	}
	return loops
}

// signedArea returns the area enclosed by a closed polygon. The result is
// positive for loops running clockwise on screen.
func signedArea(pts []curve.Point) float64 {
	var sum float64
	n := len(pts)
	for i, p := range pts {
		q := pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
