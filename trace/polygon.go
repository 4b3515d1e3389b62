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
	"math"

	"honnef.co/go/curve"
)

// polygonTolerance is the maximal distance, in pixels, between a pixel
// outline and its simplified polygon.
const polygonTolerance = 1.0

// simplifyPolygon turns a pixel outline into a polygon with fewer
// vertices. The orientation of the loop is preserved.
func simplifyPolygon(loop []curve.Point) []curve.Point {
	return reduce(removeStaircase(loop), polygonTolerance)
}

// removeStaircase drops the inner corners of one-pixel steps, so that
// jagged diagonal edges become straight lines.
func removeStaircase(loop []curve.Point) []curve.Point {
	n := len(loop)
	if n <= 4 {
		return loop
	}
	orient := 1.0
	if signedArea(loop) < 0 {
		orient = -1
	}

	res := make([]curve.Point, 0, n)
	for i, v := range loop {
		p := loop[(i+n-1)%n]
		q := loop[(i+1)%n]
		in := v.Sub(p)
		out := q.Sub(v)
		concave := in.Cross(out)*orient < 0
		unitStep := in.Hypot2() == 1 || out.Hypot2() == 1
		if concave && unitStep {
			continue
		}
		res = append(res, v)
	}
	if len(res) < 3 {
		return loop
	}
	return res
}

// reduce applies the Ramer-Douglas-Peucker algorithm to a closed loop.
func reduce(loop []curve.Point, eps float64) []curve.Point {
	n := len(loop)
	if n <= 3 {
		return loop
	}

	// Split the loop at the vertex furthest from the start.
	far := 0
	var best float64
	for i, p := range loop {
		if d := p.DistanceSquared(loop[0]); d > best {
			far, best = i, d
		}
	}
	if far == 0 {
		return loop
	}

	closed := append(loop[:n:n], loop[0])
	keep := make([]bool, n+1)
	keep[0], keep[far], keep[n] = true, true, true
	rdp(closed[:far+1], keep[:far+1], eps)
	rdp(closed[far:], keep[far:], eps)

	var res []curve.Point
	for i, p := range loop {
		if keep[i] {
			res = append(res, p)
		}
	}
	if len(res) < 3 {
		return loop
	}
	return res
}

func rdp(pts []curve.Point, keep []bool, eps float64) {
	if len(pts) < 3 {
		return
	}
	a, b := pts[0], pts[len(pts)-1]
	idx := -1
	dMax := eps
	for i := 1; i < len(pts)-1; i++ {
		if d := segmentDistance(pts[i], a, b); d > dMax {
			idx, dMax = i, d
		}
	}
	if idx < 0 {
		return
	}
	keep[idx] = true
	rdp(pts[:idx+1], keep[:idx+1], eps)
	rdp(pts[idx:], keep[idx:], eps)
}

// segmentDistance returns the distance of p from the segment a-b.
func segmentDistance(p, a, b curve.Point) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	l2 := ab.Hypot2()
	if l2 == 0 {
		return ap.Hypot()
	}
	t := math.Max(0, math.Min(1, ap.Dot(ab)/l2))
	return p.Distance(a.Translate(ab.Mul(t)))
}

// turnAngle returns the change of direction at v, between 0 and π.
func turnAngle(p, v, q curve.Point) float64 {
	in := v.Sub(p)
	out := q.Sub(v)
	return math.Atan2(math.Abs(in.Cross(out)), in.Dot(out))
}
