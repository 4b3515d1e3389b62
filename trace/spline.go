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

// fitAccuracy is the maximal distance, in pixels, between a smoothed
// outline and the fitted curves.
const fitAccuracy = 0.5

// maxFitAngle bounds the angle passed to the curve fitter, whose threshold
// is given as a tangent.
const maxFitAngle = 89 * math.Pi / 180

// smooth refines a polygon by four-point subdivision. Corners are kept
// in place: segments which end in a corner are split at their midpoint.
// Only segments longer than p.LengthThreshold are split.
func smooth(poly []curve.Point, p Params) []curve.Point {
	n := len(poly)
	corner := make([]bool, n)
	for i, v := range poly {
		corner[i] = turnAngle(poly[(i+n-1)%n], v, poly[(i+1)%n]) > p.CornerThreshold
	}

	for range p.MaxIterations {
		n = len(poly)
		var pts []curve.Point
		var isCorner []bool
		split := false
		for i, a := range poly {
			b := poly[(i+1)%n]
			pts = append(pts, a)
			isCorner = append(isCorner, corner[i])
			if a.Distance(b) <= p.LengthThreshold {
				continue
			}

			var m curve.Point
			if corner[i] || corner[(i+1)%n] {
				m = a.Midpoint(b)
			} else {
				prev := poly[(i+n-1)%n]
				next := poly[(i+2)%n]
				m = curve.Pt(
					(-prev.X+9*a.X+9*b.X-next.X)/16,
					(-prev.Y+9*a.Y+9*b.Y-next.Y)/16,
				)
			}
			pts = append(pts, m)
			isCorner = append(isCorner, false)
			split = true
		}
		poly, corner = pts, isCorner
		if !split {
			break
		}
	}
	return poly
}

// fitSpline converts a smoothed outline into a closed path made of
// Bézier curves. The outline is cut at splice points, where the direction
// changes by more than the splice threshold, and every section is fitted
// separately.
func fitSpline(pts []curve.Point, splice float64) curve.BezPath {
	n := len(pts)
	var cuts []int
	for i, v := range pts {
		if turnAngle(pts[(i+n-1)%n], v, pts[(i+1)%n]) > splice {
			cuts = append(cuts, i)
		}
	}
	if len(cuts) == 0 {
		cuts = []int{0}
	}

	opts := curve.SimplifyOptions{
		AngleThresh: math.Tan(math.Min(splice, maxFitAngle)),
		OptLevel:    curve.Subdivide,
	}

	var res curve.BezPath
	res.MoveTo(pts[cuts[0]])
	for k, from := range cuts {
		to := cuts[(k+1)%len(cuts)]
		if to <= from {
			to += n
		}

		var section curve.BezPath
		section.MoveTo(pts[from])
		for i := from + 1; i <= to; i++ {
			section.LineTo(pts[i%n])
		}
		for el := range curve.Simplify(section.Elements(), fitAccuracy, opts) {
			if el.Kind == curve.MoveToKind {
				continue
			}
			res.Push(el)
		}
	}
	res.ClosePath()
	return res
}
