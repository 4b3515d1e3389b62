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
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/cluster"
)

func maskFrom(r image.Rectangle, in func(x, y int) bool) *image.Alpha {
	m := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if in(x, y) {
				m.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return m
}

// ringMask is a 6x6 square with a 2x2 hole.
func ringMask() *image.Alpha {
	return maskFrom(image.Rect(0, 0, 6, 6), func(x, y int) bool {
		return x < 2 || x >= 4 || y < 2 || y >= 4
	})
}

func discMask(r int) *image.Alpha {
	size := 2*r + 2
	c := float64(size) / 2
	return maskFrom(image.Rect(0, 0, size, size), func(x, y int) bool {
		dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
		return dx*dx+dy*dy <= float64(r*r)
	})
}

func subpaths(p curve.BezPath) []curve.BezPath {
	var res []curve.BezPath
	for _, el := range p {
		if el.Kind == curve.MoveToKind {
			res = append(res, nil)
		}
		res[len(res)-1] = append(res[len(res)-1], el)
	}
	return res
}

func TestBoundarySinglePixel(t *testing.T) {
	m := maskFrom(image.Rect(0, 0, 1, 1), func(x, y int) bool { return true })
	loops := boundaries(m)
	require.Len(t, loops, 1)
	assert.Equal(t, []curve.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, loops[0])
	assert.Equal(t, 1.0, signedArea(loops[0]))
}

func TestBoundaryRing(t *testing.T) {
	loops := boundaries(ringMask())
	require.Len(t, loops, 2)
	assert.Equal(t, 36.0, signedArea(loops[0]))
	assert.Equal(t, -4.0, signedArea(loops[1]))
}

func TestBoundaryDiagonal(t *testing.T) {
	m := maskFrom(image.Rect(0, 0, 2, 2), func(x, y int) bool { return x == y })
	loops := boundaries(m)
	require.Len(t, loops, 2)
	for _, loop := range loops {
		assert.Len(t, loop, 4)
		assert.Equal(t, 1.0, signedArea(loop))
	}
}

func TestBoundaryOffsetMask(t *testing.T) {
	m := maskFrom(image.Rect(3, 5, 5, 7), func(x, y int) bool { return true })
	loops := boundaries(m)
	require.Len(t, loops, 1)
	assert.Equal(t, []curve.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, loops[0])
}

func TestTraceNone(t *testing.T) {
	c := cluster.New(ringMask(), color.NRGBA{R: 10, A: 255})
	p, off := Tracer{}.Trace(c, Params{Mode: ModeNone})

	assert.Equal(t, vec.Vec2{}, off)
	parts := subpaths(p)
	require.Len(t, parts, 2)
	for _, part := range parts {
		assert.Len(t, part, 5)
		assert.Equal(t, curve.ClosePathKind, part[len(part)-1].Kind)
	}
	assert.Equal(t, 36.0, parts[0].SignedArea())
	assert.Equal(t, -4.0, parts[1].SignedArea())
}

func TestTraceLeavesClusterUnchanged(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for y := range 12 {
		for x := range 12 {
			c := color.NRGBA{R: 0xF0, A: 0xFF}
			if (x-6)*(x-6)+(y-6)*(y-6) < 12 {
				c = color.NRGBA{B: 0xF0, A: 0xFF}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	b := cluster.Start(img, cluster.Config{
		Hierarchical:       cluster.MaxHierarchical,
		GoodMaxArea:        144,
		SameColorTolerance: 1,
	})
	for !b.Tick() {
	}
	set := b.Result()
	require.Equal(t, 2, set.Len())

	for _, mode := range []Mode{ModeNone, ModePolygon, ModeSpline} {
		for i := range set.Len() {
			c := set.At(i)
			mask := c.Mask()
			pix := bytes.Clone(mask.Pix)
			area, bounds, residue := c.Area(), c.Bounds(), c.Residue()

			Tracer{}.Trace(c, Params{
				Mode:            mode,
				CornerThreshold: math.Pi / 3,
				LengthThreshold: 4,
				MaxIterations:   10,
				SpliceThreshold: math.Pi / 4,
			})

			assert.Same(t, mask, c.Mask())
			assert.Equal(t, pix, c.Mask().Pix)
			assert.Equal(t, area, c.Area())
			assert.Equal(t, bounds, c.Bounds())
			assert.Equal(t, residue, c.Residue())
		}
	}
}

func TestTraceOffset(t *testing.T) {
	m := maskFrom(image.Rect(3, 5, 6, 7), func(x, y int) bool { return true })
	c := cluster.New(m, color.NRGBA{A: 255})
	p, off := Tracer{}.Trace(c, Params{Mode: ModePolygon})

	assert.Equal(t, vec.Vec2{X: 3, Y: 5}, off)
	for _, el := range p {
		if el.Kind == curve.ClosePathKind {
			continue
		}
		assert.True(t, el.P0.X >= 0 && el.P0.X <= 3, "x = %g", el.P0.X)
		assert.True(t, el.P0.Y >= 0 && el.P0.Y <= 2, "y = %g", el.P0.Y)
	}
}

func TestPolygonReducesStaircase(t *testing.T) {
	// a right triangle with a jagged hypotenuse
	m := maskFrom(image.Rect(0, 0, 12, 12), func(x, y int) bool { return x <= y })
	loop := boundaries(m)[0]
	poly := simplifyPolygon(loop)

	assert.Less(t, len(poly), len(loop))
	assert.LessOrEqual(t, len(poly), 6)
	assert.Greater(t, signedArea(poly), 0.0)
	assert.InDelta(t, signedArea(loop), signedArea(poly), 12)
}

func TestReduceKeepsSquare(t *testing.T) {
	sq := []curve.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5}}
	assert.Equal(t, sq, reduce(sq, polygonTolerance))

	// collinear points along the edges are dropped
	dense := []curve.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 3}, {X: 5, Y: 5}, {X: 0, Y: 5}}
	assert.Equal(t, sq, reduce(dense, polygonTolerance))
}

func TestSpline(t *testing.T) {
	m := discMask(12)
	c := cluster.New(m, color.NRGBA{A: 255})
	params := Params{
		Mode:            ModeSpline,
		CornerThreshold: 60 * math.Pi / 180,
		LengthThreshold: 4,
		MaxIterations:   10,
		SpliceThreshold: 45 * math.Pi / 180,
	}
	p, _ := Tracer{}.Trace(c, params)

	parts := subpaths(p)
	require.Len(t, parts, 1)
	hasCurve := false
	for _, el := range p {
		assert.False(t, el.IsNaN())
		if el.Kind == curve.CubicToKind || el.Kind == curve.QuadToKind {
			hasCurve = true
		}
	}
	assert.True(t, hasCurve, "a disc outline should contain curves")
	assert.Equal(t, curve.ClosePathKind, p[len(p)-1].Kind)

	area := float64(c.Area())
	assert.InEpsilon(t, area, p.SignedArea(), 0.15)
}

func TestSmoothKeepsCorners(t *testing.T) {
	sq := []curve.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	params := Params{
		CornerThreshold: 60 * math.Pi / 180,
		LengthThreshold: 4,
		MaxIterations:   10,
	}
	res := smooth(sq, params)
	assert.Greater(t, len(res), len(sq))
	for _, v := range sq {
		assert.Contains(t, res, v)
	}
	// all new points lie on the edges of the square
	for _, v := range res {
		onEdge := v.X == 0 || v.X == 10 || v.Y == 0 || v.Y == 10
		assert.True(t, onEdge, "%v is off the outline", v)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeSpline, ModePolygon, ModeNone} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("bezier")
	assert.Error(t, err)
}
