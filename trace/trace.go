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

// Package trace converts pixel clusters into vector outlines.
//
// The outline of a cluster is a compound path: one closed loop for the
// outer boundary of every connected part and one for every hole. Outer
// loops and holes have opposite orientation, so the path must be filled
// using the nonzero winding rule.
package trace

import (
	"fmt"
	"image/color"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/cluster"
)

// Mode selects how pixel outlines are simplified.
type Mode int

const (
	// ModeSpline fits smooth Bézier curves to the outlines.
	ModeSpline Mode = iota

	// ModePolygon produces straight-edged polygons.
	ModePolygon

	// ModeNone keeps the exact pixel outlines.
	ModeNone
)

func (m Mode) String() string {
	switch m {
	case ModeSpline:
		return "spline"
	case ModePolygon:
		return "polygon"
	case ModeNone:
		return "none"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "spline":
		return ModeSpline, nil
	case "polygon":
		return ModePolygon, nil
	case "none":
		return ModeNone, nil
	}
	return 0, fmt.Errorf("unknown simplification mode %q", s)
}

// Params controls the simplification of outlines.
// Angles are in radians, lengths in pixels.
type Params struct {
	Mode Mode

	// CornerThreshold is the smallest turn angle which is kept as a sharp
	// corner when smoothing.
	CornerThreshold float64

	// LengthThreshold is the length above which segments are subdivided
	// when smoothing.
	LengthThreshold float64

	// MaxIterations limits the number of subdivision rounds.
	MaxIterations int

	// SpliceThreshold is the smallest turn angle at which the smoothed
	// outline is cut into separately fitted sections.
	SpliceThreshold float64
}

// Tracer is the default outline tracer.
type Tracer struct{}

// Trace returns the outline of c. The path is given relative to the
// top-left corner of the cluster bounds, which is returned as the offset.
func (Tracer) Trace(c *cluster.Cluster, p Params) (curve.BezPath, vec.Vec2) {
	b := c.Bounds()
	offset := vec.Vec2{X: float64(b.Min.X), Y: float64(b.Min.Y)}

	var res curve.BezPath
	for _, loop := range boundaries(c.Mask()) {
		switch p.Mode {
		case ModeNone:
			res = appendPolygon(res, loop)
		case ModePolygon:
			res = appendPolygon(res, simplifyPolygon(loop))
		default:
			smoothed := smooth(simplifyPolygon(loop), p)
			res = append(res, fitSpline(smoothed, p.SpliceThreshold)...)
		}
	}
	return res, offset
}

// ResidueColor returns the fill colour for the outline of c.
func (Tracer) ResidueColor(c *cluster.Cluster) color.NRGBA {
	return c.Residue()
}

func appendPolygon(p curve.BezPath, loop []curve.Point) curve.BezPath {
	if len(loop) == 0 {
		return p
	}
	p.MoveTo(loop[0])
	for _, v := range loop[1:] {
		p.LineTo(v)
	}
	p.ClosePath()
	return p
}
