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
	"errors"
	"image"
	"math"

	"seehuhn.de/go/vectorize/cluster"
)

// Values for [Config.Hierarchical].
const (
	HierarchicalStacked = "stacked"
	HierarchicalCutout  = "cutout"
)

// Config holds the tracing parameters of a session.
type Config struct {
	// Mode is the outline simplification: "spline", "polygon" or "none".
	Mode string

	// CornerThreshold is the smallest angle, in radians, which is kept as
	// a sharp corner in spline mode.
	CornerThreshold float64

	// LengthThreshold is the segment length, in pixels, above which
	// outlines are subdivided in spline mode.
	LengthThreshold float64

	// MaxIterations limits the subdivision rounds in spline mode.
	MaxIterations int

	// SpliceThreshold is the smallest angle, in radians, at which spline
	// outlines are cut into separately fitted sections.
	SpliceThreshold float64

	// FilterSpeckle is the smallest cluster area, in pixels, which is
	// traced. Smaller clusters are merged into their surroundings.
	FilterSpeckle int

	// PathPrecision is the number of decimal digits used for path
	// coordinates. Zero rounds coordinates to integers.
	PathPrecision int

	// LayerDifference is the colour difference required between a cluster
	// and its surroundings for the cluster to be traced separately.
	// Zero also enables diagonal connectivity.
	LayerDifference int

	// ColorPrecision is the number of low-order bits of each colour channel
	// which are ignored when pixels are compared.
	ColorPrecision int

	// Hierarchical is HierarchicalStacked or HierarchicalCutout.
	// There is no default.
	Hierarchical string
}

// DefaultConfig returns the default parameters.
// The Hierarchical field is left empty and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		Mode:            "spline",
		CornerThreshold: 60 * math.Pi / 180,
		LengthThreshold: 4,
		MaxIterations:   10,
		SpliceThreshold: 45 * math.Pi / 180,
		FilterSpeckle:   4,
		PathPrecision:   8,
	}
}

// Options controls the appearance of the generated document.
type Options struct {
	// Invert makes the session trace the colour negative of the bitmap.
	Invert bool

	// PathFill, if set, is used as the fill colour of every path.
	PathFill string

	// BackgroundColor, if set, is the CSS background colour of the document.
	BackgroundColor string

	// Attributes is copied verbatim into the opening svg tag.
	Attributes string

	// Scale is applied to the whole drawing. Zero means 1.
	Scale float64
}

// clusterBatchSize is the number of pixels clustered per step.
const clusterBatchSize = 25600

// initialConfig returns the parameters of the first clustering pass.
func initialConfig(cfg Config, width, height int) cluster.Config {
	return cluster.Config{
		Diagonal:           cfg.LayerDifference == 0,
		Hierarchical:       cluster.MaxHierarchical,
		BatchSize:          clusterBatchSize,
		GoodMinArea:        cfg.FilterSpeckle,
		GoodMaxArea:        width * height,
		SameColorShift:     cfg.ColorPrecision,
		SameColorTolerance: 1,
		DeepenDiff:         cfg.LayerDifference,
	}
}

// cutoutConfig returns the parameters for re-clustering the flattened
// result of the first pass.
func cutoutConfig(img *image.NRGBA) cluster.Config {
	b := img.Bounds()
	return cluster.Config{
		Diagonal:           false,
		Hierarchical:       64,
		BatchSize:          clusterBatchSize,
		GoodMinArea:        0,
		GoodMaxArea:        b.Dx() * b.Dy(),
		SameColorShift:     0,
		SameColorTolerance: 1,
		DeepenDiff:         0,
	}
}

// NewBitmap wraps a buffer of non-premultiplied RGBA pixels, stored row by
// row from the top, as an image. The buffer is not copied.
func NewBitmap(width, height int, pix []byte) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("vectorize: bitmap dimensions must be positive")
	}
	if len(pix) != 4*width*height {
		return nil, errors.New("vectorize: pixel buffer does not match bitmap dimensions")
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// copyBitmap returns a copy of img with its origin moved to (0, 0).
// If invert is set, the colour channels are inverted.
func copyBitmap(img *image.NRGBA, invert bool) *image.NRGBA {
	b := img.Bounds()
	res := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(res.Pix[y*res.Stride:(y+1)*res.Stride], img.Pix[off:off+4*b.Dx()])
	}
	if invert {
		for i := 0; i < len(res.Pix); i += 4 {
			res.Pix[i] = 255 - res.Pix[i]
			res.Pix[i+1] = 255 - res.Pix[i+1]
			res.Pix[i+2] = 255 - res.Pix[i+2]
		}
	}
	return res
}
