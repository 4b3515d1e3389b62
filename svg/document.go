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

// Package svg accumulates traced outlines into an SVG document.
//
// Paths are inserted at the front of the document, so that paths added
// later are drawn below the paths added earlier.
package svg

import (
	"fmt"
	"image/color"
	"io"
	"iter"
	"math"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"
)

// Options fixes the appearance of a document.
type Options struct {
	// BackgroundColor, if set, is used as the CSS background colour of the
	// document.
	BackgroundColor string

	// PathFill, if set, replaces the fill colour of every path.
	PathFill string

	// Attributes is copied verbatim into the opening svg tag,
	// for example `width="300" height="200"`.
	Attributes string

	// Scale is applied to all paths. Zero means 1.
	Scale float64
}

// Element is one filled path of a document.
type Element struct {
	// Data is the path data, as used in the d attribute.
	Data string

	// Path is the outline, relative to Offset.
	Path curve.BezPath

	Offset vec.Vec2
	Fill   color.NRGBA
}

// Document is an SVG document under construction.
type Document struct {
	opts Options

	// rev holds the elements in reverse document order, so that inserting
	// at the front is an append.
	rev []Element
}

// New returns an empty document.
func New(opts Options) *Document {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	return &Document{opts: opts}
}

// Options returns the options the document was created with.
func (d *Document) Options() Options {
	return d.opts
}

// PrependPath inserts a path at the front of the document. Coordinates
// are written with at most precision decimal digits. If precision is zero
// or negative, coordinates are rounded to integers.
func (d *Document) PrependPath(p curve.BezPath, offset vec.Vec2, fill color.NRGBA, precision int) {
	seq := p.Elements()
	if precision <= 0 {
		seq = roundElements(p)
	}
	sb := &strings.Builder{}
	// strings.Builder never fails
	_ = curve.WriteSVG(sb, seq, curve.SVGOptions{MaxPrecision: max(precision, 0)})
	d.rev = append(d.rev, Element{
		Data:   sb.String(),
		Path:   p,
		Offset: offset,
		Fill:   fill,
	})
}

// roundElements yields the elements of p with all points rounded to
// integer coordinates.
func roundElements(p curve.BezPath) iter.Seq[curve.PathElement] {
	round := func(pt curve.Point) curve.Point {
		// adding zero turns -0 into 0
		return curve.Pt(math.Round(pt.X)+0, math.Round(pt.Y)+0)
	}
	return func(yield func(curve.PathElement) bool) {
		for _, el := range p {
			el.P0, el.P1, el.P2 = round(el.P0), round(el.P1), round(el.P2)
			if !yield(el) {
				return
			}
		}
	}
}

// Len returns the number of paths in the document.
func (d *Document) Len() int {
	return len(d.rev)
}

// All iterates over the elements in document order, from the bottom-most
// to the top-most path.
func (d *Document) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		n := len(d.rev)
		for i := range n {
			if !yield(i, d.rev[n-1-i]) {
				return
			}
		}
	}
}

// FillColor returns the colour used for painting e. This is the PathFill
// option if it is a valid hex colour, and the element's own colour
// otherwise.
func (d *Document) FillColor(e Element) color.NRGBA {
	if d.opts.PathFill != "" {
		if c, err := ParseHexColor(d.opts.PathFill); err == nil {
			return c
		}
	}
	return e.Fill
}

// WriteTo writes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	canvas := svgo.New(cw)

	var attrs []string
	if d.opts.BackgroundColor != "" {
		attrs = append(attrs, fmt.Sprintf("style=\"background-color: %s\"", d.opts.BackgroundColor))
	}
	if d.opts.Attributes != "" {
		attrs = append(attrs, d.opts.Attributes)
	}
	canvas.Startraw(attrs...)
	canvas.Gtransform(fmt.Sprintf("scale(%g)", d.opts.Scale))
	for _, e := range d.All() {
		fill := d.opts.PathFill
		if fill == "" {
			fill = HexColor(e.Fill)
		}
		canvas.Path(e.Data,
			fmt.Sprintf("transform=\"translate(%g,%g)\"", e.Offset.X, e.Offset.Y),
			"fill:"+fill)
	}
	canvas.Gend()
	canvas.End()

	return cw.n, cw.err
}

// String returns the serialised document.
func (d *Document) String() string {
	sb := &strings.Builder{}
	d.WriteTo(sb)
	return sb.String()
}

// countingWriter records the number of bytes written and the first error,
// since the svgo canvas does not report write errors.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
