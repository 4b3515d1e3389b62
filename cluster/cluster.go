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

// Package cluster groups the pixels of an image into connected regions of
// similar colour.
//
// Clustering runs incrementally: [Start] returns a [Builder], and every call
// to [Builder.Tick] performs a bounded amount of work. Once Tick reports
// completion, [Builder.Result] returns the clusters in output order. Small
// clusters are output before the larger clusters they were merged into, so
// drawing the clusters in reverse output order layers every cluster above
// its surroundings.
package cluster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Cluster is a region of similar-coloured pixels.
//
// The mask of a cluster covers the region itself and all smaller clusters
// which were merged into it. The residue colour is the mean colour of the
// pixels which are not covered by an earlier output cluster.
type Cluster struct {
	area    int
	bounds  image.Rectangle
	residue color.NRGBA
	mask    *image.Alpha
}

// New returns a cluster for the given mask. Mask pixels with non-zero
// alpha belong to the cluster.
func New(mask *image.Alpha, residue color.NRGBA) *Cluster {
	c := &Cluster{
		bounds:  mask.Rect,
		residue: residue,
		mask:    mask,
	}
	for _, a := range mask.Pix {
		if a != 0 {
			c.area++
		}
	}
	return c
}

// Area returns the number of pixels covered by the cluster.
func (c *Cluster) Area() int {
	return c.area
}

// Bounds returns the smallest rectangle containing the cluster.
func (c *Cluster) Bounds() image.Rectangle {
	return c.bounds
}

// Residue returns the representative colour of the cluster.
func (c *Cluster) Residue() color.NRGBA {
	return c.residue
}

// Mask returns the pixel mask of the cluster, covering [Cluster.Bounds].
// Pixels inside the cluster have alpha 255, all others alpha 0.
// The mask must not be modified.
func (c *Cluster) Mask() *image.Alpha {
	return c.mask
}

// Set is the result of a clustering run.
type Set struct {
	width, height int
	clusters      []*Cluster
}

// NewSet returns a set holding the given clusters in output order.
// Width and height give the size of the clustered image.
func NewSet(width, height int, clusters []*Cluster) *Set {
	return &Set{width: width, height: height, clusters: clusters}
}

// Len returns the number of clusters.
func (s *Set) Len() int {
	return len(s.clusters)
}

// At returns the i-th cluster in output order.
func (s *Set) At(i int) *Cluster {
	return s.clusters[i]
}

// Flatten paints all clusters with their residue colours into a new image
// of the clustered size. Clusters are painted in reverse output order, so
// that every cluster appears on top of the clusters it was merged into.
// Pixels not covered by any cluster stay transparent.
func (s *Set) Flatten() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for i := len(s.clusters) - 1; i >= 0; i-- {
		c := s.clusters[i]
		src := image.NewUniform(c.residue)
		draw.DrawMask(img, c.bounds, src, image.Point{}, c.Mask(), c.bounds.Min, draw.Over)
	}
	return img
}
