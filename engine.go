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
	"image"
	"image/color"

	"honnef.co/go/curve"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vectorize/cluster"
	"seehuhn.de/go/vectorize/trace"
)

// Clusterer starts clustering runs.
type Clusterer interface {
	// Start begins clustering img. The image is not modified.
	Start(img *image.NRGBA, cfg cluster.Config) ClusterRun
}

// ClusterRun is a clustering run in progress.
// The same inputs must always produce the same clusters in the same order.
type ClusterRun interface {
	// Tick performs a bounded amount of work and reports completion.
	Tick() bool

	// Progress returns a value between 0 and 100 which never decreases.
	Progress() int

	// Result returns the clusters, once Tick has reported completion.
	Result() ClusterSet
}

// ClusterSet is the result of a clustering run.
type ClusterSet interface {
	// Len returns the number of clusters.
	Len() int

	// At returns the i-th cluster in output order.
	At(i int) *cluster.Cluster

	// Flatten paints the clusters with their residue colours into a new
	// image of the clustered size.
	Flatten() *image.NRGBA
}

// Tracer converts clusters into outlines.
// Implementations must not modify the clusters.
type Tracer interface {
	// Trace returns the outline of c, relative to the returned offset.
	Trace(c *cluster.Cluster, p trace.Params) (curve.BezPath, vec.Vec2)

	// ResidueColor returns the fill colour for the outline of c.
	ResidueColor(c *cluster.Cluster) color.NRGBA
}

// defaultClusterer runs the clustering of the cluster package.
type defaultClusterer struct{}

func (defaultClusterer) Start(img *image.NRGBA, cfg cluster.Config) ClusterRun {
	return builderRun{cluster.Start(img, cfg)}
}

type builderRun struct {
	*cluster.Builder
}

func (r builderRun) Result() ClusterSet {
	return r.Builder.Result()
}
