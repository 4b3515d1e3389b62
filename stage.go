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

// stage is the state of a session.
// Implementations: stageNew, *stageClustering, *stageReclustering,
// *stageVectorize.
type stage interface {
	isStage()
	String() string
}

// stageNew is a session before Init.
type stageNew struct{}

// stageClustering runs the first clustering pass.
type stageClustering struct {
	run ClusterRun
}

// stageReclustering clusters the flattened first pass in cutout mode.
type stageReclustering struct {
	run ClusterRun
}

// stageVectorize traces one cluster per step. All clusters before cursor
// have been added to the document.
type stageVectorize struct {
	set    ClusterSet
	cursor int
}

func (stageNew) isStage()           {}
func (*stageClustering) isStage()   {}
func (*stageReclustering) isStage() {}
func (*stageVectorize) isStage()    {}

func (stageNew) String() string           { return "new" }
func (*stageClustering) String() string   { return "clustering" }
func (*stageReclustering) String() string { return "reclustering" }
func (*stageVectorize) String() string    { return "vectorize" }
