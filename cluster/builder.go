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

package cluster

import (
	"cmp"
	"container/heap"
	"image"
	"image/color"
	"math"
	"slices"
)

// MaxHierarchical disables the area limit for merging regions.
const MaxHierarchical = math.MaxInt

// DefaultBatchSize is the number of pixels processed per call to
// [Builder.Tick].
const DefaultBatchSize = 25600

// Config controls a clustering run.
type Config struct {
	// Diagonal lets pixels join their diagonal neighbours.
	Diagonal bool

	// Hierarchical is the largest region area which is still merged into
	// a neighbour. Use MaxHierarchical to merge everything into a single
	// root region.
	Hierarchical int

	// BatchSize is the number of pixels handled per tick.
	// Zero means DefaultBatchSize.
	BatchSize int

	// GoodMinArea and GoodMaxArea give the range of areas of clusters
	// which are output. Smaller regions are merged into their neighbours
	// without being output.
	GoodMinArea int
	GoodMaxArea int

	// SameColorShift is the number of low-order bits dropped from every
	// channel before pixels are compared.
	SameColorShift int

	// SameColorTolerance is the largest per-channel difference (after
	// shifting) for two neighbouring pixels to join the same region.
	SameColorTolerance int

	// DeepenDiff is the colour difference a region must have from the
	// neighbour it merges into for the region to be output as a layer of
	// its own.
	DeepenDiff int
}

type phase int

const (
	phaseLabel phase = iota
	phaseCollect
	phaseMerge
	phaseDone
)

// region is a connected set of pixels during clustering.
type region struct {
	area   int
	bounds image.Rectangle
	pixels []int32

	// residue holds the channel sums of the pixels not covered by an
	// output descendant, n is their count.
	residue [4]int64
	n       int64

	neighbours map[int32]struct{}
	merged     bool
}

func (r *region) color() color.NRGBA {
	return color.NRGBA{
		R: uint8(r.residue[0] / r.n),
		G: uint8(r.residue[1] / r.n),
		B: uint8(r.residue[2] / r.n),
		A: uint8(r.residue[3] / r.n),
	}
}

// Builder runs the clustering of one image.
type Builder struct {
	cfg  Config
	img  *image.NRGBA
	w, h int

	phase phase
	next  int // next pixel for the label and collect phases

	parent   []int32 // union-find forest over pixels
	regionOf []int32 // root pixel → region id, then pixel → region id

	regions    []*region
	queue      regionQueue
	mergeTotal int
	mergeDone  int

	output []*Cluster
	result *Set
}

// Start begins clustering img. The image must not be modified while the
// run is in progress.
func Start(img *image.NRGBA, cfg Config) *Builder {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	parent := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
	}
	return &Builder{
		cfg:    cfg,
		img:    img,
		w:      b.Dx(),
		h:      b.Dy(),
		parent: parent,
	}
}

// Tick performs one batch of work and reports whether clustering is
// complete. Calls after completion do nothing and return true.
func (b *Builder) Tick() bool {
	switch b.phase {
	case phaseLabel:
		b.label()
	case phaseCollect:
		b.collect()
	case phaseMerge:
		b.merge()
	}
	return b.phase == phaseDone
}

// Progress returns an estimate of the completed work, between 0 and 100.
// The value never decreases.
func (b *Builder) Progress() int {
	n := max(b.w*b.h, 1)
	switch b.phase {
	case phaseLabel:
		return 40 * b.next / n
	case phaseCollect:
		return 40 + 20*b.next/n
	case phaseMerge:
		if b.mergeTotal == 0 {
			return 99
		}
		return 60 + 39*min(b.mergeDone, b.mergeTotal)/b.mergeTotal
	default:
		return 100
	}
}

// Result returns the clusters found. It panics if clustering is not yet
// complete.
func (b *Builder) Result() *Set {
	if b.phase != phaseDone {
		panic("cluster: Result called before clustering completed")
	}
	return b.result
}

func (b *Builder) pixel(i int) [4]uint8 {
	x, y := i%b.w, i/b.w
	o := b.img.Rect.Min
	off := b.img.PixOffset(x+o.X, y+o.Y)
	p := b.img.Pix[off : off+4 : off+4]
	return [4]uint8{p[0], p[1], p[2], p[3]}
}

func (b *Builder) sameColor(p, q [4]uint8) bool {
	shift := uint(b.cfg.SameColorShift)
	for k := range 4 {
		d := int(p[k]>>shift) - int(q[k]>>shift)
		if d < -b.cfg.SameColorTolerance || d > b.cfg.SameColorTolerance {
			return false
		}
	}
	return true
}

func (b *Builder) find(i int32) int32 {
	for b.parent[i] != i {
		b.parent[i] = b.parent[b.parent[i]]
		i = b.parent[i]
	}
	return i
}

func (b *Builder) union(i, j int32) {
	ri, rj := b.find(i), b.find(j)
	if ri == rj {
		return
	}
	// The smaller index stays the root, which keeps roots in scan order.
	if ri < rj {
		b.parent[rj] = ri
	} else {
		b.parent[ri] = rj
	}
}

// label joins every pixel with its already visited neighbours of the
// same colour.
func (b *Builder) label() {
	n := b.w * b.h
	end := min(b.next+b.cfg.BatchSize, n)
	for i := b.next; i < end; i++ {
		x, y := i%b.w, i/b.w
		c := b.pixel(i)
		try := func(j int) {
			if b.sameColor(c, b.pixel(j)) {
				b.union(int32(i), int32(j))
			}
		}
		if x > 0 {
			try(i - 1)
		}
		if y > 0 {
			try(i - b.w)
			if b.cfg.Diagonal {
				if x > 0 {
					try(i - b.w - 1)
				}
				if x < b.w-1 {
					try(i - b.w + 1)
				}
			}
		}
	}
	b.next = end
	if b.next == n {
		b.regionOf = make([]int32, n)
		for i := range b.regionOf {
			b.regionOf[i] = -1
		}
		b.next = 0
		b.phase = phaseCollect
	}
}

// collect turns the union-find forest into regions with areas, colours,
// pixel lists and adjacency.
func (b *Builder) collect() {
	n := b.w * b.h
	end := min(b.next+b.cfg.BatchSize, n)
	for i := b.next; i < end; i++ {
		root := b.find(int32(i))
		id := b.regionOf[root]
		if id < 0 {
			// Roots precede their members in scan order.
			id = int32(len(b.regions))
			b.regions = append(b.regions, &region{
				neighbours: make(map[int32]struct{}),
			})
			b.regionOf[root] = id
		}
		b.regionOf[i] = id

		x, y := i%b.w, i/b.w
		r := b.regions[id]
		pt := image.Rect(x, y, x+1, y+1)
		if r.area == 0 {
			r.bounds = pt
		} else {
			r.bounds = r.bounds.Union(pt)
		}
		r.area++
		r.pixels = append(r.pixels, int32(i))
		c := b.pixel(i)
		for k := range 4 {
			r.residue[k] += int64(c[k])
		}
		r.n++

		if x > 0 {
			b.connect(id, b.regionOf[i-1])
		}
		if y > 0 {
			b.connect(id, b.regionOf[i-b.w])
		}
	}
	b.next = end
	if b.next < n {
		return
	}

	b.parent = nil
	b.regionOf = nil
	b.queue = make(regionQueue, 0, len(b.regions))
	for id, r := range b.regions {
		b.queue = append(b.queue, queueEntry{area: r.area, id: int32(id)})
	}
	heap.Init(&b.queue)
	b.mergeTotal = max(len(b.regions)-1, 0)
	b.phase = phaseMerge
}

func (b *Builder) connect(a, c int32) {
	if a == c {
		return
	}
	b.regions[a].neighbours[c] = struct{}{}
	b.regions[c].neighbours[a] = struct{}{}
}

// merge absorbs the smallest regions into their most similar neighbours.
func (b *Builder) merge() {
	budget := max(b.cfg.BatchSize/mergeCost, 1)
	for budget > 0 {
		if b.queue.Len() == 0 {
			b.finish()
			return
		}
		e := heap.Pop(&b.queue).(queueEntry)
		r := b.regions[e.id]
		if r.merged || r.area != e.area {
			continue // stale entry
		}
		if r.area > b.cfg.Hierarchical {
			b.finish()
			return
		}

		target, diff := b.closestNeighbour(r)
		if target < 0 {
			// The root region has no neighbours left.
			continue
		}
		emit := r.area >= b.cfg.GoodMinArea && r.area <= b.cfg.GoodMaxArea &&
			diff > b.cfg.DeepenDiff
		if emit {
			b.emit(r)
		}
		b.absorb(target, e.id, emit)
		b.mergeDone++
		budget--
	}
}

// mergeCost is the number of label operations one merge counts for when
// computing the per-tick budget.
const mergeCost = 256

func (b *Builder) closestNeighbour(r *region) (id int32, diff int) {
	id = -1
	c := r.color()
	for nb := range r.neighbours {
		d := colorDiff(c, b.regions[nb].color())
		if id < 0 || d < diff || d == diff && nb < id {
			id, diff = nb, d
		}
	}
	return id, diff
}

// absorb merges region src into region dst. If covered is set, the pixels
// of src are covered by an output cluster and stop contributing to the
// residue colour of dst.
func (b *Builder) absorb(dst, src int32, covered bool) {
	d, s := b.regions[dst], b.regions[src]
	d.area += s.area
	d.bounds = d.bounds.Union(s.bounds)
	d.pixels = append(d.pixels, s.pixels...)
	if !covered {
		for k := range 4 {
			d.residue[k] += s.residue[k]
		}
		d.n += s.n
	}

	for nb := range s.neighbours {
		if nb == dst {
			continue
		}
		other := b.regions[nb]
		delete(other.neighbours, src)
		other.neighbours[dst] = struct{}{}
		d.neighbours[nb] = struct{}{}
	}
	delete(d.neighbours, src)

	s.merged = true
	s.neighbours = nil
	s.pixels = nil
	heap.Push(&b.queue, queueEntry{area: d.area, id: dst})
}

// emit outputs r as a cluster. Emitted clusters are complete and are
// not modified afterwards.
func (b *Builder) emit(r *region) {
	m := image.NewAlpha(r.bounds)
	for _, p := range r.pixels {
		x, y := int(p)%b.w, int(p)/b.w
		m.Pix[m.PixOffset(x, y)] = 0xFF
	}
	b.output = append(b.output, &Cluster{
		area:    r.area,
		bounds:  r.bounds,
		residue: r.color(),
		mask:    m,
	})
}

// finish outputs the regions which were not merged and freezes the result.
func (b *Builder) finish() {
	var live []int32
	for id, r := range b.regions {
		if !r.merged {
			live = append(live, int32(id))
		}
	}
	slices.SortFunc(live, func(x, y int32) int {
		if c := cmp.Compare(b.regions[x].area, b.regions[y].area); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	for _, id := range live {
		r := b.regions[id]
		if r.area >= b.cfg.GoodMinArea && r.area <= b.cfg.GoodMaxArea {
			b.emit(r)
		}
	}

	b.result = NewSet(b.w, b.h, b.output)
	b.regions = nil
	b.queue = nil
	b.output = nil
	b.phase = phaseDone
}

// colorDiff is the sum of the absolute channel differences.
func colorDiff(a, b color.NRGBA) int {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) + d(a.G, b.G) + d(a.B, b.B) + d(a.A, b.A)
}

type queueEntry struct {
	area int
	id   int32
}

// regionQueue is a min-heap of regions ordered by area, then id.
type regionQueue []queueEntry

func (q regionQueue) Len() int { return len(q) }
func (q regionQueue) Less(i, j int) bool {
	if q[i].area != q[j].area {
		return q[i].area < q[j].area
	}
	return q[i].id < q[j].id
}
func (q regionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *regionQueue) Push(x any)   { *q = append(*q, x.(queueEntry)) }
func (q *regionQueue) Pop() any {
	old := *q
	e := old[len(old)-1]
	*q = old[:len(old)-1]
	return e
}
