// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo implements a spatial index of nodes and segments for proximity and intersection queries
package geo

import (
	"math"
	"sort"
)

// HitKind indicates how two segments meet
type HitKind int

const (
	Crossing HitKind = iota // non-parallel segments within tolerance at a single point
	Touch                   // collinear segments sharing one point
	Overlap                 // collinear segments sharing a span longer than tolerance
)

func (o HitKind) String() string {
	switch o {
	case Crossing:
		return "crossing"
	case Touch:
		return "touch"
	case Overlap:
		return "overlap"
	}
	return "unknown"
}

// Hit holds one intersection between a query segment and an indexed segment
type Hit struct {
	Segment string  // name of indexed segment
	Kind    HitKind // kind of hit
	S       float64 // parameter along query segment in [0,1]. Overlap: start of shared span
	T       float64 // parameter along indexed segment in [0,1], at S
	S2      float64 // Overlap: end of shared span along query segment. Otherwise == S
	P       Point   // point on query segment at S
	P2      Point   // Overlap: point on query segment at S2. Otherwise == P
	Dist    float64 // distance between the closest points
}

// Index holds a uniform grid of nodes and a coarse grid of segments
type Index struct {

	// nodes
	cell   float64           // node cell size
	names  []string          // node names, in insertion order
	pts    []Point           // node coordinates
	ngrid  map[cellKey][]int // cell => node ids
	name2n map[string]int    // node name => id

	// segments
	segs   []segment         // all segments
	name2s map[string]int    // segment name => id
	scell  float64           // segment cell size
	sgrid  map[cellKey][]int // cell => segment ids
	big    []int             // segments covering too many cells; always checked
	dirty  bool              // segment grid must be rebuilt
}

// maximum number of cells a segment may be registered in
const maxSegCells = 4096

type cellKey [3]int64

type segment struct {
	name string
	a, b Point
}

// NewIndex returns a new index
//  tol -- node cell size; usually the merge tolerance. tol ≤ 0 => 1
func NewIndex(tol float64) (o *Index) {
	o = new(Index)
	o.cell = tol
	if o.cell <= 0 {
		o.cell = 1
	}
	o.ngrid = make(map[cellKey][]int)
	o.name2n = make(map[string]int)
	o.name2s = make(map[string]int)
	o.scell = 1
	return
}

// InsertNode adds a node to the index. Inserting an existing name moves the node
func (o *Index) InsertNode(name string, x Point) {
	if id, ok := o.name2n[name]; ok {
		o.removeNode(id)
		o.pts[id] = x
		key := o.key(x, o.cell)
		o.ngrid[key] = append(o.ngrid[key], id)
		return
	}
	id := len(o.pts)
	o.names = append(o.names, name)
	o.pts = append(o.pts, x)
	o.name2n[name] = id
	key := o.key(x, o.cell)
	o.ngrid[key] = append(o.ngrid[key], id)
}

// NumNodes returns the number of indexed nodes
func (o *Index) NumNodes() int { return len(o.pts) }

// FindNear returns the names of all nodes within tol of x, sorted by insertion order
func (o *Index) FindNear(x Point, tol float64) (res []string) {
	if tol < 0 {
		tol = 0
	}
	r := int64(math.Ceil(tol / o.cell))
	c := o.key(x, o.cell)
	var ids []int
	for i := c[0] - r; i <= c[0]+r; i++ {
		for j := c[1] - r; j <= c[1]+r; j++ {
			for k := c[2] - r; k <= c[2]+r; k++ {
				for _, id := range o.ngrid[cellKey{i, j, k}] {
					if Dist(o.pts[id], x) <= tol {
						ids = append(ids, id)
					}
				}
			}
		}
	}
	sort.Ints(ids)
	res = make([]string, len(ids))
	for i, id := range ids {
		res[i] = o.names[id]
	}
	return
}

// InsertSegment adds a segment from a to b to the index
func (o *Index) InsertSegment(name string, a, b Point) {
	if id, ok := o.name2s[name]; ok {
		o.segs[id] = segment{name, a, b}
	} else {
		o.name2s[name] = len(o.segs)
		o.segs = append(o.segs, segment{name, a, b})
	}
	o.dirty = true
}

// NumSegments returns the number of indexed segments
func (o *Index) NumSegments() int { return len(o.segs) }

// FindIntersections returns the hits of segment a-b against all indexed segments within tol,
// ordered by the parameter along a-b. Zero-length segments have no hits
func (o *Index) FindIntersections(a, b Point, tol float64) (hits []Hit) {
	if tol < 0 {
		tol = 0
	}
	if o.dirty {
		o.rebuild()
	}
	seen := make(map[int]bool)
	check := func(id int) {
		if seen[id] {
			return
		}
		seen[id] = true
		s := o.segs[id]
		if hit, ok := Intersect(a, b, s.a, s.b, tol); ok {
			hit.Segment = s.name
			hits = append(hits, hit)
		}
	}
	lo, hi := bbox(a, b, tol)
	if o.ncells(lo, hi) > maxSegCells {
		for id := range o.segs {
			check(id)
		}
	} else {
		o.eachCell(lo, hi, func(key cellKey) {
			for _, id := range o.sgrid[key] {
				check(id)
			}
		})
		for _, id := range o.big {
			check(id)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].S == hits[j].S {
			return o.name2s[hits[i].Segment] < o.name2s[hits[j].Segment]
		}
		return hits[i].S < hits[j].S
	})
	return
}

// Intersect computes the intersection between segments p0-p1 and q0-q1
//  Note: the closest points of the infinite lines are computed first; a hit requires both
//        parameters to fall within the segments (with a margin of tol in length units) and the
//        distance between closest points to be at most tol
func Intersect(p0, p1, q0, q1 Point, tol float64) (hit Hit, ok bool) {

	// vectors
	u := Sub(p1, p0)
	v := Sub(q1, q0)
	w := Sub(p0, q0)
	a := Dot(u, u)
	b := Dot(u, v)
	c := Dot(v, v)
	d := Dot(u, w)
	e := Dot(v, w)
	ϵ := 1e-24
	if a < ϵ || c < ϵ {
		return
	}
	lu, lv := math.Sqrt(a), math.Sqrt(c)
	mu, mv := tol/lu+1e-12, tol/lv+1e-12

	// non-parallel
	den := a*c - b*b
	if den > 1e-12*a*c {
		s := (b*e - c*d) / den
		t := (a*e - b*d) / den
		if s < -mu || s > 1+mu || t < -mv || t > 1+mv {
			return
		}
		s, t = Clamp(s, 0, 1), Clamp(t, 0, 1)
		p, q := Lerp(p0, p1, s), Lerp(q0, q1, t)
		dist := Dist(p, q)
		if dist > tol {
			return
		}
		return Hit{Kind: Crossing, S: s, T: t, S2: s, P: p, P2: p, Dist: dist}, true
	}

	// parallel: distance between lines
	s0 := -d / a
	dist := Dist(Lerp(p0, p1, s0), q0)
	if dist > tol {
		return
	}

	// collinear: shared span along p
	s1 := s0 + b/a
	lo := math.Max(0, math.Min(s0, s1))
	hi := math.Min(1, math.Max(s0, s1))
	if hi < lo-mu {
		return
	}
	tat := func(s float64) float64 {
		return Clamp(Dot(Sub(Lerp(p0, p1, s), q0), v)/c, 0, 1)
	}
	if (hi-lo)*lu > tol {
		return Hit{Kind: Overlap, S: lo, T: tat(lo), S2: hi, P: Lerp(p0, p1, lo), P2: Lerp(p0, p1, hi), Dist: dist}, true
	}
	s := Clamp((lo+hi)/2, 0, 1)
	p := Lerp(p0, p1, s)
	return Hit{Kind: Touch, S: s, T: tat(s), S2: s, P: p, P2: p, Dist: dist}, true
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func (o *Index) key(x Point, cell float64) cellKey {
	return cellKey{int64(math.Floor(x[0] / cell)), int64(math.Floor(x[1] / cell)), int64(math.Floor(x[2] / cell))}
}

func (o *Index) removeNode(id int) {
	key := o.key(o.pts[id], o.cell)
	ids := o.ngrid[key]
	for i, jd := range ids {
		if jd == id {
			o.ngrid[key] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

// rebuild recomputes the segment cell size from the mean length and registers all segments
func (o *Index) rebuild() {
	o.dirty = false
	o.sgrid = make(map[cellKey][]int)
	o.big = nil
	sum := 0.0
	for _, s := range o.segs {
		sum += Dist(s.a, s.b)
	}
	o.scell = 1
	if len(o.segs) > 0 && sum > 0 {
		o.scell = sum / float64(len(o.segs))
	}
	for id, s := range o.segs {
		lo, hi := bbox(s.a, s.b, 0)
		if o.ncells(lo, hi) > maxSegCells {
			o.big = append(o.big, id)
			continue
		}
		o.eachCell(lo, hi, func(key cellKey) {
			o.sgrid[key] = append(o.sgrid[key], id)
		})
	}
}

func (o *Index) ncells(lo, hi Point) (n float64) {
	a, b := o.key(lo, o.scell), o.key(hi, o.scell)
	n = 1
	for i := 0; i < 3; i++ {
		n *= float64(b[i] - a[i] + 1)
	}
	return
}

func (o *Index) eachCell(lo, hi Point, fcn func(key cellKey)) {
	a, b := o.key(lo, o.scell), o.key(hi, o.scell)
	for i := a[0]; i <= b[0]; i++ {
		for j := a[1]; j <= b[1]; j++ {
			for k := a[2]; k <= b[2]; k++ {
				fcn(cellKey{i, j, k})
			}
		}
	}
}

// bbox returns the bounding box of a-b inflated by δ
func bbox(a, b Point, δ float64) (lo, hi Point) {
	for i := 0; i < 3; i++ {
		lo[i] = math.Min(a[i], b[i]) - δ
		hi[i] = math.Max(a[i], b[i]) + δ
	}
	return
}
