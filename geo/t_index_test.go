// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_index01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("index01. nodes near point")

	idx := NewIndex(1e-3)
	idx.InsertNode("A", Point{0, 0, 0})
	idx.InsertNode("B", Point{0.0005, 0, 0})
	idx.InsertNode("C", Point{-0.0009, 0.0001, 0})
	idx.InsertNode("D", Point{0.002, 0, 0})
	idx.InsertNode("E", Point{120, 0, 0})
	chk.Int(tst, "number of nodes", idx.NumNodes(), 5)

	res := idx.FindNear(Point{0, 0, 0}, 1e-3)
	io.Pforan("res = %v\n", res)
	chk.Int(tst, "len(res)", len(res), 3)
	if len(res) == 3 && (res[0] != "A" || res[1] != "B" || res[2] != "C") {
		tst.Errorf("results must be sorted by insertion order: %v", res)
		return
	}

	// exact boundary is included
	res = idx.FindNear(Point{0.001, 0, 0}, 1e-3)
	io.Pforan("res = %v\n", res)
	chk.Int(tst, "len(res) @ boundary", len(res), 3)

	// larger tolerance searches more cells
	res = idx.FindNear(Point{0, 0, 0}, 0.01)
	chk.Int(tst, "len(res) @ tol=0.01", len(res), 4)

	// zero tolerance: exact duplicates only
	idx.InsertNode("F", Point{120, 0, 0})
	res = idx.FindNear(Point{120, 0, 0}, 0)
	io.Pforan("res = %v\n", res)
	chk.Int(tst, "len(res) @ tol=0", len(res), 2)

	// moving a node
	idx.InsertNode("F", Point{50, 0, 0})
	res = idx.FindNear(Point{120, 0, 0}, 0)
	chk.Int(tst, "len(res) after move", len(res), 1)
	res = idx.FindNear(Point{50, 0, 0}, 0)
	chk.Int(tst, "len(res) @ new position", len(res), 1)
}

func Test_index02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("index02. crossing segments")

	idx := NewIndex(1e-3)
	idx.InsertSegment("H", Point{0, 5, 0}, Point{10, 5, 0})
	idx.InsertSegment("V1", Point{2, 0, 0}, Point{2, 10, 0})
	idx.InsertSegment("V2", Point{7, 0, 0}, Point{7, 10, 0})
	idx.InsertSegment("far", Point{100, 0, 0}, Point{100, 10, 0})
	idx.InsertSegment("skew", Point{5, 5, 1}, Point{5, 6, 1})
	chk.Int(tst, "number of segments", idx.NumSegments(), 5)

	hits := idx.FindIntersections(Point{0, 5, 0}, Point{10, 5, 0}, 1e-3)
	for _, h := range hits {
		io.Pforan("%s: %v s=%g t=%g p=%v\n", h.Segment, h.Kind, h.S, h.T, h.P)
	}

	// H itself is an overlap with the query
	chk.Int(tst, "number of hits", len(hits), 3)
	if len(hits) != 3 {
		return
	}
	if hits[0].Segment != "H" || hits[0].Kind != Overlap {
		tst.Errorf("first hit must be the overlap with H")
		return
	}
	chk.Float64(tst, "H: s2", 1e-15, hits[0].S2, 1)
	if hits[1].Segment != "V1" || hits[2].Segment != "V2" {
		tst.Errorf("hits must be ordered along the query segment")
		return
	}
	chk.Float64(tst, "V1: s", 1e-14, hits[1].S, 0.2)
	chk.Float64(tst, "V1: t", 1e-14, hits[1].T, 0.5)
	chk.Float64(tst, "V2: s", 1e-14, hits[2].S, 0.7)
	chk.Array(tst, "V2: p", 1e-14, hits[2].P[:], []float64{7, 5, 0})

	// zero-length query
	hits = idx.FindIntersections(Point{2, 5, 0}, Point{2, 5, 0}, 1e-3)
	chk.Int(tst, "zero-length query", len(hits), 0)
}

func Test_index03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("index03. intersect")

	// T-junction
	hit, ok := Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{4, 0, 0}, Point{4, 3, 0}, 1e-3)
	if !ok {
		tst.Errorf("T-junction must be found")
		return
	}
	chk.Float64(tst, "T: s", 1e-15, hit.S, 0.4)
	chk.Float64(tst, "T: t", 1e-15, hit.T, 0)

	// near miss within tolerance
	hit, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{4, 0.0005, 0}, Point{4, 3, 0}, 1e-3)
	if !ok {
		tst.Errorf("near miss within tolerance must be found")
		return
	}
	chk.Float64(tst, "near: dist", 1e-15, hit.Dist, 0.0005)

	// near miss outside tolerance
	_, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{4, 0.002, 0}, Point{4, 3, 0}, 1e-3)
	if ok {
		tst.Errorf("near miss outside tolerance must not be found")
		return
	}

	// skew lines
	_, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{5, -1, 1}, Point{5, 1, 1}, 1e-3)
	if ok {
		tst.Errorf("skew lines must not intersect")
		return
	}

	// collinear touching end to end
	hit, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{10, 0, 0}, Point{20, 0, 0}, 1e-3)
	if !ok || hit.Kind != Touch {
		tst.Errorf("end-to-end collinear segments must touch")
		return
	}
	chk.Float64(tst, "touch: s", 1e-15, hit.S, 1)
	chk.Float64(tst, "touch: t", 1e-15, hit.T, 0)

	// collinear overlap
	hit, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{12, 0, 0}, Point{6, 0, 0}, 1e-3)
	if !ok || hit.Kind != Overlap {
		tst.Errorf("collinear segments must overlap")
		return
	}
	chk.Float64(tst, "overlap: s", 1e-15, hit.S, 0.6)
	chk.Float64(tst, "overlap: s2", 1e-15, hit.S2, 1)

	// parallel apart
	_, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{0, 1, 0}, Point{10, 1, 0}, 1e-3)
	if ok {
		tst.Errorf("parallel lines must not intersect")
		return
	}

	// collinear disjoint
	_, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{11, 0, 0}, Point{20, 0, 0}, 1e-3)
	if ok {
		tst.Errorf("disjoint collinear segments must not intersect")
	}

	// degenerate
	_, ok = Intersect(Point{0, 0, 0}, Point{10, 0, 0}, Point{5, 0, 0}, Point{5, 0, 0}, 1e-3)
	if ok {
		tst.Errorf("zero-length segment must not intersect")
	}
}

func Test_vec01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vec01")

	a := Point{1, 0, 0}
	b := Point{0, 1, 0}
	c := Cross(a, b)
	chk.Array(tst, "a × b", 1e-17, c[:], []float64{0, 0, 1})
	chk.Float64(tst, "a ⋅ b", 1e-17, Dot(a, b), 0)
	chk.Float64(tst, "|(3,4,0)|", 1e-15, Norm(Point{3, 4, 0}), 5)
	u := Unit(Point{0, 0, 2})
	chk.Array(tst, "unit", 1e-17, u[:], []float64{0, 0, 1})
	chk.Float64(tst, "clamp", 1e-17, Clamp(1.5, 0.0, 1.0), 1)
	chk.Int(tst, "clamp int", Clamp(-3, 0, 5), 0)
}
