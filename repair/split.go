// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repair

import (
	"math"
	"sort"

	"github.com/cpmech/goframe/geo"
	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// splitPoint holds a node where a member must be split
type splitPoint struct {
	s    float64 // position along member as fraction of length
	node string  // node name
}

// split splits members at crossings and T-junctions
func (o *repairer) split() (err error) {

	// index
	tol := o.opts.TolInter
	members := o.mdl.Members
	idx := geo.NewIndex(tol)
	for _, n := range o.mdl.Nodes {
		idx.InsertNode(n.Name, geo.Point(n.Coords()))
	}
	mid := make(map[string]int, len(members))
	for k, m := range members {
		mid[m.Name] = k
		idx.InsertSegment(m.Name, o.point(m.I), o.point(m.J))
	}

	// collect split points; each unordered pair is processed once
	splits := make(map[string][]splitPoint)
	for k, m := range members {
		a, b := o.point(m.I), o.point(m.J)
		lm := geo.Dist(a, b)
		for _, hit := range idx.FindIntersections(a, b, tol) {
			l, ok := mid[hit.Segment]
			if !ok || l <= k {
				continue
			}
			n := members[l]
			if hit.Kind == geo.Overlap {
				return &inp.ModelingError{
					Msg:     io.Sf("collinear members overlap over a length of %g", (hit.S2-hit.S)*lm),
					Nodes:   []string{m.I, m.J, n.I, n.J},
					Members: []string{m.Name, n.Name},
				}
			}
			if shareEnd(m, n) {
				continue
			}
			if hit.Kind == geo.Touch {
				o.warn("members %q and %q touch at distinct nodes; consider merging duplicates", m.Name, n.Name)
				continue
			}
			ln := geo.Dist(o.point(n.I), o.point(n.J))
			endm := endAt(m, hit.S, lm, tol)
			endn := endAt(n, hit.T, ln, tol)
			switch {
			case endm != "" && endn != "":
				o.warn("members %q and %q meet at distinct nodes %q and %q; consider merging duplicates", m.Name, n.Name, endm, endn)
			case endn != "":
				splits[m.Name] = append(splits[m.Name], splitPoint{hit.S, endn})
			case endm != "":
				splits[n.Name] = append(splits[n.Name], splitPoint{hit.T, endm})
			default:
				node := o.crossingNode(idx, hit.P, tol)
				splits[m.Name] = append(splits[m.Name], splitPoint{hit.S, node})
				splits[n.Name] = append(splits[n.Name], splitPoint{hit.T, node})
			}
		}
	}
	if len(splits) == 0 {
		return
	}

	// split members and their loads
	var newMembers []*inp.Member
	pieces := make(map[string][]*inp.Member)
	bounds := make(map[string][]float64)
	for _, m := range members {
		pts, ok := splits[m.Name]
		if !ok {
			newMembers = append(newMembers, m)
			continue
		}
		pcs, xs := o.splitMember(m, pts)
		if len(pcs) < 2 {
			newMembers = append(newMembers, m)
			continue
		}
		pieces[m.Name] = pcs
		bounds[m.Name] = xs
		names := make([]string, len(pcs))
		for i, p := range pcs {
			names[i] = p.Name
		}
		o.res.MemberMap[m.Name] = names
		newMembers = append(newMembers, pcs...)
	}
	o.mdl.Members = newMembers
	o.mdl.Reindex()
	o.splitLoads(pieces, bounds)
	return
}

// crossingNode returns an existent node near x or creates a new one
func (o *repairer) crossingNode(idx *geo.Index, x geo.Point, tol float64) string {
	if near := idx.FindNear(x, tol); len(near) > 0 {
		return near[0]
	}
	nod, err := o.mdl.AddNode("", x[0], x[1], x[2])
	if err != nil {
		chk.Panic("cannot create node at crossing:\n%v", err)
	}
	idx.InsertNode(nod.Name, x)
	o.res.NewNodes = append(o.res.NewNodes, nod.Name)
	return nod.Name
}

// splitMember creates the sub-members of m. xs holds the bounds of each piece as fractions of m
func (o *repairer) splitMember(m *inp.Member, pts []splitPoint) (pcs []*inp.Member, xs []float64) {

	// positions recomputed from node coordinates
	a, b := o.point(m.I), o.point(m.J)
	u := geo.Sub(b, a)
	uu := geo.Dot(u, u)
	seen := map[string]bool{m.I: true, m.J: true}
	var sorted []splitPoint
	for _, p := range pts {
		if seen[p.node] {
			continue
		}
		seen[p.node] = true
		s := geo.Dot(geo.Sub(o.point(p.node), a), u) / uu
		sorted = append(sorted, splitPoint{geo.Clamp(s, 0, 1), p.node})
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].s < sorted[j].s })

	// sequence of nodes
	nodes := []string{m.I}
	xs = []float64{0}
	for _, p := range sorted {
		nodes = append(nodes, p.node)
		xs = append(xs, p.s)
	}
	nodes = append(nodes, m.J)
	xs = append(xs, 1)

	// pieces
	npcs := len(nodes) - 1
	for k := 0; k < npcs; k++ {
		p := &inp.Member{
			Name:     o.pieceName(m.Name, k+1),
			I:        nodes[k],
			J:        nodes[k+1],
			Sec:      m.Sec,
			Section:  m.Section,
			Rotation: m.Rotation,
		}
		if k == 0 {
			copy(p.Releases[:6], m.Releases[:6])
		}
		if k == npcs-1 {
			copy(p.Releases[6:], m.Releases[6:])
		}
		pcs = append(pcs, p)
	}
	return
}

// pieceName returns a unique name for the k-th piece of member
func (o *repairer) pieceName(member string, k int) string {
	name := io.Sf("%s-%d", member, k)
	for j := 2; o.mdl.Member(name) != nil || o.taken(name); j++ {
		name = io.Sf("%s-%d.%d", member, k, j)
	}
	o.used(name)
	return name
}

// taken tells whether a piece name has already been given
func (o *repairer) taken(name string) bool {
	return o.pieceNames[name]
}

// used records a piece name
func (o *repairer) used(name string) {
	if o.pieceNames == nil {
		o.pieceNames = make(map[string]bool)
	}
	o.pieceNames[name] = true
}

// splitLoads moves the loads of split members to their pieces
func (o *repairer) splitLoads(pieces map[string][]*inp.Member, bounds map[string][]float64) {

	// distributed loads: partitioned by length
	var dist []*inp.DistLoad
	for _, l := range o.mdl.DistLoads {
		pcs, ok := pieces[l.Member]
		if !ok {
			dist = append(dist, l)
			continue
		}
		xs := bounds[l.Member]
		w := func(x float64) float64 {
			return l.W1 + (l.W2-l.W1)*(x-l.X1)/(l.X2-l.X1)
		}
		for k, p := range pcs {
			lo := math.Max(l.X1, xs[k])
			hi := math.Min(l.X2, xs[k+1])
			if hi-lo < 1e-12 {
				continue
			}
			ds := xs[k+1] - xs[k]
			dist = append(dist, &inp.DistLoad{
				Member: p.Name,
				Dir:    l.Dir,
				W1:     w(lo),
				W2:     w(hi),
				X1:     geo.Clamp((lo-xs[k])/ds, 0, 1),
				X2:     geo.Clamp((hi-xs[k])/ds, 0, 1),
			})
		}
	}
	o.mdl.DistLoads = dist

	// point loads: piece containing the position; a load at a split goes to the next piece
	for _, l := range o.mdl.PointLoads {
		pcs, ok := pieces[l.Member]
		if !ok {
			continue
		}
		xs := bounds[l.Member]
		k := len(pcs) - 1
		for i := range pcs {
			if l.X < xs[i+1] {
				k = i
				break
			}
		}
		l.Member = pcs[k].Name
		l.X = geo.Clamp((l.X-xs[k])/(xs[k+1]-xs[k]), 0, 1)
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// shareEnd tells whether members m and n have a common node
func shareEnd(m, n *inp.Member) bool {
	return m.I == n.I || m.I == n.J || m.J == n.I || m.J == n.J
}

// endAt returns the name of the end node of m at position s, if within tol, or ""
func endAt(m *inp.Member, s, length, tol float64) string {
	if s*length <= tol {
		return m.I
	}
	if (1-s)*length <= tol {
		return m.J
	}
	return ""
}
