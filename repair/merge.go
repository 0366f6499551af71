// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repair

import (
	"strings"

	"github.com/cpmech/goframe/geo"
	"github.com/cpmech/goframe/inp"
)

// merge merges nodes closer than TolNode. The first inserted node of each group is kept
func (o *repairer) merge() (err error) {

	// groups of nodes: union-find over proximity queries
	nodes := o.mdl.Nodes
	idx := geo.NewIndex(o.opts.TolNode)
	parent := make([]int, len(nodes))
	name2id := make(map[string]int, len(nodes))
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i, nod := range nodes {
		parent[i] = i
		name2id[nod.Name] = i
		x := geo.Point(nod.Coords())
		for _, name := range idx.FindNear(x, o.opts.TolNode) {
			ra, rb := find(i), find(name2id[name])
			if ra < rb {
				parent[rb] = ra
			} else if rb < ra {
				parent[ra] = rb
			}
		}
		idx.InsertNode(nod.Name, x)
	}

	// canonical names
	canon := make(map[string]string, len(nodes))
	var kept []*inp.Node
	for i, nod := range nodes {
		r := find(i)
		canon[nod.Name] = nodes[r].Name
		if r == i {
			kept = append(kept, nod)
		} else {
			o.res.NodeMap[nod.Name] = nodes[r].Name
		}
	}
	if len(kept) == len(nodes) {
		return
	}

	// members
	for _, m := range o.mdl.Members {
		ci, cj := canon[m.I], canon[m.J]
		if ci == cj {
			return &inp.ModelingError{
				Msg:     "member endpoints collapse into a single node after merging duplicates",
				Nodes:   []string{m.I, m.J},
				Members: []string{m.Name},
			}
		}
		m.I, m.J = ci, cj
	}

	// supports
	err = o.mergeSupports(canon)
	if err != nil {
		return
	}

	// nodal loads
	for _, l := range o.mdl.NodeLoads {
		l.Node = canon[l.Node]
	}

	// nodes
	o.mdl.Nodes = kept
	o.mdl.Reindex()
	return
}

// mergeSupports combines the supports of merged nodes according to the conflict policy
func (o *repairer) mergeSupports(canon map[string]string) (err error) {
	var order []string
	groups := make(map[string][]*inp.Support)
	for _, s := range o.mdl.Supports {
		c := canon[s.Node]
		if _, ok := groups[c]; !ok {
			order = append(order, c)
		}
		groups[c] = append(groups[c], s)
	}
	supports := make([]*inp.Support, 0, len(order))
	for _, c := range order {
		group := groups[c]
		merged := &inp.Support{Node: c, Fixed: group[0].Fixed}
		if len(group) > 1 {
			var conflicts []string
			for dof := 0; dof < 6; dof++ {
				nfixed := 0
				for _, s := range group {
					if s.Fixed[dof] {
						nfixed++
					}
				}
				if nfixed > 0 && nfixed < len(group) {
					conflicts = append(conflicts, inp.DofKeys[dof])
				}
				switch o.opts.SupportConflict {
				case inp.ConflictFree:
					merged.Fixed[dof] = nfixed == len(group)
				default:
					merged.Fixed[dof] = nfixed > 0
				}
			}
			if len(conflicts) > 0 {
				names := make([]string, len(group))
				for i, s := range group {
					names[i] = s.Node
				}
				if o.opts.SupportConflict == inp.ConflictError {
					return &inp.ModelingError{
						Msg:   "merged nodes have conflicting supports at " + strings.Join(conflicts, " "),
						Nodes: names,
					}
				}
				o.warn("merged nodes %s have conflicting supports at %s; resolved as %q", strings.Join(names, ", "), strings.Join(conflicts, " "), o.opts.SupportConflict)
			}
		}
		supports = append(supports, merged)
	}
	o.mdl.Supports = supports
	return
}
