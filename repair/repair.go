// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package repair implements the repair of frame models: merging of duplicate nodes and splitting
// of members at intersections
package repair

import (
	"github.com/cpmech/goframe/geo"
	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Repaired holds a repaired model and the identity tables relating it to the input model
type Repaired struct {
	Model     *inp.Model          // repaired model
	NodeMap   map[string]string   // merged node name => canonical node name
	MemberMap map[string][]string // split member name => names of sub-members, from i to j
	NewNodes  []string            // nodes created at member crossings
	Warnings  []string            // non-fatal issues; e.g. support conflicts
}

// Repair merges duplicate nodes and splits members at intersections. The input model is not
// modified; on failure nothing is returned
func Repair(model *inp.Model, opts *inp.Options) (res *Repaired, err error) {

	// options
	if opts == nil {
		opts = inp.NewOptions()
	}
	err = opts.Validate()
	if err != nil {
		return
	}

	// work on a copy
	mdl := model.Clone()
	err = checkRefs(mdl)
	if err != nil {
		return
	}
	o := &repairer{
		mdl:  mdl,
		opts: opts,
		res: &Repaired{
			Model:     mdl,
			NodeMap:   make(map[string]string),
			MemberMap: make(map[string][]string),
		},
	}

	// merge duplicate nodes
	if opts.MergeDuplicates {
		err = o.merge()
		if err != nil {
			return
		}
	}

	// split members at intersections
	err = o.split()
	if err != nil {
		return
	}

	// final check
	mdl.Reindex()
	mdl.Touch()
	err = mdl.Validate()
	if err != nil {
		return
	}
	if opts.Verbose {
		io.Pf("> repair: %d nodes merged, %d members split, %d nodes created\n", len(o.res.NodeMap), len(o.res.MemberMap), len(o.res.NewNodes))
		for _, w := range o.res.Warnings {
			io.Pfyel("> warning: %s\n", w)
		}
	}
	return o.res, nil
}

// repairer holds the state of one repair
type repairer struct {
	mdl        *inp.Model
	opts       *inp.Options
	res        *Repaired
	pieceNames map[string]bool // names given to sub-members
}

// warn records a warning
func (o *repairer) warn(msg string, args ...interface{}) {
	o.res.Warnings = append(o.res.Warnings, io.Sf(msg, args...))
}

// point returns the coordinates of node
func (o *repairer) point(name string) geo.Point {
	return geo.Point(o.mdl.Node(name).Coords())
}

// checkRefs checks that every reference resolves before any geometry processing
func checkRefs(mdl *inp.Model) (err error) {
	mdl.Reindex()
	names := make(map[string]bool)
	for _, n := range mdl.Nodes {
		if names[n.Name] {
			return &inp.ModelingError{Msg: "node names must be unique", Nodes: []string{n.Name}}
		}
		names[n.Name] = true
		if !inp.Finite(n.X, n.Y, n.Z) {
			return &inp.ModelingError{Msg: "node coordinates must be finite", Nodes: []string{n.Name}}
		}
	}
	for _, m := range mdl.Members {
		if mdl.Node(m.I) == nil || mdl.Node(m.J) == nil {
			return &inp.ModelingError{Msg: chk.Err("cannot find nodes %q and/or %q", m.I, m.J).Error(), Members: []string{m.Name}}
		}
		if m.I == m.J {
			return &inp.ModelingError{Msg: "i-node and j-node must be different", Members: []string{m.Name}}
		}
	}
	return
}
