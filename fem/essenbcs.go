// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Restraint holds information about one restrained DOF
type Restraint struct {
	Eq   int    // equation number
	Node string // node name
	Key  string // DOF key such as "DX", "RZ"
}

// RestraintArray is an array of Restraint's
type RestraintArray []*Restraint

// Supports implements a structure to record restrained DOFs
//  Restrained DOFs are removed from the system of equations; their reactions are
//  computed after the solution
type Supports struct {
	Bcs   RestraintArray // active restraints
	Fixed []bool         // [ny] restrained equations
	eqs   map[int]bool   // already set equations
}

// Init initialises this structure
func (o *Supports) Init() {
	o.Bcs = make([]*Restraint, 0)
	o.eqs = make(map[int]bool)
}

// Set sets restraints at one node
//  eq0  -- first equation of node
//  keys -- DOF keys
func (o *Supports) Set(node string, eq0 int, keys ...string) (err error) {
	for _, key := range keys {
		idx := inp.DofIndex(key)
		if idx < 0 {
			return chk.Err("cannot set restraint at node %q: key %q is invalid", node, key)
		}
		eq := eq0 + idx
		if o.eqs[eq] {
			continue
		}
		o.eqs[eq] = true
		o.Bcs = append(o.Bcs, &Restraint{eq, node, inp.DofKeys[idx]})
	}
	return
}

// Build sorts the restraints and sets the Fixed array
func (o *Supports) Build(ny int) {
	sort.Sort(o.Bcs)
	o.Fixed = make([]bool, ny)
	for _, bc := range o.Bcs {
		o.Fixed[bc.Eq] = true
	}
}

// List returns a list of restraints
func (o *Supports) List() (l string) {
	for i, bc := range o.Bcs {
		if i > 0 {
			l += " "
		}
		l += io.Sf("%s:%s(%d)", bc.Node, bc.Key, bc.Eq)
	}
	return
}

// Len the length of RestraintArray
func (o RestraintArray) Len() int {
	return len(o)
}

// Swap swaps two restraints
func (o RestraintArray) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
}

// Less compares restraints by equation number
func (o RestraintArray) Less(i, j int) bool {
	return o[i].Eq < o[j].Eq
}
