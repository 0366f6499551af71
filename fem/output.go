// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/chk"
)

// Result holds the results of a linear static analysis
type Result struct {
	Version  uint64                 // version of the analysed model at analysis time
	Nodes    []string               // node names in model order
	Members  []string               // member names in model order
	Disp     map[string][6]float64  // node => displacements in DofKeys order
	React    map[string][6]float64  // supported node => reactions; zero at free DOFs
	Forces   map[string][12]float64 // member => local end forces acting on member
	Warnings []error                // non-fatal problems; e.g. *inp.StaticsWarning
	Statics  *Statics               // equilibrium balance; nil if not computed

	// auxiliary
	frames map[string]*Frame
}

// NewResult collects the results of a solved domain
func NewResult(dom *Domain, version uint64) (o *Result) {
	o = new(Result)
	o.Version = version
	o.Disp = make(map[string][6]float64)
	o.React = make(map[string][6]float64)
	o.Forces = make(map[string][12]float64)
	o.frames = make(map[string]*Frame)
	for _, nod := range dom.Mdl.Nodes {
		o.Nodes = append(o.Nodes, nod.Name)
		o.Disp[nod.Name] = dom.NodeDisp(nod.Name)
	}
	for _, sup := range dom.Mdl.Supports {
		if sup.Any() {
			o.React[sup.Node] = dom.NodeReact(sup.Node)
		}
	}
	for _, e := range dom.Elems {
		var f [12]float64
		copy(f[:], e.Fend)
		o.Members = append(o.Members, e.Mem.Name)
		o.Forces[e.Mem.Name] = f
		o.frames[e.Mem.Name] = e
	}
	return
}

// Stale tells whether the model was modified after the analysis
func (o *Result) Stale(mdl *inp.Model) bool {
	return mdl.Version != o.Version
}

// MemberForces returns the internal forces [N Vy Vz T My Mz] of a member at fraction s of its length
func (o *Result) MemberForces(member string, s float64) (res [6]float64, err error) {
	e, err := o.frame(member, s)
	if err != nil {
		return
	}
	return e.Forces(s), nil
}

// MemberDeflection returns the local displacements [u v w] of a member at fraction s of its length
func (o *Result) MemberDeflection(member string, s float64) (res [3]float64, err error) {
	e, err := o.frame(member, s)
	if err != nil {
		return
	}
	return e.Deflection(s), nil
}

// MemberStations returns the internal forces of a member at n equally spaced stations
func (o *Result) MemberStations(member string, n int) (s []float64, forces [][6]float64, err error) {
	e, err := o.frame(member, 0)
	if err != nil {
		return
	}
	s, forces = e.Stations(n)
	return
}

// MemberLength returns the length of a member
func (o *Result) MemberLength(member string) float64 {
	if e, ok := o.frames[member]; ok {
		return e.L
	}
	return 0
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func (o *Result) frame(member string, s float64) (e *Frame, err error) {
	e, ok := o.frames[member]
	if !ok {
		return nil, chk.Err("cannot find member %q in results", member)
	}
	if s < 0 || s > 1 {
		return nil, chk.Err("position along member %q must be in [0,1]. %g is invalid", member, s)
	}
	return
}
