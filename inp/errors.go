// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strings"

	"github.com/cpmech/gosl/io"
)

// ModelingError reports geometry or topology that cannot be processed; e.g. overlapping
// collinear members or a member whose endpoints collapse into a single node
type ModelingError struct {
	Msg     string   // description
	Nodes   []string // implicated nodes, if any
	Members []string // implicated members, if any
}

func (o *ModelingError) Error() string {
	l := "modeling error: " + o.Msg
	if len(o.Members) > 0 {
		l += io.Sf(" (members: %s)", strings.Join(o.Members, ", "))
	}
	if len(o.Nodes) > 0 {
		l += io.Sf(" (nodes: %s)", strings.Join(o.Nodes, ", "))
	}
	return l
}

// DofRef identifies one degree of freedom of a node
type DofRef struct {
	Node string // node name
	Dof  string // one of DofKeys
}

func (o DofRef) String() string { return o.Node + ":" + o.Dof }

// InstabilityError reports a singular reduced stiffness matrix
type InstabilityError struct {
	Dofs []DofRef // DOFs where a zero pivot was found
}

func (o *InstabilityError) Error() string {
	keys := make([]string, len(o.Dofs))
	for i, d := range o.Dofs {
		keys[i] = d.String()
	}
	return io.Sf("structure is unstable: singular stiffness at %d DOF(s): %s", len(o.Dofs), strings.Join(keys, " "))
}

// Nodes returns the distinct nodes implicated in the instability
func (o *InstabilityError) Nodes() (nodes []string) {
	seen := make(map[string]bool)
	for _, d := range o.Dofs {
		if !seen[d.Node] {
			seen[d.Node] = true
			nodes = append(nodes, d.Node)
		}
	}
	return
}

// StaticsWarning reports a global equilibrium residual above tolerance.
// It is not fatal: results are returned alongside it
type StaticsWarning struct {
	Force  [3]float64 // residual force: applied loads + reactions
	Moment [3]float64 // residual moment about the origin
	Scale  float64    // load magnitude used to normalise the residual
	Tol    float64    // relative tolerance
}

func (o *StaticsWarning) Error() string {
	return io.Sf("statics check failed: residual force = %v, residual moment = %v (scale = %g, tol = %g)", o.Force, o.Moment, o.Scale, o.Tol)
}

// ConfigurationError reports an invalid option
type ConfigurationError struct {
	Option string // option name, as in the JSON key
	Msg    string // description
}

func (o *ConfigurationError) Error() string {
	return io.Sf("invalid option %q: %s", o.Option, o.Msg)
}
