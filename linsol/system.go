// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"github.com/cpmech/gosl/chk"
)

// System holds the reduced system K_ff⋅D_f = F_f of a structure whose restrained DOFs are
// eliminated. K_ff is stored in skyline format with the profile given by the DOF maps of the
// elements; thus only the entries within the envelope of the connectivity are allocated
type System struct {
	N      int       // total number of DOFs
	Fixed  []bool    // [N] restrained DOFs
	Dof2eq []int     // [N] DOF => equation of reduced system; -1 if restrained
	Eq2dof []int     // [neq] equation of reduced system => DOF
	A      *Skyline  // [neq×neq] reduced matrix K_ff
	F      []float64 // [N] right-hand side of all DOFs
}

// NewSystem allocates the reduced system
//  Input:
//   fixed -- [N] restrained DOFs
//   umaps -- DOF numbers of each element; e.g. the 12 DOFs of a frame member
func NewSystem(fixed []bool, umaps [][]int) (o *System) {

	// equations
	o = new(System)
	o.N = len(fixed)
	o.Fixed = fixed
	o.Dof2eq = make([]int, o.N)
	for i, f := range fixed {
		if f {
			o.Dof2eq[i] = -1
			continue
		}
		o.Dof2eq[i] = len(o.Eq2dof)
		o.Eq2dof = append(o.Eq2dof, i)
	}
	neq := len(o.Eq2dof)

	// profile: first row of each column is the lowest equation connected to it
	top := make([]int, neq)
	for j := range top {
		top[j] = j
	}
	for _, umap := range umaps {
		low := neq
		for _, I := range umap {
			if I < 0 || I >= o.N {
				chk.Panic("NewSystem: DOF %d is outside [0,%d)", I, o.N)
			}
			if eq := o.Dof2eq[I]; eq >= 0 && eq < low {
				low = eq
			}
		}
		for _, I := range umap {
			if eq := o.Dof2eq[I]; eq >= 0 && low < top[eq] {
				top[eq] = low
			}
		}
	}
	o.A = NewSkyline(top)
	o.F = make([]float64, o.N)
	return
}

// Neq returns the number of equations of the reduced system
func (o *System) Neq() int { return len(o.Eq2dof) }

// Start zeroes the matrix and the right-hand side
func (o *System) Start() {
	o.A.Start()
	for i := range o.F {
		o.F[i] = 0
	}
}

// AddMatrix adds the free-free block of a symmetric element matrix K with DOF numbers umap
func (o *System) AddMatrix(umap []int, K [][]float64) {
	for i, I := range umap {
		ei := o.Dof2eq[I]
		if ei < 0 {
			continue
		}
		for j, J := range umap {
			if ej := o.Dof2eq[J]; ej >= ei {
				o.A.Add(ei, ej, K[i][j])
			}
		}
	}
}

// AddVector adds an element vector F with DOF numbers umap to the right-hand side
func (o *System) AddVector(umap []int, F []float64) {
	for i, I := range umap {
		o.F[I] += F[i]
	}
}

// Solve factorises the reduced matrix and computes the displacements
//  Output:
//   D -- [N] displacements; zero at restrained DOFs
//  Note: a singular matrix gives a *SingularError holding DOF numbers
func (o *System) Solve(pivTol float64) (D []float64, err error) {
	err = o.A.Factor(pivTol)
	if err != nil {
		if serr, ok := err.(*SingularError); ok {
			for k, eq := range serr.Eqs {
				serr.Eqs[k] = o.Eq2dof[eq]
			}
		}
		return
	}
	x := make([]float64, len(o.Eq2dof))
	for j, jd := range o.Eq2dof {
		x[j] = o.F[jd]
	}
	o.A.SolveInPlace(x)
	D = make([]float64, o.N)
	for j, jd := range o.Eq2dof {
		D[jd] = x[j]
	}
	return
}
