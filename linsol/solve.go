// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// DefaultPivotTol is the relative pivot tolerance used by Solve
const DefaultPivotTol = 1e-11

// Solve solves K⋅D = F for the free DOFs of a dense matrix, with zero displacements at the fixed
// ones. Large structures should assemble a System from element matrices instead
//  Output:
//   D -- displacements of all DOFs
//   R -- reactions K⋅D - F at fixed DOFs; zero at free ones
//  Note: a singular reduced matrix gives a *SingularError holding global DOF numbers
func Solve(K *la.Matrix, F []float64, fixed []bool) (D, R []float64, err error) {
	return SolveTol(K, F, fixed, DefaultPivotTol)
}

// SolveTol is like Solve with a given relative pivot tolerance
func SolveTol(K *la.Matrix, F []float64, fixed []bool, pivTol float64) (D, R []float64, err error) {

	// check
	n := len(F)
	if K.M != n || K.N != n || len(fixed) != n {
		return nil, nil, chk.Err("Solve: dimensions are incompatible. K is %d×%d, len(F)=%d, len(fixed)=%d", K.M, K.N, n, len(fixed))
	}

	// each nonzero of the upper triangle connects two DOFs
	var pairs [][]int
	for j := 0; j < n; j++ {
		for i := 0; i < j; i++ {
			if K.Get(i, j) != 0 {
				pairs = append(pairs, []int{i, j})
			}
		}
	}

	// assemble and solve
	sys := NewSystem(fixed, pairs)
	for j, jd := range sys.Eq2dof {
		for i := sys.A.Top[j]; i <= j; i++ {
			sys.A.Add(i, j, K.Get(sys.Eq2dof[i], jd))
		}
	}
	copy(sys.F, F)
	D, err = sys.Solve(pivTol)
	if err != nil {
		return
	}

	// reactions
	R = make([]float64, n)
	for i := 0; i < n; i++ {
		if !fixed[i] {
			continue
		}
		for j := 0; j < n; j++ {
			R[i] += K.Get(i, j) * D[j]
		}
		R[i] -= F[i]
	}
	return
}
