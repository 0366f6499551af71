// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsol implements a direct solver for symmetric stiffness matrices stored in skyline format
package linsol

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/exp/constraints"
)

// SingularError reports equations with a zero, negative or NaN pivot
type SingularError struct {
	Eqs []int // equation numbers with singular pivots
}

func (o *SingularError) Error() string {
	return io.Sf("matrix is singular: zero pivot at %d equation(s): %v", len(o.Eqs), o.Eqs)
}

// Skyline holds the upper triangle of a symmetric matrix stored by columns from the first
// nonzero row down to the diagonal
type Skyline struct {
	N   int       // dimension
	Top []int     // row of the first stored entry of each column
	Ptr []int     // position in A of the first stored entry of each column; len(Ptr) == N+1
	A   []float64 // stored entries. After Factor: unit upper factor Lᵀ and the diagonal D

	// auxiliary
	factored bool
}

// NewSkyline allocates a skyline matrix given the first nonzero row of each column
func NewSkyline(top []int) (o *Skyline) {
	o = new(Skyline)
	o.N = len(top)
	o.Top = make([]int, o.N)
	o.Ptr = make([]int, o.N+1)
	for j, t := range top {
		if t < 0 || t > j {
			chk.Panic("NewSkyline: first row of column %d must be in [0,%d]. %d is invalid", j, j, t)
		}
		o.Top[j] = t
		o.Ptr[j+1] = o.Ptr[j] + j - t + 1
	}
	o.A = make([]float64, o.Ptr[o.N])
	return
}

// Add adds v to entry (i,j) of the upper triangle; i ≤ j. Entries above the profile must be zero
func (o *Skyline) Add(i, j int, v float64) {
	if i > j {
		i, j = j, i
	}
	if i < o.Top[j] {
		if v != 0 {
			chk.Panic("Skyline.Add: entry (%d,%d) is outside the profile", i, j)
		}
		return
	}
	o.A[o.Ptr[j]+i-o.Top[j]] += v
}

// Start zeroes all stored entries so that the matrix can be assembled again
func (o *Skyline) Start() {
	for k := range o.A {
		o.A[k] = 0
	}
	o.factored = false
}

// Get returns entry (i,j)
func (o *Skyline) Get(i, j int) float64 {
	if i > j {
		i, j = j, i
	}
	if i < o.Top[j] {
		return 0
	}
	return o.A[o.Ptr[j]+i-o.Top[j]]
}

// Factor computes the LDLᵀ factorization in place
//  Note: a pivot d_j ≤ pivTol⋅|a_jj| (original diagonal) or a NaN pivot marks equation j as singular. The
//        equation is then treated as restrained so that all singular equations are found.
func (o *Skyline) Factor(pivTol float64) (err error) {
	if o.factored {
		return chk.Err("Skyline.Factor: matrix is already factorised")
	}
	var singular []int
	for j := 0; j < o.N; j++ {
		tj, pj := o.Top[j], o.Ptr[j]
		colj := o.A[pj : pj+j-tj+1] // rows tj..j

		// g_ij = a_ij - Σ l_ki g_kj
		for i := tj + 1; i < j; i++ {
			ti, pi := o.Top[i], o.Ptr[i]
			k0 := max(ti, tj)
			if k0 < i {
				coli := o.A[pi+k0-ti : pi+i-ti]
				colj[i-tj] -= dot(coli, colj[k0-tj:i-tj])
			}
		}

		// l_ij = g_ij / d_i and d_j = a_jj - Σ l_ij g_ij
		ajj := colj[j-tj]
		d := ajj
		for i := tj; i < j; i++ {
			g := colj[i-tj]
			l := g / o.A[o.Ptr[i]+i-o.Top[i]]
			d -= l * g
			colj[i-tj] = l
		}

		// check pivot. NaN pivots are singular
		if !(d > pivTol*math.Abs(ajj)) || ajj == 0 {
			singular = append(singular, j)
			d = 1e20
			if big := math.Abs(ajj); big > 1 && !math.IsInf(big, 0) {
				d *= big
			}
		}
		colj[j-tj] = d
	}
	o.factored = true
	if len(singular) > 0 {
		return &SingularError{singular}
	}
	return
}

// SolveInPlace solves A⋅x = b with the factorised matrix; b is replaced by x
func (o *Skyline) SolveInPlace(b []float64) {
	if !o.factored {
		chk.Panic("Skyline.SolveInPlace: matrix must be factorised first")
	}

	// forward: L⋅y = b
	for j := 0; j < o.N; j++ {
		tj, pj := o.Top[j], o.Ptr[j]
		if tj < j {
			b[j] -= dot(o.A[pj:pj+j-tj], b[tj:j])
		}
	}

	// diagonal: D⋅z = y
	for j := 0; j < o.N; j++ {
		b[j] /= o.A[o.Ptr[j]+j-o.Top[j]]
	}

	// backward: Lᵀ⋅x = z
	for j := o.N - 1; j > 0; j-- {
		tj, pj := o.Top[j], o.Ptr[j]
		for i := tj; i < j; i++ {
			b[i] -= o.A[pj+i-tj] * b[j]
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// dot returns the inner product of two vectors of the same length
func dot[T constraints.Float](a, b []T) (res T) {
	for i := range a {
		res += a[i] * b[i]
	}
	return
}
