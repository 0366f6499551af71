// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// dense returns a dense matrix from rows
func dense(rows [][]float64) *la.Matrix {
	n := len(rows)
	var t la.Triplet
	t.Init(n, n, n*n)
	for i, row := range rows {
		for j, v := range row {
			if v != 0 {
				t.Put(i, j, v)
			}
		}
	}
	return t.ToDense()
}

// matvec returns K⋅x
func matvec(K *la.Matrix, x []float64) (y []float64) {
	y = make([]float64, K.M)
	for i := 0; i < K.M; i++ {
		for j := 0; j < K.N; j++ {
			y[i] += K.Get(i, j) * x[j]
		}
	}
	return
}

func Test_sky01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sky01. small system")

	K := dense([][]float64{
		{4, -2, 0},
		{-2, 4, -2},
		{0, -2, 4},
	})
	F := []float64{0, 0, 8}
	D, R, err := Solve(K, F, []bool{false, false, false})
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	io.Pforan("D = %v\n", D)
	chk.Array(tst, "D", 1e-14, D, []float64{1, 2, 3})
	chk.Array(tst, "R", 1e-17, R, []float64{0, 0, 0})
}

func Test_sky02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sky02. restrained DOFs and reactions")

	K := dense([][]float64{
		{1, -1, 0},
		{-1, 2, -1},
		{0, -1, 1},
	})
	F := []float64{0, 0, 1}
	D, R, err := Solve(K, F, []bool{true, false, false})
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "D", 1e-14, D, []float64{0, 1, 2})
	chk.Array(tst, "R", 1e-14, R, []float64{-1, 0, 0})
}

func Test_sky03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sky03. singular matrices")

	K := dense([][]float64{
		{1, -1, 0},
		{-1, 2, -1},
		{0, -1, 1},
	})
	_, _, err := Solve(K, []float64{0, 0, 1}, []bool{false, false, false})
	io.Pforan("err = %v\n", err)
	serr, ok := err.(*SingularError)
	if !ok {
		tst.Errorf("Solve should return a SingularError")
		return
	}
	chk.Ints(tst, "singular equations", serr.Eqs, []int{2})

	// two floating springs; the first DOF of the second one is restrained
	K = dense([][]float64{
		{1, -1, 0, 0, 0},
		{-1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 1, -1},
		{0, 0, 0, -1, 1},
	})
	_, _, err = Solve(K, []float64{0, 0, 0, 0, 0}, []bool{false, false, true, false, false})
	io.Pforan("err = %v\n", err)
	serr, ok = err.(*SingularError)
	if !ok {
		tst.Errorf("Solve should return a SingularError")
		return
	}
	chk.Ints(tst, "singular DOFs", serr.Eqs, []int{1, 4})
}

func Test_sky04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sky04. profile with gaps against dense product")

	K := dense([][]float64{
		{10, -1, 0, 0, 0, 2},
		{-1, 8, -2, 0, 0, 0},
		{0, -2, 9, 0, -1, 0},
		{0, 0, 0, 5, 0, -1},
		{0, 0, -1, 0, 7, -3},
		{2, 0, 0, -1, -3, 12},
	})
	F := []float64{1, -2, 3, 0.5, -1, 4}
	D, _, err := Solve(K, F, make([]bool, 6))
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	io.Pforan("D = %v\n", D)
	chk.Array(tst, "K⋅D", 1e-13, matvec(K, D), F)

	// profile
	top := []int{0, 0, 1, 3, 2, 0}
	A := NewSkyline(top)
	chk.Int(tst, "number of stored entries", len(A.A), 1+2+2+1+3+6)
	A.Add(5, 0, 2)
	chk.Float64(tst, "A(0,5)", 1e-17, A.Get(0, 5), 2)
	chk.Float64(tst, "A(3,0)", 1e-17, A.Get(3, 0), 0)
}

func Test_sky05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sky05. system assembled from element connectivity")

	// chain of 4 springs with stiffness k; DOF 0 is restrained
	//   0 --k-- 1 --k-- 2 --k-- 3 --k-- 4
	k := 2.0
	ke := [][]float64{{k, -k}, {-k, k}}
	umaps := [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}}
	fixed := []bool{true, false, false, false, false}
	sys := NewSystem(fixed, umaps)
	chk.Int(tst, "neq", sys.Neq(), 4)
	chk.Ints(tst, "Dof2eq", sys.Dof2eq, []int{-1, 0, 1, 2, 3})
	chk.Ints(tst, "Top", sys.A.Top, []int{0, 0, 1, 2})
	chk.Int(tst, "number of stored entries", len(sys.A.A), 1+2+2+2)

	// assemble twice to check Start
	for pass := 0; pass < 2; pass++ {
		sys.Start()
		for _, umap := range umaps {
			sys.AddMatrix(umap, ke)
		}
		sys.AddVector([]int{4}, []float64{1})
		D, err := sys.Solve(DefaultPivotTol)
		if err != nil {
			tst.Errorf("Solve failed:\n%v", err)
			return
		}
		io.Pforan("D = %v\n", D)
		chk.Array(tst, "D", 1e-14, D, []float64{0, 0.5, 1, 1.5, 2})
	}

	// same answer as the dense solver
	var t la.Triplet
	t.Init(5, 5, 16)
	for _, umap := range umaps {
		for i, I := range umap {
			for j, J := range umap {
				t.Put(I, J, ke[i][j])
			}
		}
	}
	D, R, err := Solve(t.ToDense(), []float64{0, 0, 0, 0, 1}, fixed)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "dense: D", 1e-14, D, []float64{0, 0.5, 1, 1.5, 2})
	chk.Array(tst, "dense: R", 1e-14, R, []float64{-1, 0, 0, 0, 0})

	// disconnected tail is singular
	sys = NewSystem([]bool{true, false, false}, [][]int{{0, 1}})
	sys.AddMatrix([]int{0, 1}, ke)
	_, err = sys.Solve(DefaultPivotTol)
	serr, ok := err.(*SingularError)
	if !ok {
		tst.Errorf("Solve should return a SingularError. err = %v", err)
		return
	}
	chk.Ints(tst, "singular DOFs", serr.Eqs, []int{2})
}

func Test_sky06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sky06. NaN pivots are singular")

	nan := math.NaN()
	K := dense([][]float64{
		{4, -2, 0},
		{-2, nan, -2},
		{0, -2, 4},
	})
	D, _, err := Solve(K, []float64{1, 1, 1}, []bool{false, false, false})
	io.Pforan("err = %v\n", err)
	serr, ok := err.(*SingularError)
	if !ok {
		tst.Errorf("NaN entry should give a SingularError. D = %v", D)
		return
	}
	if len(serr.Eqs) == 0 || serr.Eqs[0] != 1 {
		tst.Errorf("equation 1 must be singular: %v", serr.Eqs)
	}

	A := NewSkyline([]int{0, 0})
	A.Add(0, 0, 1)
	A.Add(0, 1, 1)
	A.Add(1, 1, math.Inf(1))
	err = A.Factor(DefaultPivotTol)
	if err == nil {
		tst.Errorf("infinite diagonal should fail")
	}
}
