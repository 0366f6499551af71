// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/cpmech/goframe/geo"
	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

// Frame represents a 3D frame member (Euler-Bernoulli, linear elastic) with end releases
//
//                y
//                ^
//                |                                  Props:        Nodes:
//                |                                   E, G, A       i and j
//               (i)-----------------------------(j)----> x         Iy, Iz, J
//               /
//              z         local x: from i to j
//                        local y, z: horizontal/vertical rule + rotation about x
//
//  DOFs in local and global systems: [ux uy uz rx ry rz]_i [ux uy uz rx ry rz]_j
//
type Frame struct {

	// basic data
	Mem *inp.Member // member data
	Id  int         // index of member in model
	Xi  geo.Point   // coordinates of i-node
	Xj  geo.Point   // coordinates of j-node
	L   float64     // length

	// stiffnesses
	EA  float64 // axial
	EIy float64 // bending about local y
	EIz float64 // bending about local z
	GJ  float64 // torsional

	// local axes: rows of global-to-local rotation matrix
	R [3][3]float64

	// loads in local system
	dist []distLoad
	pts  []pointLoad

	// matrices and vectors
	Kl0  [][]float64 // [12][12] local stiffness before condensation
	Fl0  []float64   // [12] local equivalent nodal loads before condensation
	Kl   [][]float64 // [12][12] condensed local stiffness; zero rows/columns at released DOFs
	Fl   []float64   // [12] condensed local equivalent nodal loads
	K    [][]float64 // [12][12] global stiffness
	F    []float64   // [12] global equivalent nodal loads
	Umap []int       // assembly map (element equations)

	// results
	Ul   []float64 // [12] local end displacements, including released DOFs
	Fend []float64 // [12] local end forces acting on member

	// condensation steps, in order
	cond []condStep
}

// distLoad holds a linearly varying load along one local axis
type distLoad struct {
	k      int     // local axis: 0, 1 or 2
	q1, q2 float64 // intensities at a and b
	a, b   float64 // positions along member; length units
}

// q returns the intensity at x
func (o distLoad) q(x float64) float64 {
	return o.q1 + (o.q2-o.q1)*(x-o.a)/(o.b-o.a)
}

// pointLoad holds a concentrated force (k < 3) or moment (k ≥ 3) along one local axis
type pointLoad struct {
	k int     // local component: 0..5 => Fx Fy Fz Mx My Mz
	p float64 // magnitude
	a float64 // position along member; length units
}

// condStep holds data to recover one condensed DOF
type condStep struct {
	dof int       // local DOF
	piv float64   // pivot
	row []float64 // row of stiffness at elimination time
	f   float64   // load at elimination time
}

// NewFrame returns a new frame element
//  Input:
//   id   -- index of member in model
//   mem  -- member data
//   xi   -- coordinates of i-node
//   xj   -- coordinates of j-node
//   dist -- distributed loads applied to this member
//   pts  -- point loads applied to this member
func NewFrame(id int, mem *inp.Member, xi, xj geo.Point, dist []*inp.DistLoad, pts []*inp.PointLoad) (o *Frame, err error) {

	// basic data
	o = new(Frame)
	o.Mem = mem
	o.Id = id
	o.Xi, o.Xj = xi, xj
	o.L = geo.Dist(xi, xj)
	if o.L < 1e-15 {
		return nil, &inp.ModelingError{Msg: "member has zero length", Members: []string{mem.Name}, Nodes: []string{mem.I, mem.J}}
	}

	// stiffnesses
	sec := mem.Section
	err = sec.Check()
	if err != nil {
		return nil, &inp.ModelingError{Msg: err.Error(), Members: []string{mem.Name}}
	}
	o.EA, o.EIy, o.EIz, o.GJ = sec.E*sec.A, sec.E*sec.Iy, sec.E*sec.Iz, sec.G*sec.J

	// local axes
	o.R = LocalAxes(xi, xj, mem.Rotation)

	// loads
	for _, l := range dist {
		idx, local, e := inp.LoadDir(l.Dir)
		if e != nil {
			return nil, e
		}
		a, b := l.X1*o.L, l.X2*o.L
		if local {
			o.dist = append(o.dist, distLoad{idx, l.W1, l.W2, a, b})
			continue
		}
		for k := 0; k < 3; k++ {
			if c := o.R[k][idx]; math.Abs(c) > 1e-15 {
				o.dist = append(o.dist, distLoad{k, c * l.W1, c * l.W2, a, b})
			}
		}
	}
	for _, l := range pts {
		idx, local, e := inp.LoadDir(l.Dir)
		if e != nil {
			return nil, e
		}
		a := l.X * o.L
		if local {
			o.pts = append(o.pts, pointLoad{idx, l.P, a})
			continue
		}
		m, shift := idx%3, idx-idx%3
		for k := 0; k < 3; k++ {
			if c := o.R[k][m]; math.Abs(c) > 1e-15 {
				o.pts = append(o.pts, pointLoad{shift + k, c * l.P, a})
			}
		}
	}

	// matrices and vectors
	o.Kl0 = utl.Alloc(12, 12)
	o.Kl = utl.Alloc(12, 12)
	o.K = utl.Alloc(12, 12)
	o.Fl0 = make([]float64, 12)
	o.Fl = make([]float64, 12)
	o.F = make([]float64, 12)
	o.Ul = make([]float64, 12)
	o.Fend = make([]float64, 12)
	return
}

// SetEqs sets the assembly map given the first equation of the i- and j-nodes
func (o *Frame) SetEqs(eqi, eqj int) {
	o.Umap = make([]int, 12)
	for k := 0; k < 6; k++ {
		o.Umap[k] = eqi + k
		o.Umap[6+k] = eqj + k
	}
}

// Compute computes the local and global matrices and equivalent nodal loads
func (o *Frame) Compute() (err error) {
	o.stiffness()
	o.equivLoads()
	err = o.condense()
	if err != nil {
		return
	}
	o.toGlobal()
	return
}

// Recover computes local end displacements and forces given the global displacements U
func (o *Frame) Recover(U []float64) {

	// local displacements
	for i := 0; i < 12; i++ {
		o.Ul[i] = 0
	}
	for b := 0; b < 4; b++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				o.Ul[3*b+i] += o.R[i][j] * U[o.Umap[3*b+j]]
			}
		}
	}

	// released DOFs, in reverse order of elimination
	for k := len(o.cond) - 1; k >= 0; k-- {
		c := o.cond[k]
		sum := c.f
		for j := 0; j < 12; j++ {
			if j != c.dof {
				sum -= c.row[j] * o.Ul[j]
			}
		}
		o.Ul[c.dof] = sum / c.piv
	}

	// end forces: f = Kl0⋅ul - fl0
	for i := 0; i < 12; i++ {
		o.Fend[i] = -o.Fl0[i]
		for j := 0; j < 12; j++ {
			o.Fend[i] += o.Kl0[i][j] * o.Ul[j]
		}
	}
	for i, rel := range o.Mem.Releases {
		if rel {
			o.Fend[i] = 0
		}
	}
}

// Forces returns the internal forces acting on the positive face of the cross section at x = s⋅L
//  Output: [N Vy Vz T My Mz]; N > 0 means tension
//  Note: Recover must be called first
func (o *Frame) Forces(s float64) (res [6]float64) {
	x := s * o.L
	f := o.Fend
	res[0] = -f[0]
	res[1] = -f[1]
	res[2] = -f[2]
	res[3] = -f[3]
	res[4] = -f[4] - x*f[2]
	res[5] = -f[5] + x*f[1]
	for _, d := range o.dist {
		if d.a >= x {
			continue
		}
		hi := math.Min(x, d.b)
		P := gauss3(d.a, hi, d.q)
		Pm := gauss3(d.a, hi, func(t float64) float64 { return (x - t) * d.q(t) })
		switch d.k {
		case 0:
			res[0] -= P
		case 1:
			res[1] -= P
			res[5] += Pm
		case 2:
			res[2] -= P
			res[4] -= Pm
		}
	}
	for _, p := range o.pts {
		if p.a > x {
			continue
		}
		switch p.k {
		case 0:
			res[0] -= p.p
		case 1:
			res[1] -= p.p
			res[5] += (x - p.a) * p.p
		case 2:
			res[2] -= p.p
			res[4] -= (x - p.a) * p.p
		case 3:
			res[3] -= p.p
		case 4:
			res[4] -= p.p
		case 5:
			res[5] -= p.p
		}
	}
	return
}

// Deflection returns the displacements in local axes at x = s⋅L
//  Note: Recover must be called first
func (o *Frame) Deflection(s float64) (res [3]float64) {
	x := s * o.L
	u := o.Ul
	res[0] = u[0]
	res[1] = u[1] + u[5]*x
	res[2] = u[2] - u[4]*x
	o.eachSegment(x, func(lo, hi float64) {
		res[0] += gauss3(lo, hi, func(t float64) float64 { return o.Forces(t/o.L)[0] / o.EA })
		res[1] += gauss3(lo, hi, func(t float64) float64 { return (x - t) * o.Forces(t/o.L)[5] / o.EIz })
		res[2] -= gauss3(lo, hi, func(t float64) float64 { return (x - t) * o.Forces(t/o.L)[4] / o.EIy })
	})
	return
}

// Stations returns the internal forces at n equally spaced stations
func (o *Frame) Stations(n int) (s []float64, forces [][6]float64) {
	if n < 2 {
		n = 2
	}
	s = make([]float64, n)
	forces = make([][6]float64, n)
	for i := 0; i < n; i++ {
		s[i] = float64(i) / float64(n-1)
		forces[i] = o.Forces(s[i])
	}
	return
}

// Resultant returns the resultant force and moment about the origin, in global axes, of the
// loads applied along the member
func (o *Frame) Resultant() (F, M [3]float64) {
	xhat := geo.Point(o.R[0])
	add := func(k int, val, x float64) {
		var v geo.Point
		for j := 0; j < 3; j++ {
			v[j] = o.R[k%3][j] * val
		}
		if k >= 3 {
			M = geo.Add(M, v)
			return
		}
		F = geo.Add(F, v)
		M = geo.Add(M, geo.Cross(geo.Add(o.Xi, geo.Scale(x, xhat)), v))
	}
	for _, d := range o.dist {
		gaussPoints(d.a, d.b, func(x, w float64) {
			add(d.k, w*d.q(x), x)
		})
	}
	for _, p := range o.pts {
		add(p.k, p.p, p.a)
	}
	return
}

// LocalAxes returns the rows of the global-to-local rotation matrix of a member from xi to xj
//  x: from i to j
//  vertical members (x parallel to Y): y = -X if x points up and +X if x points down
//  horizontal members (no Y component): y = Y
//  other members: y is perpendicular to x in the vertical plane containing x, pointing up
//  rotation: angle in degrees rotating y and z about x
func LocalAxes(xi, xj geo.Point, rotation float64) (R [3][3]float64) {
	x := geo.Unit(geo.Sub(xj, xi))
	var y [3]float64
	tol := 1e-12
	switch {
	case math.Abs(x[0]) < tol && math.Abs(x[2]) < tol:
		if x[1] > 0 {
			y = [3]float64{-1, 0, 0}
		} else {
			y = [3]float64{1, 0, 0}
		}
	case math.Abs(x[1]) < tol:
		y = [3]float64{0, 1, 0}
	default:
		var z [3]float64
		proj := [3]float64{x[0], 0, x[2]}
		if x[1] > 0 {
			z = geo.Unit(geo.Cross(proj, x))
		} else {
			z = geo.Unit(geo.Cross(x, proj))
		}
		y = geo.Unit(geo.Cross(z, x))
	}
	z := geo.Cross(x, y)
	if rotation != 0 {
		θ := rotation * math.Pi / 180.0
		c, s := math.Cos(θ), math.Sin(θ)
		var yr, zr [3]float64
		for i := 0; i < 3; i++ {
			yr[i] = c*y[i] + s*z[i]
			zr[i] = -s*y[i] + c*z[i]
		}
		y, z = yr, zr
	}
	R[0], R[1], R[2] = x, y, z
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// stiffness computes the local stiffness matrix
func (o *Frame) stiffness() {

	// constants
	l := o.L
	ll := l * l
	lll := l * ll
	EA, EIy, EIz, GJ := o.EA, o.EIy, o.EIz, o.GJ
	K := o.Kl0

	// upper triangle
	K[0][0] = EA / l
	K[0][6] = -EA / l

	K[1][1] = 12.0 * EIz / lll
	K[1][5] = 6.0 * EIz / ll
	K[1][7] = -12.0 * EIz / lll
	K[1][11] = 6.0 * EIz / ll

	K[2][2] = 12.0 * EIy / lll
	K[2][4] = -6.0 * EIy / ll
	K[2][8] = -12.0 * EIy / lll
	K[2][10] = -6.0 * EIy / ll

	K[3][3] = GJ / l
	K[3][9] = -GJ / l

	K[4][4] = 4.0 * EIy / l
	K[4][8] = 6.0 * EIy / ll
	K[4][10] = 2.0 * EIy / l

	K[5][5] = 4.0 * EIz / l
	K[5][7] = -6.0 * EIz / ll
	K[5][11] = 2.0 * EIz / l

	K[6][6] = EA / l

	K[7][7] = 12.0 * EIz / lll
	K[7][11] = -6.0 * EIz / ll

	K[8][8] = 12.0 * EIy / lll
	K[8][10] = 6.0 * EIy / ll

	K[9][9] = GJ / l

	K[10][10] = 4.0 * EIy / l

	K[11][11] = 4.0 * EIz / l

	// symmetry
	for i := 0; i < 12; i++ {
		for j := 0; j < i; j++ {
			K[i][j] = K[j][i]
		}
	}
}

// equivLoads computes the local equivalent nodal loads by integrating the Hermite shape functions
func (o *Frame) equivLoads() {
	l := o.L
	F := o.Fl0
	for i := range F {
		F[i] = 0
	}
	for _, d := range o.dist {
		gaussPoints(d.a, d.b, func(x, w float64) {
			val := w * d.q(x)
			N, H := shapeFuncs(x/l, l)
			switch d.k {
			case 0:
				F[0] += val * N[0]
				F[6] += val * N[1]
			case 1:
				F[1] += val * H[0]
				F[5] += val * H[1]
				F[7] += val * H[2]
				F[11] += val * H[3]
			case 2:
				F[2] += val * H[0]
				F[4] -= val * H[1]
				F[8] += val * H[2]
				F[10] -= val * H[3]
			}
		})
	}
	for _, p := range o.pts {
		N, H := shapeFuncs(p.a/l, l)
		dH := shapeDerivs(p.a/l, l)
		switch p.k {
		case 0:
			F[0] += p.p * N[0]
			F[6] += p.p * N[1]
		case 1:
			F[1] += p.p * H[0]
			F[5] += p.p * H[1]
			F[7] += p.p * H[2]
			F[11] += p.p * H[3]
		case 2:
			F[2] += p.p * H[0]
			F[4] -= p.p * H[1]
			F[8] += p.p * H[2]
			F[10] -= p.p * H[3]
		case 3:
			F[3] += p.p * N[0]
			F[9] += p.p * N[1]
		case 4:
			F[2] -= p.p * dH[0]
			F[4] += p.p * dH[1]
			F[8] -= p.p * dH[2]
			F[10] += p.p * dH[3]
		case 5:
			F[1] += p.p * dH[0]
			F[5] += p.p * dH[1]
			F[7] += p.p * dH[2]
			F[11] += p.p * dH[3]
		}
	}
}

// condense eliminates released DOFs one at a time by static condensation
func (o *Frame) condense() (err error) {

	// copy
	K, F := o.Kl, o.Fl
	scale := 0.0
	for i := 0; i < 12; i++ {
		copy(K[i], o.Kl0[i])
		F[i] = o.Fl0[i]
		scale = math.Max(scale, math.Abs(K[i][i]))
	}
	o.cond = o.cond[:0]

	// eliminate
	for c, rel := range o.Mem.Releases {
		if !rel {
			continue
		}
		piv := K[c][c]
		if math.Abs(piv) <= 1e-12*scale {
			return &inp.ModelingError{
				Msg:     io.Sf("releases of member make it unstable at %s", inp.ReleaseKeys[c]),
				Members: []string{o.Mem.Name},
			}
		}
		row := make([]float64, 12)
		copy(row, K[c])
		o.cond = append(o.cond, condStep{c, piv, row, F[c]})
		for i := 0; i < 12; i++ {
			if i == c || K[i][c] == 0 {
				continue
			}
			r := K[i][c] / piv
			for j := 0; j < 12; j++ {
				K[i][j] -= r * K[c][j]
			}
			F[i] -= r * F[c]
		}
		for j := 0; j < 12; j++ {
			K[c][j], K[j][c] = 0, 0
		}
		F[c] = 0
	}
	return
}

// toGlobal computes K = Tᵀ⋅Kl⋅T and F = Tᵀ⋅Fl using the 3×3 blocks of T
func (o *Frame) toGlobal() {
	R := o.R
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					sum := 0.0
					for k := 0; k < 3; k++ {
						for m := 0; m < 3; m++ {
							sum += R[k][i] * o.Kl[3*a+k][3*b+m] * R[m][j]
						}
					}
					o.K[3*a+i][3*b+j] = sum
				}
			}
		}
		for i := 0; i < 3; i++ {
			o.F[3*a+i] = 0
			for k := 0; k < 3; k++ {
				o.F[3*a+i] += R[k][i] * o.Fl[3*a+k]
			}
		}
	}
}

// eachSegment calls fcn for each interval of [0,x] where loads are smooth
func (o *Frame) eachSegment(x float64, fcn func(lo, hi float64)) {
	if x <= 0 {
		return
	}
	brk := []float64{0, x}
	for _, d := range o.dist {
		brk = append(brk, d.a, d.b)
	}
	for _, p := range o.pts {
		brk = append(brk, p.a)
	}
	sort.Float64s(brk)
	lo := 0.0
	for _, b := range brk {
		if b <= lo || b > x {
			continue
		}
		fcn(lo, b)
		lo = b
	}
}

// shapeFuncs returns the linear (N) and Hermite (H) shape functions at ξ = x/L
func shapeFuncs(ξ, l float64) (N [2]float64, H [4]float64) {
	ξ2 := ξ * ξ
	ξ3 := ξ2 * ξ
	N = [2]float64{1 - ξ, ξ}
	H = [4]float64{1 - 3*ξ2 + 2*ξ3, l * (ξ - 2*ξ2 + ξ3), 3*ξ2 - 2*ξ3, l * (ξ3 - ξ2)}
	return
}

// shapeDerivs returns the derivatives with respect to x of the Hermite shape functions
func shapeDerivs(ξ, l float64) (dH [4]float64) {
	ξ2 := ξ * ξ
	dH = [4]float64{(6*ξ2 - 6*ξ) / l, 1 - 4*ξ + 3*ξ2, (6*ξ - 6*ξ2) / l, 3*ξ2 - 2*ξ}
	return
}

// gauss3 integrates f over [a,b] with 3 Gauss points; exact for polynomials up to degree 5
func gauss3(a, b float64, f func(x float64) float64) (res float64) {
	gaussPoints(a, b, func(x, w float64) { res += w * f(x) })
	return
}

// gaussPoints calls fcn with the 3 Gauss points and weights mapped to [a,b]
func gaussPoints(a, b float64, fcn func(x, w float64)) {
	if b <= a {
		return
	}
	h, c := (b-a)/2, (b+a)/2
	for i, ξ := range gaussXi {
		fcn(c+h*ξ, h*gaussWi[i])
	}
}

// gaussXi and gaussWi hold the 3-point Gauss-Legendre rule on [-1,1]
var gaussXi, gaussWi = num.GaussLegendreXW(-1, 1, 3)
