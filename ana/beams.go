// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

// SimpleBeamUDL computes the solution of a simply supported beam under a uniformly distributed load
//
//        q (downwards)
//     ↓  ↓  ↓  ↓  ↓  ↓  ↓  ↓
//     o-----------------------o    deflection v(x) and moment M(x) positive downwards/sagging
//     △                       ○
//     |<--------- L --------->|
//
type SimpleBeamUDL struct {
	L  float64 // span
	EI float64 // flexural stiffness
	Q  float64 // load intensity (positive downwards)
}

// Init initialises this structure
func (o *SimpleBeamUDL) Init(L, EI, q float64) {
	o.L, o.EI, o.Q = L, EI, q
}

// Deflection returns the deflection at x
func (o *SimpleBeamUDL) Deflection(x float64) float64 {
	L := o.L
	return o.Q * x * (L*L*L - 2.0*L*x*x + x*x*x) / (24.0 * o.EI)
}

// MaxDeflection returns the deflection at midspan: 5qL⁴/384EI
func (o *SimpleBeamUDL) MaxDeflection() float64 {
	L2 := o.L * o.L
	return 5.0 * o.Q * L2 * L2 / (384.0 * o.EI)
}

// Rotation returns the slope of the deflected shape at x
func (o *SimpleBeamUDL) Rotation(x float64) float64 {
	L := o.L
	return o.Q * (L*L*L - 6.0*L*x*x + 4.0*x*x*x) / (24.0 * o.EI)
}

// Moment returns the bending moment at x
func (o *SimpleBeamUDL) Moment(x float64) float64 {
	return o.Q * x * (o.L - x) / 2.0
}

// Shear returns the shear force at x
func (o *SimpleBeamUDL) Shear(x float64) float64 {
	return o.Q * (o.L/2.0 - x)
}

// Reaction returns the vertical reaction at each support
func (o *SimpleBeamUDL) Reaction() float64 {
	return o.Q * o.L / 2.0
}

// Cantilever computes the solution of a cantilever with a tip load and/or a uniformly distributed load
//
//                      P         x: from the clamped end
//     ↓  ↓  ↓  ↓  ↓  ↓ ↓ q       deflection v(x) positive in the direction of the loads
//   ▨o-----------------o
//   ▨|<------ L ------>|
//
type Cantilever struct {
	L  float64 // length
	EI float64 // flexural stiffness
	P  float64 // tip load
	Q  float64 // distributed load intensity
}

// Init initialises this structure
func (o *Cantilever) Init(L, EI, P, q float64) {
	o.L, o.EI, o.P, o.Q = L, EI, P, q
}

// Deflection returns the deflection at x
func (o *Cantilever) Deflection(x float64) float64 {
	L := o.L
	vP := o.P * x * x * (3.0*L - x) / 6.0
	vq := o.Q * x * x * (6.0*L*L - 4.0*L*x + x*x) / 24.0
	return (vP + vq) / o.EI
}

// Rotation returns the slope of the deflected shape at x
func (o *Cantilever) Rotation(x float64) float64 {
	L := o.L
	θP := o.P * x * (2.0*L - x) / 2.0
	θq := o.Q * x * (3.0*L*L - 3.0*L*x + x*x) / 6.0
	return (θP + θq) / o.EI
}

// Moment returns the bending moment at x (hogging: negative)
func (o *Cantilever) Moment(x float64) float64 {
	a := o.L - x
	return -o.P*a - o.Q*a*a/2.0
}

// Reaction returns the force and moment magnitudes at the clamped end
func (o *Cantilever) Reaction() (F, M float64) {
	return o.P + o.Q*o.L, o.P*o.L + o.Q*o.L*o.L/2.0
}

// ProppedCantilever computes the solution of a beam clamped at x=0 and simply supported at x=L
// under a uniformly distributed load
//
//     ↓  ↓  ↓  ↓  ↓  ↓  ↓  ↓ q
//   ▨o-----------------------o
//   ▨|<--------- L --------->○
//
type ProppedCantilever struct {
	L  float64 // span
	EI float64 // flexural stiffness
	Q  float64 // load intensity
}

// Init initialises this structure
func (o *ProppedCantilever) Init(L, EI, q float64) {
	o.L, o.EI, o.Q = L, EI, q
}

// Deflection returns the deflection at x
func (o *ProppedCantilever) Deflection(x float64) float64 {
	L := o.L
	return o.Q * x * x * (3.0*L*L - 5.0*L*x + 2.0*x*x) / (48.0 * o.EI)
}

// Moment returns the bending moment at x (sagging: positive)
func (o *ProppedCantilever) Moment(x float64) float64 {
	R := o.PropReaction()
	return R*(o.L-x) - o.Q*(o.L-x)*(o.L-x)/2.0
}

// FixedMoment returns the magnitude of the moment at the clamped end: qL²/8
func (o *ProppedCantilever) FixedMoment() float64 {
	return o.Q * o.L * o.L / 8.0
}

// PropReaction returns the reaction at the simple support: 3qL/8
func (o *ProppedCantilever) PropReaction() float64 {
	return 3.0 * o.Q * o.L / 8.0
}

// FixedBeamUDL returns the end moments magnitude qL²/12 and midspan deflection qL⁴/384EI of a
// beam clamped at both ends under a uniformly distributed load
func FixedBeamUDL(L, EI, q float64) (Mend, vmid float64) {
	L2 := L * L
	return q * L2 / 12.0, q * L2 * L2 / (384.0 * EI)
}
