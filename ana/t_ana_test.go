// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_sections01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sections01. typical cross-sections")

	var rect CrossSection
	err := rect.Init("rectangle", 4, 6, 0, 0, 0)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	io.Pforan("4 x 6 rectangle: %+v\n", rect)
	chk.Float64(tst, "rect: A ", 1e-17, rect.A, 24.0)
	chk.Float64(tst, "rect: Iz", 1e-17, rect.Iz, 72.0)
	chk.Float64(tst, "rect: Iy", 1e-17, rect.Iy, 32.0)
	chk.Float64(tst, "rect: J ", 1e-9, rect.J, 75.1249382716)
	chk.Float64(tst, "rect: Asy", 1e-15, rect.Asy, 20.0)

	// rotated rectangle has the same torsional constant
	var rot CrossSection
	rot.Init("rectangle", 6, 4, 0, 0, 0)
	chk.Float64(tst, "rot: J ", 1e-12, rot.J, rect.J)
	chk.Float64(tst, "rot: Iz", 1e-17, rot.Iz, 32.0)

	var ibeam CrossSection
	ibeam.Init("I-beam", 4, 6, 0.5, 0.3, 0)
	chk.Float64(tst, "I-beam: A ", 1e-15, ibeam.A, 5.5)
	chk.Float64(tst, "I-beam: Iz", 1e-10, ibeam.Iz, 33.4583333333)
	chk.Float64(tst, "I-beam: Iy", 1e-10, ibeam.Iy, 5.3445833333)
	chk.Float64(tst, "I-beam: J ", 1e-10, ibeam.J, 0.3783333333)

	var circle CrossSection
	circle.Init("circle", 0, 0, 0, 0, 1)
	chk.Float64(tst, "circle: A ", 1e-15, circle.A, math.Pi)
	chk.Float64(tst, "circle: Iz", 1e-10, circle.Iz, 0.7853981634)
	chk.Float64(tst, "circle: J ", 1e-10, circle.J, 1.5707963268)

	// errors
	if err = circle.Init("hexagon", 1, 1, 0, 0, 0); err == nil {
		tst.Errorf("unknown cross-section type should fail")
	}
	if err = rect.Init("rectangle", 0, 1, 0, 0, 0); err == nil {
		tst.Errorf("zero width should fail")
	}
}

func Test_materials01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("materials01. reference materials and frame sections")

	var mat Material
	err := mat.Init("steel", "kPa")
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.Float64(tst, "E", 1e-6, mat.E, 2e8)
	chk.Float64(tst, "G", 1e-6, mat.G, 2e8/2.64)

	var cs CrossSection
	cs.Init("rectangle", 0.2, 0.3, 0, 0, 0)
	sec := mat.Section("R20x30", &cs)
	io.Pforan("sec = %+v\n", sec)
	if sec.Name != "R20x30" {
		tst.Errorf("section name is incorrect: %q", sec.Name)
	}
	chk.Float64(tst, "A", 1e-15, sec.A, 0.06)
	chk.Float64(tst, "Iz", 1e-15, sec.Iz, 0.2*0.027/12.0)
	if err = sec.Check(); err != nil {
		tst.Errorf("section should be valid:\n%v", err)
	}

	if err = mat.Init("steel", "psi"); err == nil {
		tst.Errorf("unknown unit should fail")
	}
	if err = mat.Init("unobtainium", "MPa"); err == nil {
		tst.Errorf("unknown material should fail")
	}
}

func Test_beams01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beams01. closed-form beam solutions")

	L, EI, q := 10.0, 2e4, 3.0

	var ss SimpleBeamUDL
	ss.Init(L, EI, q)
	chk.Float64(tst, "v(L/2)", 1e-15, ss.Deflection(L/2), ss.MaxDeflection())
	chk.Float64(tst, "vmax", 1e-15, ss.MaxDeflection(), 5.0*q*1e4/(384.0*EI))
	chk.Float64(tst, "M(L/2)", 1e-14, ss.Moment(L/2), q*L*L/8.0)
	chk.Float64(tst, "θ(L/2)", 1e-15, ss.Rotation(L/2), 0)
	chk.Float64(tst, "V(0)", 1e-15, ss.Shear(0), ss.Reaction())

	var cb Cantilever
	cb.Init(L, EI, 2.0, 0)
	chk.Float64(tst, "tip v (P)", 1e-15, cb.Deflection(L), 2.0*L*L*L/(3.0*EI))
	chk.Float64(tst, "tip θ (P)", 1e-15, cb.Rotation(L), 2.0*L*L/(2.0*EI))
	cb.Init(L, EI, 0, q)
	chk.Float64(tst, "tip v (q)", 1e-14, cb.Deflection(L), q*1e4/(8.0*EI))
	chk.Float64(tst, "tip θ (q)", 1e-15, cb.Rotation(L), q*L*L*L/(6.0*EI))
	F, M := cb.Reaction()
	chk.Float64(tst, "F", 1e-15, F, q*L)
	chk.Float64(tst, "M", 1e-15, M, -cb.Moment(0))

	var pc ProppedCantilever
	pc.Init(L, EI, q)
	chk.Float64(tst, "v(0)", 1e-15, pc.Deflection(0), 0)
	chk.Float64(tst, "v(L)", 1e-15, pc.Deflection(L), 0)
	chk.Float64(tst, "M(0)", 1e-13, pc.Moment(0), -pc.FixedMoment())
	chk.Float64(tst, "M(L)", 1e-15, pc.Moment(L), 0)

	Mend, vmid := FixedBeamUDL(L, EI, q)
	chk.Float64(tst, "Mend", 1e-14, Mend, 25.0)
	chk.Float64(tst, "vmid", 1e-15, vmid, q*1e4/(384.0*EI))
}
