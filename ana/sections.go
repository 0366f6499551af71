// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/chk"
)

// CrossSection computes cross-sectional moments of inertia and other properties
//
//                         y (local)
//                         ^
//   typ : rectangle       |                  tw
//         circle          |              -->| |<--
//         I-beam     +----|----+    ___     | |     ___
//                    |    |    |  tf |   ########    |
//                    |    |    |    ---  ########    |
//                    |    o--------> z      ##       |
//                    |         |            ##       | h = hei
//                    |         |    ---  ########    |
//                    +---------+  tf_|_  ########   ---
//                     b = wid             b = wid
//
//   Iz: about local z (major axis: bending in the local x-y plane)
//   Iy: about local y (minor axis: bending in the local x-z plane)
//
type CrossSection struct {

	// input
	Type string  // "rectangle", "I-beam" or "circle"
	Wid  float64 // width (b) if not circular
	Hei  float64 // height (h) if not circular
	Tf   float64 // flange thickness if I-beam
	Tw   float64 // web thickness if I-beam
	R    float64 // radius if circular

	// derived
	A   float64 // cross-sectional area
	Iz  float64 // major moment of inertia
	Iy  float64 // minor moment of inertia
	J   float64 // torsional constant
	Asy float64 // shear area along local y
	Asz float64 // shear area along local z
}

// Init initialises structure and computes moment of inertia
func (o *CrossSection) Init(typ string, wid, hei, tf, tw, rad float64) (err error) {

	// input data
	o.Type, o.Wid, o.Hei, o.Tf, o.Tw, o.R = typ, wid, hei, tf, tw, rad

	// derived
	switch typ {
	case "rectangle":
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		o.A = b * h
		o.Iz = b * h3 / 12.0
		o.Iy = b3 * h / 12.0
		if b > h {
			b, h = h, b
			b3 = b * b * b
			h3 = h * h * h
		}
		o.J = h * b3 * (1.0/3.0 - 0.21*(b/h)*(1.0-b*b3/(12.0*h*h3))) // approximate
		o.Asy = 5.0 * o.A / 6.0
		o.Asz = o.Asy

	case "I-beam":
		b, h := wid, hei
		b3 := b * b * b
		h3 := h * h * h
		tf3 := tf * tf * tf
		tw3 := tw * tw * tw
		l := h - 2.0*tf
		l3 := l * l * l
		o.A = b*h - l*(b-tw)
		o.Iz = b*h3/12.0 - (b-tw)*l3/12.0
		o.Iy = l*tw3/12.0 + tf*b3/6.0
		o.J = (2.0*b*tf3 + l*tw3) / 3.0
		o.Asy = h * tw
		o.Asz = 5.0 * (2.0 * b * tf) / 6.0

	case "circle":
		r2 := rad * rad
		o.A = math.Pi * r2
		o.Iz = math.Pi * r2 * r2 / 4.0
		o.Iy = o.Iz
		o.J = o.Iz + o.Iy
		o.Asy = 0.9 * o.A
		o.Asz = o.Asy

	default:
		return chk.Err("cross-section type %q is unavailable", typ)
	}
	if o.A <= 0 || o.Iz <= 0 || o.Iy <= 0 {
		return chk.Err("dimensions of %s cross-section give non-positive properties: A=%g, Iz=%g, Iy=%g", typ, o.A, o.Iz, o.Iy)
	}
	return
}

// Material holds parameters of some reference materials
type Material struct {

	// input
	Type     string // type of material; e.g. "steel"
	UnitPres string // unit of pressure

	// derived
	Desc string  // description
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
	G    float64 // shear modulus
}

// Init initialises material paramters
//  Input:
//   unitPres:  "kPa", "MPa", "GPa" or "ksi"
func (o *Material) Init(typ, unitPres string) (err error) {

	// material data
	o.Type = typ
	switch typ {
	case "steel":
		o.Desc = "Steel: structural A36"
		o.E = 200000.0 // [MPa]
		o.Nu = 0.32    // [-]
	case "aluminum":
		o.Desc = "Aluminum: 2014-T6"
		o.E = 73100.0 // [MPa]
		o.Nu = 0.35   // [-]
	case "concrete-low":
		o.Desc = "Concrete: low strength"
		o.E = 22100.0 // [MPa]
		o.Nu = 0.15   // [-]
	case "concrete-high":
		o.Desc = "Concrete: high strength"
		o.E = 30000.0 // [MPa]
		o.Nu = 0.15   // [-]
	case "wood-douglas-fir":
		o.Desc = "Wood: Douglas-fir"
		o.E = 13100.0 // [MPa]
		o.Nu = 0.29   // [-]
	default:
		return chk.Err("material type %q is unavailable", typ)
	}

	// set unit
	o.UnitPres = unitPres
	switch unitPres {
	case "kPa":
		o.E *= 1e3
	case "MPa":
	case "GPa":
		o.E *= 1e-3
	case "ksi":
		o.E /= 6.894757
	default:
		return chk.Err("unit of pressure %q is invalid", unitPres)
	}

	// derived quantity
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}

// Section returns the frame section with the given name made of this material
func (o *Material) Section(name string, cs *CrossSection) inp.Section {
	return inp.Section{
		Name: name,
		E:    o.E,
		G:    o.G,
		A:    cs.A,
		Iy:   cs.Iy,
		Iz:   cs.Iz,
		J:    cs.J,
		Asy:  cs.Asy,
		Asz:  cs.Asz,
	}
}
