// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/goframe/fem"
	"github.com/cpmech/gosl/chk"
)

// ForceKeys holds the names of the internal forces in the order returned by fem.Result.MemberForces
var ForceKeys = [6]string{"N", "Vy", "Vz", "T", "My", "Mz"}

// Diagram holds internal forces of one member at equally spaced stations
type Diagram struct {
	Member string       `json:"member"` // member name
	L      float64      `json:"l"`      // member length
	S      []float64    `json:"s"`      // [nstations] fractions of length
	F      [][6]float64 `json:"f"`      // [nstations] internal forces in ForceKeys order
}

// Diagrams computes the internal force diagrams of all members
//  Input:
//   res       -- results
//   nstations -- number of stations per member; minimum is 2
func Diagrams(res *fem.Result, nstations int) (diags []*Diagram, err error) {
	for _, name := range res.Members {
		d := &Diagram{Member: name, L: res.MemberLength(name)}
		d.S, d.F, err = res.MemberStations(name, nstations)
		if err != nil {
			return
		}
		diags = append(diags, d)
	}
	return
}

// MaxAbs returns the largest absolute value of one internal force and the station where it occurs
func (o *Diagram) MaxAbs(key string) (val, s float64) {
	k := forceIndex(key)
	for i, f := range o.F {
		if v := math.Abs(f[k]); v > val {
			val, s = v, o.S[i]
		}
	}
	return
}

// Envelope returns the member with the largest absolute value of one internal force
func Envelope(diags []*Diagram, key string) (member string, val, s float64) {
	for _, d := range diags {
		if v, sv := d.MaxAbs(key); v > val || member == "" {
			member, val, s = d.Member, v, sv
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func forceIndex(key string) int {
	for i, k := range ForceKeys {
		if k == key {
			return i
		}
	}
	chk.Panic("internal force key %q is invalid; options are %v", key, ForceKeys)
	return -1
}

