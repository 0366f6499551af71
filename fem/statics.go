// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/goframe/geo"
	"github.com/cpmech/goframe/inp"
)

// Statics holds the global equilibrium balance about the origin
type Statics struct {
	LoadF  [3]float64 // resultant of applied forces
	LoadM  [3]float64 // resultant of applied moments
	ReactF [3]float64 // resultant of reaction forces
	ReactM [3]float64 // resultant of reaction moments
	ScaleF float64    // sum of magnitudes of all force contributions
	ScaleM float64    // sum of magnitudes of all moment contributions
}

// Residual returns the residual force and moment: loads + reactions
func (o *Statics) Residual() (F, M [3]float64) {
	return geo.Add(o.LoadF, o.ReactF), geo.Add(o.LoadM, o.ReactM)
}

// Check returns a *inp.StaticsWarning if the residual exceeds tol times the load scale
func (o *Statics) Check(tol float64) *inp.StaticsWarning {
	F, M := o.Residual()
	if geo.Norm(F) <= tol*o.ScaleF && geo.Norm(M) <= tol*o.ScaleM {
		return nil
	}
	return &inp.StaticsWarning{Force: F, Moment: M, Scale: o.ScaleF, Tol: tol}
}

// CalcStatics computes the equilibrium balance from the actual applied loads (not the equivalent
// nodal loads) and the reactions of a solved domain
func (o *Domain) CalcStatics() (res *Statics) {
	res = new(Statics)
	add := func(x geo.Point, f, m [3]float64, F, M *[3]float64) {
		*F = geo.Add(*F, f)
		rxf := geo.Cross(x, f)
		*M = geo.Add(*M, geo.Add(rxf, m))
		res.ScaleF += geo.Norm(f)
		res.ScaleM += geo.Norm(rxf) + geo.Norm(m)
	}

	// nodal loads
	for _, l := range o.Mdl.NodeLoads {
		x := geo.Point(o.Mdl.Node(l.Node).Coords())
		add(x, [3]float64{l.F[0], l.F[1], l.F[2]}, [3]float64{l.F[3], l.F[4], l.F[5]}, &res.LoadF, &res.LoadM)
	}

	// member loads
	for _, e := range o.Elems {
		f, m := e.Resultant()
		res.LoadF = geo.Add(res.LoadF, f)
		res.LoadM = geo.Add(res.LoadM, m)
		res.ScaleF += geo.Norm(f)
		res.ScaleM += geo.Norm(m)
	}

	// reactions
	for _, sup := range o.Mdl.Supports {
		x := geo.Point(o.Mdl.Node(sup.Node).Coords())
		r := o.NodeReact(sup.Node)
		add(x, [3]float64{r[0], r[1], r[2]}, [3]float64{r[3], r[4], r[5]}, &res.ReactF, &res.ReactM)
	}
	return
}
