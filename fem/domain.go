// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/cpmech/goframe/geo"
	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/goframe/linsol"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Domain holds the frame elements and equation numbers of one model in addition to the
// global system of equations and its solution
type Domain struct {

	// init: auxiliary variables
	Mdl     *inp.Model   // model; read-only during analysis
	Opts    *inp.Options // options
	ShowMsg bool         // show messages

	// nodes and elements
	Node2eq   map[string]int    // node name => first equation number; equations of a node are consecutive
	Eq2dof    []inp.DofRef      // [ny] equation number => node and DOF key
	Elems     []*Frame          // [nmembers] elements in member order
	Name2elem map[string]*Frame // member name => element

	// supports
	Sups Supports // restrained DOFs

	// dimensions
	Ny int // total number of equations: 6 × number of nodes

	// system and solution
	Sys *linsol.System // reduced stiffness matrix in skyline format and global load vector
	Fb  []float64      // [ny] global load vector: nodal loads + equivalent member loads. shares Sys.F
	D   []float64      // [ny] displacements
	R   []float64      // [ny] reactions; zero at free equations
}

// NewDomain allocates a new domain, numbers equations and allocates elements
func NewDomain(mdl *inp.Model, opts *inp.Options) (o *Domain, err error) {

	// check
	if opts == nil {
		opts = inp.NewOptions()
	}
	err = mdl.Validate()
	if err != nil {
		return
	}

	// new domain
	o = new(Domain)
	o.Mdl = mdl
	o.Opts = opts
	o.ShowMsg = opts.Verbose

	// equation numbers
	o.Ny = 6 * len(mdl.Nodes)
	o.Node2eq = make(map[string]int)
	o.Eq2dof = make([]inp.DofRef, o.Ny)
	for i, nod := range mdl.Nodes {
		o.Node2eq[nod.Name] = 6 * i
		for k, key := range inp.DofKeys {
			o.Eq2dof[6*i+k] = inp.DofRef{Node: nod.Name, Dof: key}
		}
	}

	// loads by member
	dists := make(map[string][]*inp.DistLoad)
	for _, l := range mdl.DistLoads {
		dists[l.Member] = append(dists[l.Member], l)
	}
	pts := make(map[string][]*inp.PointLoad)
	for _, l := range mdl.PointLoads {
		pts[l.Member] = append(pts[l.Member], l)
	}

	// elements
	o.Elems = make([]*Frame, len(mdl.Members))
	o.Name2elem = make(map[string]*Frame)
	for i, mem := range mdl.Members {
		xi := geo.Point(mdl.Node(mem.I).Coords())
		xj := geo.Point(mdl.Node(mem.J).Coords())
		e, err := NewFrame(i, mem, xi, xj, dists[mem.Name], pts[mem.Name])
		if err != nil {
			return nil, err
		}
		e.SetEqs(o.Node2eq[mem.I], o.Node2eq[mem.J])
		o.Elems[i] = e
		o.Name2elem[mem.Name] = e
	}

	// supports
	o.Sups.Init()
	for _, sup := range mdl.Supports {
		var keys []string
		for k, fixed := range sup.Fixed {
			if fixed {
				keys = append(keys, inp.DofKeys[k])
			}
		}
		err = o.Sups.Set(sup.Node, o.Node2eq[sup.Node], keys...)
		if err != nil {
			return nil, err
		}
	}
	o.Sups.Build(o.Ny)

	// allocate system: profile from element connectivity
	umaps := make([][]int, len(o.Elems))
	for i, e := range o.Elems {
		umaps[i] = e.Umap
	}
	o.Sys = linsol.NewSystem(o.Sups.Fixed, umaps)
	o.Fb = o.Sys.F

	// message
	if o.ShowMsg {
		io.Pf("> domain: %d nodes, %d elements, %d equations, %d restrained, %d stored entries\n", len(mdl.Nodes), len(o.Elems), o.Ny, len(o.Sups.Bcs), len(o.Sys.A.A))
	}
	return
}

// Assemble computes all element matrices and assembles the global system
//  Note: element matrices are computed concurrently by Opts.NumWorkers() goroutines;
//        assembly into Sys is sequential in member order
func (o *Domain) Assemble() (err error) {

	// compute element matrices
	errs := make([]error, len(o.Elems))
	jobs := make(chan int)
	var wg sync.WaitGroup
	nw := o.Opts.NumWorkers()
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = o.Elems[i].Compute()
			}
		}()
	}
	for i := range o.Elems {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	// assemble
	o.Sys.Start()
	for _, e := range o.Elems {
		o.Sys.AddMatrix(e.Umap, e.K)
		o.Sys.AddVector(e.Umap, e.F)
	}

	// nodal loads
	for _, l := range o.Mdl.NodeLoads {
		eq0 := o.Node2eq[l.Node]
		for k, val := range l.F {
			o.Fb[eq0+k] += val
		}
	}
	return
}

// Solve solves the global system and recovers element end forces
//  Note: a singular system gives an *inp.InstabilityError
func (o *Domain) Solve() (err error) {
	if o.Ny == 0 {
		return chk.Err("cannot solve: model has no nodes")
	}
	o.D, err = o.Sys.Solve(o.Opts.PivotTol)
	if err != nil {
		if serr, ok := err.(*linsol.SingularError); ok {
			ierr := &inp.InstabilityError{}
			for _, eq := range serr.Eqs {
				ierr.Dofs = append(ierr.Dofs, o.Eq2dof[eq])
			}
			return ierr
		}
		return
	}
	o.reactions()
	for _, e := range o.Elems {
		e.Recover(o.D)
	}
	return
}

// Dense returns the global stiffness matrix of all DOFs as a dense matrix
//  Note: only for small models; e.g. to inspect or cross-check the assembled system
func (o *Domain) Dense() *la.Matrix {
	var Kb la.Triplet
	Kb.Init(o.Ny, o.Ny, 144*len(o.Elems))
	for _, e := range o.Elems {
		for i, I := range e.Umap {
			for j, J := range e.Umap {
				if e.K[i][j] != 0 {
					Kb.Put(I, J, e.K[i][j])
				}
			}
		}
	}
	return Kb.ToDense()
}

// reactions computes R = K⋅D - F at restrained DOFs from the element contributions
func (o *Domain) reactions() {
	o.R = make([]float64, o.Ny)
	fixed := o.Sups.Fixed
	for _, e := range o.Elems {
		for i, I := range e.Umap {
			if !fixed[I] {
				continue
			}
			for j, J := range e.Umap {
				o.R[I] += e.K[i][j] * o.D[J]
			}
		}
	}
	for I, f := range fixed {
		if f {
			o.R[I] -= o.Fb[I]
		}
	}
}

// NodeDisp returns the displacements of one node
func (o *Domain) NodeDisp(node string) (u [6]float64) {
	eq0 := o.Node2eq[node]
	copy(u[:], o.D[eq0:eq0+6])
	return
}

// NodeReact returns the reactions of one node; zero at free DOFs
func (o *Domain) NodeReact(node string) (r [6]float64) {
	eq0 := o.Node2eq[node]
	copy(r[:], o.R[eq0:eq0+6])
	return
}
