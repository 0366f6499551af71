// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the linear static analysis of 3D frames
package fem

import (
	"time"

	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/goframe/repair"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a linear static analysis of a frame model
type Main struct {
	Input   *inp.Model       // model given by the user; never modified
	Model   *inp.Model       // analysed model: Input or its repaired copy
	Opts    *inp.Options     // options
	Repair  *repair.Repaired // repair results; nil if Opts.Repair is false
	Dom     *Domain          // domain
	Result  *Result          // results
	ShowMsg bool             // show messages
}

// NewMain returns a new Main structure
//  Input:
//   model -- frame model
//   opts  -- options. nil => default options
func NewMain(model *inp.Model, opts *inp.Options) (o *Main) {
	if model == nil {
		chk.Panic("NewMain: model must not be nil")
	}
	if opts == nil {
		opts = inp.NewOptions()
	}
	o = new(Main)
	o.Input = model
	o.Model = model
	o.Opts = opts
	o.ShowMsg = opts.Verbose
	return
}

// Analyze runs a linear static analysis of model without repairing it
func Analyze(model *inp.Model, opts *inp.Options) (res *Result, err error) {
	if opts == nil {
		opts = inp.NewOptions()
	}
	o := NewMain(model, opts)
	err = o.run(false)
	return o.Result, err
}

// Run repairs the model if Opts.Repair is set and runs the analysis
func (o *Main) Run() (err error) {
	return o.run(o.Opts.Repair)
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// run runs all steps of the analysis
func (o *Main) run(withRepair bool) (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// options
	err = o.Opts.Validate()
	if err != nil {
		return
	}

	// repair
	if withRepair {
		if o.ShowMsg {
			io.Pf("> Repairing model\n")
		}
		o.Repair, err = repair.Repair(o.Input, o.Opts)
		if err != nil {
			return
		}
		o.Model = o.Repair.Model
	}

	// domain
	if o.ShowMsg {
		io.Pf("> Allocating domain\n")
	}
	o.Dom, err = NewDomain(o.Model, o.Opts)
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Restraints: %s\n", o.Dom.Sups.List())
	}

	// assemble
	if o.ShowMsg {
		io.Pf("> Assembling %d elements with %d workers\n", len(o.Dom.Elems), o.Opts.NumWorkers())
	}
	err = o.Dom.Assemble()
	if err != nil {
		return
	}

	// solve
	if o.ShowMsg {
		io.Pf("> Solving %d equations\n", o.Dom.Ny)
	}
	err = o.Dom.Solve()
	if err != nil {
		return
	}

	// results
	o.Result = NewResult(o.Dom, o.Input.Version)
	if o.Repair != nil {
		for _, w := range o.Repair.Warnings {
			o.Result.Warnings = append(o.Result.Warnings, chk.Err("repair: %s", w))
		}
	}

	// statics check
	if o.Opts.CheckStatics {
		o.Result.Statics = o.Dom.CalcStatics()
		if w := o.Result.Statics.Check(o.Opts.StaticsTol); w != nil {
			o.Result.Warnings = append(o.Result.Warnings, w)
			if o.ShowMsg {
				io.Pfyel("> %v\n", w)
			}
		}
	}
	return
}

// onexit prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	return prevErr
}
