// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_opts01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opts01. defaults and validation")

	o := NewOptions()
	chk.Float64(tst, "tol_node", 1e-17, o.TolNode, 1e-3)
	chk.Float64(tst, "tol_intersection", 1e-17, o.TolInter, 1e-3)
	chk.Float64(tst, "statics_tol", 1e-17, o.StaticsTol, 1e-6)
	if o.SupportConflict != ConflictFixed || !o.MergeDuplicates {
		tst.Errorf("defaults are incorrect: %+v", o)
		return
	}
	if err := o.Validate(); err != nil {
		tst.Errorf("defaults must be valid:\n%v", err)
		return
	}

	o.TolNode = -1
	err := o.Validate()
	io.Pforan("err = %v\n", err)
	cerr, ok := err.(*ConfigurationError)
	if !ok {
		tst.Errorf("Validate should return a ConfigurationError")
		return
	}
	if cerr.Option != "tol_node" {
		tst.Errorf("option name is incorrect: %q", cerr.Option)
		return
	}

	o.SetDefault()
	o.SupportConflict = "maybe"
	if err = o.Validate(); err == nil {
		tst.Errorf("invalid policy should have failed")
		return
	}

	// non-finite and out-of-range tolerances
	nan, inf := math.NaN(), math.Inf(1)
	for _, c := range []struct {
		name string
		set  func(o *Options)
	}{
		{"tol_node", func(o *Options) { o.TolNode = nan }},
		{"tol_node", func(o *Options) { o.TolNode = inf }},
		{"tol_intersection", func(o *Options) { o.TolInter = nan }},
		{"tol_intersection", func(o *Options) { o.TolInter = -inf }},
		{"tol_intersection", func(o *Options) { o.TolInter = -1e-3 }},
		{"statics_tol", func(o *Options) { o.StaticsTol = nan }},
		{"statics_tol", func(o *Options) { o.StaticsTol = inf }},
		{"statics_tol", func(o *Options) { o.StaticsTol = 0 }},
		{"pivot_tol", func(o *Options) { o.PivotTol = nan }},
		{"pivot_tol", func(o *Options) { o.PivotTol = inf }},
		{"pivot_tol", func(o *Options) { o.PivotTol = -1 }},
		{"workers", func(o *Options) { o.Workers = -1 }},
	} {
		o.SetDefault()
		c.set(o)
		err = o.Validate()
		cerr, ok := err.(*ConfigurationError)
		if !ok {
			tst.Errorf("%s: Validate should return a ConfigurationError. err = %v", c.name, err)
			continue
		}
		if cerr.Option != c.name {
			tst.Errorf("%s: option name is incorrect: %q", c.name, cerr.Option)
		}
	}

	// dotenv values go through the same validation
	o.SetDefault()
	err = o.SetFromMap(map[string]string{"GOFRAME_TOL_NODE": "NaN"}, "GOFRAME_")
	if err != nil {
		tst.Errorf("SetFromMap failed:\n%v", err)
		return
	}
	if _, ok := o.Validate().(*ConfigurationError); !ok {
		tst.Errorf("NaN tol_node from dotenv should give a ConfigurationError")
	}

	o.SetDefault()
	o.Workers = 3
	chk.Int(tst, "workers", o.NumWorkers(), 3)
}

func Test_opts02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opts02. json and dotenv files")

	o, err := ReadOptions("data/options01.json")
	if err != nil {
		tst.Errorf("ReadOptions failed:\n%v", err)
		return
	}
	chk.Float64(tst, "tol_node", 1e-17, o.TolNode, 0.01)
	chk.Float64(tst, "tol_intersection", 1e-17, o.TolInter, 1e-3)
	chk.Int(tst, "workers", o.Workers, 2)
	if !o.CheckStatics || o.SupportConflict != ConflictFree {
		tst.Errorf("values are incorrect: %+v", o)
		return
	}

	err = o.ReadEnv("data/options01.env", "GOFRAME_")
	if err != nil {
		tst.Errorf("ReadEnv failed:\n%v", err)
		return
	}
	chk.Float64(tst, "tol_intersection", 1e-17, o.TolInter, 0.005)
	if !o.Repair || o.Verbose {
		tst.Errorf("dotenv values are incorrect: %+v", o)
		return
	}

	_, err = ReadOptions("data/options02.json")
	io.Pforan("err = %v\n", err)
	if _, ok := err.(*ConfigurationError); !ok {
		tst.Errorf("invalid policy should give a ConfigurationError")
		return
	}

	err = o.SetFromMap(map[string]string{"GOFRAME_WORKERS": "abc"}, "GOFRAME_")
	if _, ok := err.(*ConfigurationError); !ok {
		tst.Errorf("invalid integer should give a ConfigurationError")
		return
	}
	err = o.SetFromMap(map[string]string{"GOFRAME_UNKNOWN": "1"}, "GOFRAME_")
	if err == nil {
		tst.Errorf("unknown option should have failed")
	}

	// missing files
	if _, err = ReadOptions("data/nonexistent.json"); err == nil {
		tst.Errorf("missing options file should have failed")
	}
	if err = o.ReadEnv("data/nonexistent.env", "GOFRAME_"); err == nil {
		tst.Errorf("missing dotenv file should have failed")
	}
}
