// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/joho/godotenv"
)

// support conflict policies
const (
	ConflictFixed = "fixed" // a DOF fixed by any merged node stays fixed
	ConflictFree  = "free"  // a DOF freed by any merged node becomes free
	ConflictError = "error" // conflicting supports abort the repair
)

// Options holds repair and analysis options
type Options struct {
	MergeDuplicates bool    `json:"merge_duplicates"` // merge nodes closer than TolNode
	TolNode         float64 `json:"tol_node"`         // distance below which nodes are duplicates
	TolInter        float64 `json:"tol_intersection"` // distance below which members intersect
	CheckStatics    bool    `json:"check_statics"`    // check global equilibrium after solution
	StaticsTol      float64 `json:"statics_tol"`      // relative tolerance for statics check
	SupportConflict string  `json:"support_conflict"` // policy for merged nodes with conflicting supports
	Repair          bool    `json:"repair"`           // run the repair engine before analysis
	Workers         int     `json:"workers"`          // number of goroutines computing element matrices. 0 => NumCPU
	Verbose         bool    `json:"verbose"`          // show messages
	PivotTol        float64 `json:"pivot_tol"`        // relative pivot tolerance of linear solver
}

// SetDefault sets default values
func (o *Options) SetDefault() {
	o.MergeDuplicates = true
	o.TolNode = 1e-3
	o.TolInter = 1e-3
	o.StaticsTol = 1e-6
	o.SupportConflict = ConflictFixed
	o.PivotTol = 1e-11
}

// NewOptions returns options with default values
func NewOptions() (o *Options) {
	o = new(Options)
	o.SetDefault()
	return
}

// Validate checks values before any geometry processing
func (o *Options) Validate() (err error) {
	for _, t := range []struct {
		name     string
		val      float64
		positive bool
	}{
		{"tol_node", o.TolNode, false},
		{"tol_intersection", o.TolInter, false},
		{"statics_tol", o.StaticsTol, true},
		{"pivot_tol", o.PivotTol, true},
	} {
		if math.IsNaN(t.val) || math.IsInf(t.val, 0) {
			return &ConfigurationError{t.name, chk.Err("tolerance must be finite. %g is invalid", t.val).Error()}
		}
		if t.positive && t.val <= 0 {
			return &ConfigurationError{t.name, chk.Err("tolerance must be positive. %g is invalid", t.val).Error()}
		}
		if t.val < 0 {
			return &ConfigurationError{t.name, chk.Err("tolerance must be non-negative. %g is invalid", t.val).Error()}
		}
	}
	if o.Workers < 0 {
		return &ConfigurationError{"workers", chk.Err("number of workers must be non-negative. %d is invalid", o.Workers).Error()}
	}
	switch o.SupportConflict {
	case ConflictFixed, ConflictFree, ConflictError:
	default:
		return &ConfigurationError{"support_conflict", chk.Err("policy must be %q, %q or %q. %q is invalid", ConflictFixed, ConflictFree, ConflictError, o.SupportConflict).Error()}
	}
	return
}

// NumWorkers returns the number of goroutines to be used
func (o *Options) NumWorkers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// ReadEnv overlays values found in a dotenv file. Keys are the JSON keys in upper case,
// prefixed by prefix; e.g. with prefix "GOFRAME_": GOFRAME_TOL_NODE=0.01
func (o *Options) ReadEnv(filename, prefix string) (err error) {
	env, err := godotenv.Read(filename)
	if err != nil {
		return chk.Err("cannot read dotenv file %q:\n%v", filename, err)
	}
	return o.SetFromMap(env, prefix)
}

// SetFromMap sets values from a map of strings; see ReadEnv
func (o *Options) SetFromMap(env map[string]string, prefix string) (err error) {
	for key, val := range env {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, prefix))
		err = o.set(name, strings.TrimSpace(val))
		if err != nil {
			return
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// set sets option given its JSON key
func (o *Options) set(name, val string) (err error) {
	pbool := func(dest *bool) {
		var b bool
		b, err = strconv.ParseBool(val)
		if err != nil {
			err = &ConfigurationError{name, "cannot parse boolean " + strconv.Quote(val)}
			return
		}
		*dest = b
	}
	pfloat := func(dest *float64) {
		var x float64
		x, err = strconv.ParseFloat(val, 64)
		if err != nil {
			err = &ConfigurationError{name, "cannot parse number " + strconv.Quote(val)}
			return
		}
		*dest = x
	}
	switch name {
	case "merge_duplicates":
		pbool(&o.MergeDuplicates)
	case "tol_node":
		pfloat(&o.TolNode)
	case "tol_intersection":
		pfloat(&o.TolInter)
	case "check_statics":
		pbool(&o.CheckStatics)
	case "statics_tol":
		pfloat(&o.StaticsTol)
	case "support_conflict":
		o.SupportConflict = strings.ToLower(val)
	case "repair":
		pbool(&o.Repair)
	case "workers":
		var n int
		n, err = strconv.Atoi(val)
		if err != nil {
			return &ConfigurationError{name, "cannot parse integer " + strconv.Quote(val)}
		}
		o.Workers = n
	case "verbose":
		pbool(&o.Verbose)
	case "pivot_tol":
		pfloat(&o.PivotTol)
	default:
		return &ConfigurationError{name, "unknown option"}
	}
	return
}
