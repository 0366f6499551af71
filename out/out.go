// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output of frame analysis results as text tables, summary files and
// spreadsheets
package out

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/goframe/fem"
	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Summary holds the serialisable part of the results
type Summary struct {
	Version  uint64                 `json:"version"`  // version of the analysed model
	Nodes    []string               `json:"nodes"`    // node names in model order
	Members  []string               `json:"members"`  // member names in model order
	Disp     map[string][6]float64  `json:"disp"`     // node => displacements
	React    map[string][6]float64  `json:"react"`    // supported node => reactions
	Forces   map[string][12]float64 `json:"forces"`   // member => local end forces
	Warnings []string               `json:"warnings"` // warning messages
}

// NewSummary returns the summary of results
func NewSummary(res *fem.Result) (o *Summary) {
	o = new(Summary)
	o.Version = res.Version
	o.Nodes = res.Nodes
	o.Members = res.Members
	o.Disp = res.Disp
	o.React = res.React
	o.Forces = res.Forces
	for _, w := range res.Warnings {
		o.Warnings = append(o.Warnings, w.Error())
	}
	return
}

// Save saves summary
//  Input:
//   dirout  -- output directory; created if needed
//   fnkey   -- filename key; the extension is the encoder type
//   enctype -- "json" or "gob"
func (o *Summary) Save(dirout, fnkey, enctype string) (err error) {
	var buf bytes.Buffer
	switch enctype {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(o)
	case "gob":
		err = gob.NewEncoder(&buf).Encode(o)
	default:
		return chk.Err("encoder type %q is invalid; options are \"json\" and \"gob\"", enctype)
	}
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	err = os.MkdirAll(dirout, 0755)
	if err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	err = os.WriteFile(filepath.Join(dirout, fnkey+"."+enctype), buf.Bytes(), 0644)
	if err != nil {
		return chk.Err("cannot save summary:\n%v", err)
	}
	return
}

// ReadSummary reads a summary saved by Summary.Save
func ReadSummary(dirout, fnkey, enctype string) (o *Summary, err error) {
	fn := filepath.Join(dirout, fnkey+"."+enctype)
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read summary file %q:\n%v", fn, err)
	}
	o = new(Summary)
	switch enctype {
	case "json":
		err = json.Unmarshal(b, o)
	case "gob":
		err = gob.NewDecoder(bytes.NewReader(b)).Decode(o)
	default:
		return nil, chk.Err("encoder type %q is invalid; options are \"json\" and \"gob\"", enctype)
	}
	if err != nil {
		return nil, chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// Report returns text tables with displacements, reactions and end forces
//  numfmt -- format of values; e.g. "%13.5e". use "" for default
func Report(res *fem.Result, numfmt string) (l string) {
	if numfmt == "" {
		numfmt = "%13.5e"
	}
	width := len(io.Sf(numfmt, 0.0))
	hfmt := io.Sf("%%%ds", width)

	// displacements
	l += "displacements\n"
	l += io.Sf("%-12s", "node")
	for _, key := range inp.DofKeys {
		l += io.Sf(hfmt, key)
	}
	l += "\n"
	for _, name := range res.Nodes {
		u := res.Disp[name]
		l += io.Sf("%-12s", name) + row(u[:], numfmt) + "\n"
	}

	// reactions
	l += "\nreactions\n"
	l += io.Sf("%-12s", "node")
	for _, key := range inp.DofKeys {
		l += io.Sf(hfmt, key)
	}
	l += "\n"
	for _, name := range sortedKeys(res.React, res.Nodes) {
		r := res.React[name]
		l += io.Sf("%-12s", name) + row(r[:], numfmt) + "\n"
	}

	// end forces
	l += "\nmember end forces (local axes)\n"
	l += io.Sf("%-12s%-4s", "member", "end")
	for _, key := range []string{"Fx", "Fy", "Fz", "Mx", "My", "Mz"} {
		l += io.Sf(hfmt, key)
	}
	l += "\n"
	for _, name := range res.Members {
		f := res.Forces[name]
		l += io.Sf("%-12s%-4s", name, "i") + row(f[:6], numfmt) + "\n"
		l += io.Sf("%-12s%-4s", "", "j") + row(f[6:], numfmt) + "\n"
	}

	// warnings
	if len(res.Warnings) > 0 {
		l += "\nwarnings\n"
		for _, w := range res.Warnings {
			l += io.Sf("  %v\n", w)
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func row(vals []float64, numfmt string) (l string) {
	for _, v := range vals {
		l += io.Sf(numfmt, v)
	}
	return
}

// sortedKeys returns the keys of m in the order they appear in names; remaining keys are sorted
func sortedKeys[V any](m map[string]V, names []string) (keys []string) {
	seen := make(map[string]bool)
	for _, name := range names {
		if _, ok := m[name]; ok {
			keys = append(keys, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
