// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/goframe/fem"
	"github.com/cpmech/goframe/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

// sheet names
const (
	SheetDisp     = "Displacements"
	SheetReact    = "Reactions"
	SheetForces   = "EndForces"
	SheetDiagrams = "Diagrams"
	SheetWarnings = "Warnings"
)

// WriteXlsx saves results to a spreadsheet with one sheet per table
//  Input:
//   filename  -- full path of .xlsx file
//   res       -- results
//   nstations -- number of stations per member in the diagrams sheet. use 0 to skip diagrams
func WriteXlsx(filename string, res *fem.Result, nstations int) (err error) {

	// workbook
	f := excelize.NewFile()
	defer f.Close()

	// displacements
	header := []interface{}{"node"}
	for _, key := range inp.DofKeys {
		header = append(header, key)
	}
	var rows [][]interface{}
	for _, name := range res.Nodes {
		u := res.Disp[name]
		rows = append(rows, append([]interface{}{name}, cells(u[:])...))
	}
	err = writeSheet(f, SheetDisp, header, rows)
	if err != nil {
		return
	}

	// reactions
	rows = rows[:0]
	for _, name := range sortedKeys(res.React, res.Nodes) {
		r := res.React[name]
		rows = append(rows, append([]interface{}{name}, cells(r[:])...))
	}
	err = writeSheet(f, SheetReact, header, rows)
	if err != nil {
		return
	}

	// end forces
	header = []interface{}{"member", "end", "Fx", "Fy", "Fz", "Mx", "My", "Mz"}
	rows = rows[:0]
	for _, name := range res.Members {
		e := res.Forces[name]
		rows = append(rows, append([]interface{}{name, "i"}, cells(e[:6])...))
		rows = append(rows, append([]interface{}{name, "j"}, cells(e[6:])...))
	}
	err = writeSheet(f, SheetForces, header, rows)
	if err != nil {
		return
	}

	// diagrams
	if nstations > 0 {
		diags, e := Diagrams(res, nstations)
		if e != nil {
			return e
		}
		header = []interface{}{"member", "s", "x"}
		for _, key := range ForceKeys {
			header = append(header, key)
		}
		rows = rows[:0]
		for _, d := range diags {
			for i, s := range d.S {
				rows = append(rows, append([]interface{}{d.Member, s, s * d.L}, cells(d.F[i][:])...))
			}
		}
		err = writeSheet(f, SheetDiagrams, header, rows)
		if err != nil {
			return
		}
	}

	// warnings
	rows = rows[:0]
	for _, w := range res.Warnings {
		rows = append(rows, []interface{}{w.Error()})
	}
	err = writeSheet(f, SheetWarnings, []interface{}{"warning"}, rows)
	if err != nil {
		return
	}

	// save
	idx, err := f.GetSheetIndex(SheetDisp)
	if err != nil {
		return chk.Err("cannot find sheet %q:\n%v", SheetDisp, err)
	}
	f.SetActiveSheet(idx)
	err = f.DeleteSheet("Sheet1")
	if err != nil {
		return chk.Err("cannot delete default sheet:\n%v", err)
	}
	err = f.SaveAs(filename)
	if err != nil {
		return chk.Err("cannot save spreadsheet %q:\n%v", filename, err)
	}
	return
}

// ReadXlsxSheet reads all rows of one sheet of a spreadsheet saved by WriteXlsx
func ReadXlsxSheet(filename, sheet string) (rows [][]string, err error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, chk.Err("cannot open spreadsheet %q:\n%v", filename, err)
	}
	defer f.Close()
	rows, err = f.GetRows(sheet)
	if err != nil {
		return nil, chk.Err("cannot read sheet %q:\n%v", sheet, err)
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func cells(vals []float64) (c []interface{}) {
	c = make([]interface{}, len(vals))
	for i, v := range vals {
		c[i] = v
	}
	return
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) (err error) {
	_, err = f.NewSheet(sheet)
	if err != nil {
		return chk.Err("cannot create sheet %q:\n%v", sheet, err)
	}
	err = f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return
	}
	for i, r := range rows {
		cell, e := excelize.CoordinatesToCellName(1, i+2)
		if e != nil {
			return e
		}
		err = f.SetSheetRow(sheet, cell, &r)
		if err != nil {
			return chk.Err("cannot write row %d of sheet %q:\n%v", i+2, sheet, err)
		}
	}
	return
}
