// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// ReadModel reads a model from a JSON file
//  Members referencing a named section with "sec" receive a copy of it
func ReadModel(filename string) (o *Model, err error) {

	// read file
	b, err := os.ReadFile(os.ExpandEnv(filename))
	if err != nil {
		return nil, chk.Err("ReadModel: cannot read model file %q:\n%v", filename, err)
	}

	// decode
	o = new(Model)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadModel: cannot unmarshal model file %q:\n%v", filename, err)
	}

	// post-process
	err = o.PostProcess()
	if err != nil {
		return nil, chk.Err("ReadModel: model file %q is invalid:\n%v", filename, err)
	}
	return
}

// PostProcess resolves named sections and rebuilds the name maps of a just decoded model
func (o *Model) PostProcess() (err error) {
	secs := make(map[string]*Section)
	for _, s := range o.Sections {
		if _, ok := secs[s.Name]; ok {
			return chk.Err("section %q is duplicated", s.Name)
		}
		secs[s.Name] = s
	}
	for _, m := range o.Members {
		if m.Sec == "" {
			continue
		}
		s, ok := secs[m.Sec]
		if !ok {
			return chk.Err("cannot find section %q of member %q", m.Sec, m.Name)
		}
		m.Section = *s
	}
	o.Reindex()
	o.Touch()
	return o.Validate()
}

// ReadOptions reads options from a JSON file. Missing keys take default values
func ReadOptions(filename string) (o *Options, err error) {
	b, err := os.ReadFile(os.ExpandEnv(filename))
	if err != nil {
		return nil, chk.Err("ReadOptions: cannot read options file %q:\n%v", filename, err)
	}
	o = NewOptions()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadOptions: cannot unmarshal options file %q:\n%v", filename, err)
	}
	err = o.Validate()
	return
}
