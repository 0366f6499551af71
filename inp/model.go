// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data of a frame model: nodes, members, supports, loads and
// analysis options; read from JSON files or built in memory
package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// DofKeys holds the keys of the 6 degrees of freedom of each node, in equation order
var DofKeys = [6]string{"DX", "DY", "DZ", "RX", "RY", "RZ"}

// ReleaseKeys holds the keys of the 12 member end releases, in local DOF order
var ReleaseKeys = [12]string{"Dxi", "Dyi", "Dzi", "Rxi", "Ryi", "Rzi", "Dxj", "Dyj", "Dzj", "Rxj", "Ryj", "Rzj"}

// Node holds node data
type Node struct {
	Name string  `json:"name"` // unique name
	X    float64 `json:"x"`    // x-coordinate
	Y    float64 `json:"y"`    // y-coordinate
	Z    float64 `json:"z"`    // z-coordinate
}

// Coords returns the coordinates of node
func (o *Node) Coords() [3]float64 { return [3]float64{o.X, o.Y, o.Z} }

// Section holds cross-section and material properties of members
type Section struct {
	Name string  `json:"name"` // name of section; used by members in input files
	E    float64 `json:"E"`    // Young's modulus
	G    float64 `json:"G"`    // shear modulus
	A    float64 `json:"A"`    // cross-sectional area
	Iy   float64 `json:"Iy"`   // moment of inertia about local y-axis
	Iz   float64 `json:"Iz"`   // moment of inertia about local z-axis
	J    float64 `json:"J"`    // torsional constant
	Asy  float64 `json:"Asy"`  // shear area along local y. not used by Euler-Bernoulli members
	Asz  float64 `json:"Asz"`  // shear area along local z. not used by Euler-Bernoulli members
}

// Check checks whether the stiffness parameters are finite and positive
func (o *Section) Check() (err error) {
	if !Finite(o.E, o.G, o.A, o.Iy, o.Iz, o.J) {
		return chk.Err("section %q: E, G, A, Iy, Iz and J must be finite. E=%g G=%g A=%g Iy=%g Iz=%g J=%g", o.Name, o.E, o.G, o.A, o.Iy, o.Iz, o.J)
	}
	ϵp := 1e-15
	if o.E < ϵp || o.A < ϵp || o.Iy < ϵp || o.Iz < ϵp {
		return chk.Err("section %q: E, A, Iy and Iz must be all positive. E=%g A=%g Iy=%g Iz=%g", o.Name, o.E, o.A, o.Iy, o.Iz)
	}
	if o.G < ϵp || o.J < ϵp {
		return chk.Err("section %q: G and J must be positive. G=%g J=%g", o.Name, o.G, o.J)
	}
	return
}

// Member holds data of a frame member connecting nodes I and J
type Member struct {
	Name     string   `json:"name"`     // unique name
	I        string   `json:"i"`        // name of i-node
	J        string   `json:"j"`        // name of j-node
	Sec      string   `json:"sec"`      // name of section in Model.Sections (input files). empty => use Section
	Section  Section  `json:"section"`  // section properties
	Releases [12]bool `json:"releases"` // end releases in ReleaseKeys order
	Rotation float64  `json:"rotation"` // rotation of local y-z axes about local x-axis [degrees]
}

// Released tells whether member has any end release
func (o *Member) Released() bool {
	for _, r := range o.Releases {
		if r {
			return true
		}
	}
	return false
}

// Support holds the restrained DOFs of one node
type Support struct {
	Node  string  `json:"node"`  // node name
	Fixed [6]bool `json:"fixed"` // restrained DOFs in DofKeys order
}

// Any tells whether at least one DOF is restrained
func (o *Support) Any() bool {
	for _, f := range o.Fixed {
		if f {
			return true
		}
	}
	return false
}

// NodeLoad holds a concentrated load applied to a node in global axes
type NodeLoad struct {
	Node string     `json:"node"` // node name
	F    [6]float64 `json:"f"`    // forces and moments in DofKeys order
}

// DistLoad holds a linearly varying distributed load on part of a member
//  Dir: "Fx", "Fy", "Fz" => local axes; "FX", "FY", "FZ" => global axes
//  X1 and X2 are fractions of the member length with 0 ≤ X1 < X2 ≤ 1
type DistLoad struct {
	Member string  `json:"member"` // member name
	Dir    string  `json:"dir"`    // direction
	W1     float64 `json:"w1"`     // intensity at X1 [force/length]
	W2     float64 `json:"w2"`     // intensity at X2 [force/length]
	X1     float64 `json:"x1"`     // start position as fraction of length
	X2     float64 `json:"x2"`     // end position as fraction of length
}

// PointLoad holds a concentrated force or moment applied along a member
//  Dir: "Fx", "Fy", "Fz", "Mx", "My", "Mz" => local axes; "FX", ..., "MZ" => global axes
type PointLoad struct {
	Member string  `json:"member"` // member name
	Dir    string  `json:"dir"`    // direction
	P      float64 `json:"p"`      // magnitude
	X      float64 `json:"x"`      // position as fraction of length
}

// LoadDir parses a load direction key
//  Output:
//   idx   -- 0..5 index in {Fx,Fy,Fz,Mx,My,Mz}
//   local -- direction refers to member local axes
func LoadDir(dir string) (idx int, local bool, err error) {
	for i, key := range []string{"Fx", "Fy", "Fz", "Mx", "My", "Mz"} {
		if dir == key {
			return i, true, nil
		}
	}
	for i, key := range []string{"FX", "FY", "FZ", "MX", "MY", "MZ"} {
		if dir == key {
			return i, false, nil
		}
	}
	return -1, false, chk.Err("load direction %q is invalid", dir)
}

// Model holds all entities of a frame model, in insertion order
type Model struct {

	// input
	Desc       string       `json:"desc"`       // description of model
	Sections   []*Section   `json:"sections"`   // named sections (input files)
	Nodes      []*Node      `json:"nodes"`      // all nodes
	Members    []*Member    `json:"members"`    // all members
	Supports   []*Support   `json:"supports"`   // supports; at most one per node
	NodeLoads  []*NodeLoad  `json:"nodeloads"`  // concentrated nodal loads
	DistLoads  []*DistLoad  `json:"distloads"`  // distributed member loads
	PointLoads []*PointLoad `json:"pointloads"` // concentrated member loads

	// derived
	Version uint64 // mutation counter; incremented by every mutator

	// auxiliary
	name2node   map[string]*Node
	name2member map[string]*Member
	node2supp   map[string]*Support
}

// NewModel returns a new empty model
func NewModel() (o *Model) {
	o = new(Model)
	o.Reindex()
	return
}

// Reindex rebuilds the name maps. Call it after editing the slices directly
func (o *Model) Reindex() {
	o.name2node = make(map[string]*Node, len(o.Nodes))
	o.name2member = make(map[string]*Member, len(o.Members))
	o.node2supp = make(map[string]*Support, len(o.Supports))
	for _, n := range o.Nodes {
		o.name2node[n.Name] = n
	}
	for _, m := range o.Members {
		o.name2member[m.Name] = m
	}
	for _, s := range o.Supports {
		o.node2supp[s.Node] = s
	}
}

// Touch marks model as modified
func (o *Model) Touch() {
	o.Version++
}

// Node returns node by name or nil
func (o *Model) Node(name string) *Node {
	if o.name2node == nil {
		o.Reindex()
	}
	return o.name2node[name]
}

// Member returns member by name or nil
func (o *Model) Member(name string) *Member {
	if o.name2member == nil {
		o.Reindex()
	}
	return o.name2member[name]
}

// Support returns the support of node or nil
func (o *Model) Support(node string) *Support {
	if o.node2supp == nil {
		o.Reindex()
	}
	return o.node2supp[node]
}

// UniqueName returns a name made of prefix and a number that is not used by nodes or members
func (o *Model) UniqueName(prefix string) string {
	k := len(o.Nodes) + len(o.Members) + 1
	for {
		name := io.Sf("%s%d", prefix, k)
		if o.Node(name) == nil && o.Member(name) == nil {
			return name
		}
		k++
	}
}

// AddNode adds a new node. An empty name is replaced by an automatic one
func (o *Model) AddNode(name string, x, y, z float64) (nod *Node, err error) {
	if name == "" {
		name = o.UniqueName("N")
	}
	if o.Node(name) != nil {
		return nil, chk.Err("node %q already exists", name)
	}
	if !Finite(x, y, z) {
		return nil, chk.Err("coordinates of node %q must be finite. x=%g y=%g z=%g", name, x, y, z)
	}
	nod = &Node{Name: name, X: x, Y: y, Z: z}
	o.Nodes = append(o.Nodes, nod)
	o.name2node[name] = nod
	o.Touch()
	return
}

// AddMember adds a new member between existent nodes i and j. An empty name is replaced by an automatic one
func (o *Model) AddMember(name, i, j string, sec Section) (mem *Member, err error) {
	if name == "" {
		name = o.UniqueName("M")
	}
	if o.Member(name) != nil {
		return nil, chk.Err("member %q already exists", name)
	}
	if i == j {
		return nil, chk.Err("member %q: i-node and j-node must be different. %q == %q", name, i, j)
	}
	if o.Node(i) == nil || o.Node(j) == nil {
		return nil, chk.Err("member %q: cannot find nodes %q and/or %q", name, i, j)
	}
	err = sec.Check()
	if err != nil {
		return
	}
	mem = &Member{Name: name, I: i, J: j, Section: sec}
	o.Members = append(o.Members, mem)
	o.name2member[name] = mem
	o.Touch()
	return
}

// SetReleases sets the end releases of member using ReleaseKeys; e.g. "Ryi", "Rzj"
func (o *Model) SetReleases(member string, keys ...string) (err error) {
	mem := o.Member(member)
	if mem == nil {
		return chk.Err("cannot find member %q to set releases", member)
	}
	for _, key := range keys {
		found := false
		for k, rkey := range ReleaseKeys {
			if key == rkey {
				mem.Releases[k] = true
				found = true
				break
			}
		}
		if !found {
			return chk.Err("release key %q is invalid", key)
		}
	}
	o.Touch()
	return
}

// SetSupport sets (or replaces) the support of node using DofKeys; e.g. "DX", "DY", "RZ"
func (o *Model) SetSupport(node string, keys ...string) (err error) {
	if o.Node(node) == nil {
		return chk.Err("cannot find node %q to set support", node)
	}
	var fixed [6]bool
	for _, key := range keys {
		idx := DofIndex(key)
		if idx < 0 {
			return chk.Err("support key %q is invalid", key)
		}
		fixed[idx] = true
	}
	if s := o.Support(node); s != nil {
		s.Fixed = fixed
	} else {
		s = &Support{Node: node, Fixed: fixed}
		o.Supports = append(o.Supports, s)
		o.node2supp[node] = s
	}
	o.Touch()
	return
}

// AddNodeLoad adds a concentrated load to node
//  dir -- "FX", "FY", "FZ", "MX", "MY" or "MZ"
func (o *Model) AddNodeLoad(node, dir string, val float64) (err error) {
	if o.Node(node) == nil {
		return chk.Err("cannot find node %q to add load", node)
	}
	idx, local, err := LoadDir(dir)
	if err != nil {
		return
	}
	if local {
		return chk.Err("nodal loads must be given in global axes. %q is invalid", dir)
	}
	if !Finite(val) {
		return chk.Err("load on node %q must be finite. %g is invalid", node, val)
	}
	var f [6]float64
	f[idx] = val
	o.NodeLoads = append(o.NodeLoads, &NodeLoad{Node: node, F: f})
	o.Touch()
	return
}

// AddDistLoad adds a linearly varying distributed load to member
func (o *Model) AddDistLoad(member, dir string, w1, w2, x1, x2 float64) (err error) {
	ld := &DistLoad{Member: member, Dir: dir, W1: w1, W2: w2, X1: x1, X2: x2}
	err = o.checkDistLoad(ld)
	if err != nil {
		return
	}
	o.DistLoads = append(o.DistLoads, ld)
	o.Touch()
	return
}

// AddPointLoad adds a concentrated force or moment to member
func (o *Model) AddPointLoad(member, dir string, p, x float64) (err error) {
	ld := &PointLoad{Member: member, Dir: dir, P: p, X: x}
	err = o.checkPointLoad(ld)
	if err != nil {
		return
	}
	o.PointLoads = append(o.PointLoads, ld)
	o.Touch()
	return
}

// FindNode returns the first node within tol of (x,y,z) or nil
func (o *Model) FindNode(x, y, z, tol float64) *Node {
	for _, n := range o.Nodes {
		dx, dy, dz := n.X-x, n.Y-y, n.Z-z
		if math.Sqrt(dx*dx+dy*dy+dz*dz) <= tol {
			return n
		}
	}
	return nil
}

// Length returns the length of member
func (o *Model) Length(mem *Member) float64 {
	a, b := o.Node(mem.I), o.Node(mem.J)
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Validate checks that names are unique and that every reference resolves to a live entity
func (o *Model) Validate() (err error) {
	o.Reindex()
	if len(o.name2node) != len(o.Nodes) {
		return &ModelingError{Msg: "node names must be unique"}
	}
	if len(o.name2member) != len(o.Members) {
		return &ModelingError{Msg: "member names must be unique"}
	}
	if len(o.node2supp) != len(o.Supports) {
		return &ModelingError{Msg: "there must be at most one support per node"}
	}
	for _, n := range o.Nodes {
		if !Finite(n.X, n.Y, n.Z) {
			return &ModelingError{Msg: io.Sf("node coordinates must be finite. x=%g y=%g z=%g", n.X, n.Y, n.Z), Nodes: []string{n.Name}}
		}
	}
	for _, m := range o.Members {
		if !Finite(m.Rotation) {
			return &ModelingError{Msg: io.Sf("member rotation must be finite. %g is invalid", m.Rotation), Members: []string{m.Name}}
		}
		if m.I == m.J {
			return &ModelingError{Msg: "i-node and j-node must be different", Members: []string{m.Name}}
		}
		if o.Node(m.I) == nil || o.Node(m.J) == nil {
			return &ModelingError{Msg: io.Sf("cannot find nodes %q and/or %q", m.I, m.J), Members: []string{m.Name}}
		}
		if o.Length(m) < 1e-15 {
			return &ModelingError{Msg: "member has zero length", Members: []string{m.Name}, Nodes: []string{m.I, m.J}}
		}
		err = m.Section.Check()
		if err != nil {
			return &ModelingError{Msg: err.Error(), Members: []string{m.Name}}
		}
	}
	for _, s := range o.Supports {
		if o.Node(s.Node) == nil {
			return &ModelingError{Msg: "support references missing node", Nodes: []string{s.Node}}
		}
	}
	for _, l := range o.NodeLoads {
		if o.Node(l.Node) == nil {
			return &ModelingError{Msg: "load references missing node", Nodes: []string{l.Node}}
		}
		if !Finite(l.F[:]...) {
			return &ModelingError{Msg: io.Sf("node load values must be finite. %v is invalid", l.F), Nodes: []string{l.Node}}
		}
	}
	for _, l := range o.DistLoads {
		err = o.checkDistLoad(l)
		if err != nil {
			return &ModelingError{Msg: err.Error(), Members: []string{l.Member}}
		}
	}
	for _, l := range o.PointLoads {
		err = o.checkPointLoad(l)
		if err != nil {
			return &ModelingError{Msg: err.Error(), Members: []string{l.Member}}
		}
	}
	return
}

// Clone returns a deep copy of model
func (o *Model) Clone() (c *Model) {
	c = new(Model)
	c.Desc = o.Desc
	c.Version = o.Version
	for _, s := range o.Sections {
		cs := *s
		c.Sections = append(c.Sections, &cs)
	}
	for _, n := range o.Nodes {
		cn := *n
		c.Nodes = append(c.Nodes, &cn)
	}
	for _, m := range o.Members {
		cm := *m
		c.Members = append(c.Members, &cm)
	}
	for _, s := range o.Supports {
		cs := *s
		c.Supports = append(c.Supports, &cs)
	}
	for _, l := range o.NodeLoads {
		cl := *l
		c.NodeLoads = append(c.NodeLoads, &cl)
	}
	for _, l := range o.DistLoads {
		cl := *l
		c.DistLoads = append(c.DistLoads, &cl)
	}
	for _, l := range o.PointLoads {
		cl := *l
		c.PointLoads = append(c.PointLoads, &cl)
	}
	c.Reindex()
	return
}

// DofIndex returns the index of a DOF key or -1
func DofIndex(key string) int {
	for i, k := range DofKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// Finite tells whether all values are neither NaN nor infinite
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func (o *Model) checkDistLoad(l *DistLoad) (err error) {
	if o.Member(l.Member) == nil {
		return chk.Err("cannot find member %q to add distributed load", l.Member)
	}
	idx, _, err := LoadDir(l.Dir)
	if err != nil {
		return
	}
	if idx > 2 {
		return chk.Err("distributed loads must be forces. %q is invalid", l.Dir)
	}
	if !Finite(l.W1, l.W2, l.X1, l.X2) {
		return chk.Err("distributed load on %q: values must be finite. w1=%g w2=%g x1=%g x2=%g", l.Member, l.W1, l.W2, l.X1, l.X2)
	}
	if l.X1 < 0 || l.X2 > 1 || l.X1 >= l.X2 {
		return chk.Err("distributed load on %q: positions must satisfy 0 ≤ x1 < x2 ≤ 1. x1=%g x2=%g", l.Member, l.X1, l.X2)
	}
	return
}

func (o *Model) checkPointLoad(l *PointLoad) (err error) {
	if o.Member(l.Member) == nil {
		return chk.Err("cannot find member %q to add point load", l.Member)
	}
	_, _, err = LoadDir(l.Dir)
	if err != nil {
		return
	}
	if !Finite(l.P, l.X) {
		return chk.Err("point load on %q: values must be finite. p=%g x=%g", l.Member, l.P, l.X)
	}
	if l.X < 0 || l.X > 1 {
		return chk.Err("point load on %q: position must satisfy 0 ≤ x ≤ 1. x=%g", l.Member, l.X)
	}
	return
}
