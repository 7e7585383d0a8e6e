// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"fmt"
	"reflect"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook"
)

// File is an open ROOT file.
type File struct {
	path string
	f    *groot.File
}

// Open opens the ROOT file at path.
func Open(path string) (*File, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, &DataAccessError{"open", path, err}
	}
	return &File{path, f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// treeClasses are the ROOT classes that can be read as a Tree.
var treeClasses = map[string]bool{
	"TTree":    true,
	"TNtuple":  true,
	"TNtupleD": true,
}

// Trees returns the names of the trees stored at the top level of f.
func (f *File) Trees() []string {
	var names []string
	for _, k := range f.f.Keys() {
		if treeClasses[k.ClassName()] {
			names = append(names, k.Name())
		}
	}
	return names
}

// Tree returns the named tree.
func (f *File) Tree(name string) (*Tree, error) {
	obj, err := f.f.Get(name)
	if err != nil {
		return nil, &DataAccessError{"tree", name, fmt.Errorf("%w in %s", ErrNoTree, f.path)}
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		return nil, &DataAccessError{"tree", name, fmt.Errorf("%w: object is a %s", ErrNoTree, obj.Class())}
	}
	return newTree(t), nil
}

// Tree is a Source backed by a ROOT tree.
type Tree struct {
	t     rtree.Tree
	cols  []Column
	vars  []rtree.ReadVar
	index map[string]int
}

func newTree(t rtree.Tree) *Tree {
	rvars := rtree.NewReadVars(t)
	tr := &Tree{
		t:     t,
		cols:  make([]Column, len(rvars)),
		vars:  rvars,
		index: make(map[string]int, len(rvars)),
	}
	for i, rv := range rvars {
		typ := reflect.TypeOf(rv.Value).Elem()
		tr.cols[i] = Column{rv.Name, kindOf(typ), typ.String()}
		tr.index[rv.Name] = i
	}
	return tr
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.t.Name()
}

// Branches returns the names of the tree's top-level branches.
func (t *Tree) Branches() []string {
	bs := t.t.Branches()
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name()
	}
	return names
}

// Leaves returns the Go types of the leaves of the named branch.
// Element leaves, such as those of std::vector branches, have no
// ROOT type name, so the decoded Go type is used for every leaf.
func (t *Tree) Leaves(branch string) []string {
	b := t.t.Branch(branch)
	if b == nil {
		return nil
	}
	var types []string
	for _, l := range b.Leaves() {
		types = append(types, l.Type().String())
	}
	return types
}

func (t *Tree) Entries() int64 {
	return t.t.Entries()
}

func (t *Tree) Columns() []Column {
	return append([]Column(nil), t.cols...)
}

func (t *Tree) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, &DataAccessError{"column", name, fmt.Errorf("%w in tree %s", ErrNoColumn, t.t.Name())}
	}
	return t.cols[i], nil
}

func (t *Tree) Project(name string, h *hbook.H1D) error {
	return project(t, name, h)
}

func (t *Tree) Scan(names []string, fn func(Row) error) error {
	cols, err := bind(t, names)
	if err != nil {
		return err
	}

	// Fresh storage for every scan so no binding outlives it.
	rvars := make([]rtree.ReadVar, len(names))
	row := &rootRow{
		cols: cols,
		vals: make([]reflect.Value, len(names)),
		bufs: make([][]float64, len(names)),
	}
	for i, name := range names {
		tmpl := t.vars[t.index[name]]
		ptr := reflect.New(reflect.TypeOf(tmpl.Value).Elem())
		rvars[i] = rtree.ReadVar{Name: tmpl.Name, Leaf: tmpl.Leaf, Value: ptr.Interface()}
		row.vals[i] = ptr.Elem()
	}

	r, err := rtree.NewReader(t.t, rvars)
	if err != nil {
		return &DataAccessError{"scan", t.t.Name(), err}
	}
	defer r.Close()

	return r.Read(func(ctx rtree.RCtx) error {
		row.entry = ctx.Entry
		return fn(row)
	})
}

type rootRow struct {
	entry int64
	cols  []Column
	vals  []reflect.Value
	bufs  [][]float64
}

func (r *rootRow) Entry() int64 {
	return r.entry
}

func (r *rootRow) Float(i int) (float64, bool) {
	if r.cols[i].Kind != Scalar {
		return 0, false
	}
	return toFloat(r.vals[i])
}

func (r *rootRow) Seq(i int) ([]float64, bool) {
	if r.cols[i].Kind != Sequence {
		return nil, false
	}
	v := r.vals[i]
	buf := r.bufs[i][:0]
	for j := 0; j < v.Len(); j++ {
		x, _ := toFloat(v.Index(j))
		buf = append(buf, x)
	}
	r.bufs[i] = buf
	return buf, true
}

func kindOf(typ reflect.Type) Kind {
	switch typ.Kind() {
	case reflect.Slice, reflect.Array:
		if isNumber(typ.Elem().Kind()) {
			return Sequence
		}
	default:
		if isNumber(typ.Kind()) {
			return Scalar
		}
	}
	return Unsupported
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
