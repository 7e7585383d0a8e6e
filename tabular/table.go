// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// Table is an in-memory Source. Build one with NewTable and the Add
// methods; all columns must have the same number of rows.
type Table struct {
	rows  int64
	cols  []memColumn
	index map[string]int
}

type memColumn struct {
	Column
	scalars []float64
	present []bool
	seqs    [][]float64
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{rows: -1, index: make(map[string]int)}
}

func (t *Table) add(c memColumn, n int) *Table {
	if _, ok := t.index[c.Name]; ok {
		panic(fmt.Sprintf("tabular: duplicate column %q", c.Name))
	}
	if t.rows >= 0 && int64(n) != t.rows {
		panic(fmt.Sprintf("tabular: column %q has %d rows, want %d", c.Name, n, t.rows))
	}
	t.rows = int64(n)
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return t
}

// AddScalar adds a scalar column whose value is present in every row.
func (t *Table) AddScalar(name string, vals []float64) *Table {
	present := make([]bool, len(vals))
	for i := range present {
		present[i] = true
	}
	return t.AddScalarMask(name, vals, present)
}

// AddScalarMask adds a scalar column. Row i has a value only if
// present[i] is true.
func (t *Table) AddScalarMask(name string, vals []float64, present []bool) *Table {
	if len(present) != len(vals) {
		panic(fmt.Sprintf("tabular: column %q has %d values but %d presence bits", name, len(vals), len(present)))
	}
	c := memColumn{Column: Column{name, Scalar, "float64"}, scalars: vals, present: present}
	return t.add(c, len(vals))
}

// AddSeq adds a sequence column. A nil entry marks a row where the
// sequence is absent; a non-nil empty slice is present and empty.
func (t *Table) AddSeq(name string, vals [][]float64) *Table {
	c := memColumn{Column: Column{name, Sequence, "[]float64"}, seqs: vals}
	return t.add(c, len(vals))
}

func (t *Table) Entries() int64 {
	if t.rows < 0 {
		return 0
	}
	return t.rows
}

func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.Column
	}
	return cols
}

func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, &DataAccessError{"column", name, ErrNoColumn}
	}
	return t.cols[i].Column, nil
}

func (t *Table) Project(name string, h *hbook.H1D) error {
	return project(t, name, h)
}

func (t *Table) Scan(names []string, fn func(Row) error) error {
	if _, err := bind(t, names); err != nil {
		return err
	}
	row := &memRow{cols: make([]*memColumn, len(names))}
	for i, name := range names {
		row.cols[i] = &t.cols[t.index[name]]
	}
	for row.entry = 0; row.entry < t.Entries(); row.entry++ {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

type memRow struct {
	entry int64
	cols  []*memColumn
}

func (r *memRow) Entry() int64 {
	return r.entry
}

func (r *memRow) Float(i int) (float64, bool) {
	c := r.cols[i]
	if c.Kind != Scalar || !c.present[r.entry] {
		return 0, false
	}
	return c.scalars[r.entry], true
}

func (r *memRow) Seq(i int) ([]float64, bool) {
	c := r.cols[i]
	if c.Kind != Sequence || c.seqs[r.entry] == nil {
		return nil, false
	}
	return c.seqs[r.entry], true
}
