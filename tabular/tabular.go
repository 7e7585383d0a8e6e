// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabular provides read access to per-event tabular data:
// named record streams (trees) made of named columns (branches).
//
// A Source exposes two ways of reading a column. Project bins every
// value of a column into a histogram without the caller iterating
// rows. Scan binds a set of columns and calls a function once per
// row, in the source's native row order. Bindings made by Scan live
// only for the duration of that call.
package tabular

import (
	"errors"
	"fmt"
	"strconv"

	"go-hep.org/x/hep/hbook"
)

// Kind classifies the values held by a column.
type Kind int

const (
	// Unsupported columns hold values that cannot be read as
	// numbers, such as strings or nested objects.
	Unsupported Kind = iota

	// Scalar columns hold one number per row.
	Scalar

	// Sequence columns hold a variable-length list of numbers per
	// row.
	Sequence
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	}
	return "unsupported"
}

// Column describes one named column of a Source.
type Column struct {
	Name string
	Kind Kind

	// Type is the Go type the column is decoded into, for
	// display.
	Type string
}

// A Row is the current row of a Scan. Column indexes refer to the
// names passed to Scan. Values returned by a Row are only valid until
// the scan function returns.
type Row interface {
	// Entry returns the index of this row in the source.
	Entry() int64

	// Float returns the value of scalar column i and whether it
	// is present in this row.
	Float(i int) (float64, bool)

	// Seq returns the values of sequence column i and whether the
	// sequence is present in this row. A present sequence may be
	// empty.
	Seq(i int) ([]float64, bool)
}

// A Source is a single record stream.
type Source interface {
	// Entries returns the number of rows.
	Entries() int64

	// Columns returns all columns in declaration order.
	Columns() []Column

	// Column returns the named column. If there is no such
	// column, it returns a *DataAccessError wrapping ErrNoColumn.
	Column(name string) (Column, error)

	// Project fills h with every value of the named column. For
	// a sequence column each element is one sample.
	Project(name string, h *hbook.H1D) error

	// Scan binds the named columns and calls fn for every row in
	// order. Scan stops at and returns the first error from fn.
	Scan(names []string, fn func(Row) error) error
}

var (
	ErrNoTree     = errors.New("no such tree")
	ErrNoColumn   = errors.New("no such column")
	ErrColumnKind = errors.New("unsupported column type")
)

// DataAccessError records a failure to read a file, tree or column.
type DataAccessError struct {
	Op   string
	Name string
	Err  error
}

func (e *DataAccessError) Error() string {
	return e.Op + " " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// bind resolves names against s and checks that every column can be
// read as numbers.
func bind(s Source, names []string) ([]Column, error) {
	cols := make([]Column, len(names))
	for i, name := range names {
		c, err := s.Column(name)
		if err != nil {
			return nil, err
		}
		if c.Kind == Unsupported {
			return nil, &DataAccessError{"bind", name, fmt.Errorf("%w %s", ErrColumnKind, c.Type)}
		}
		cols[i] = c
	}
	return cols, nil
}

// project implements Source.Project in terms of Source.Scan.
func project(s Source, name string, h *hbook.H1D) error {
	c, err := s.Column(name)
	if err != nil {
		return err
	}
	return s.Scan([]string{name}, func(r Row) error {
		if c.Kind == Sequence {
			xs, _ := r.Seq(0)
			for _, x := range xs {
				h.Fill(x, 1)
			}
			return nil
		}
		if x, ok := r.Float(0); ok {
			h.Fill(x, 1)
		}
		return nil
	})
}
