// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reduce

import (
	"fmt"
	"math"

	"github.com/bnb-tools/plotvars/tabular"
	"go-hep.org/x/hep/hbook"
)

const (
	// SpeedOfLight is c in cm/ns, the units of the position and
	// time columns.
	SpeedOfLight = 29.9792458

	// BunchSpacing is the beam bunch period in ns.
	BunchSpacing = 18.831

	// SentinelTime is the upper bound of placeholder times that
	// mark a missing measurement.
	SentinelTime = -900
)

func basicHist(src tabular.Source, name string, b Binning) (*hbook.H1D, error) {
	h := b.hist(name)
	if err := src.Project(name, h); err != nil {
		return nil, err
	}
	return h, nil
}

func sumEntryHist(src tabular.Source, name string, b Binning) (*hbook.H1D, error) {
	c, err := src.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != tabular.Sequence {
		return nil, &tabular.DataAccessError{Op: "bind", Name: name, Err: fmt.Errorf("%w: %s is not a sequence", tabular.ErrColumnKind, c.Type)}
	}

	h := b.hist("sum_" + name)
	err = src.Scan([]string{name}, func(r tabular.Row) error {
		if seq, ok := r.Seq(0); ok {
			h.Fill(float64(len(seq)), 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Fold maps t into [0, BunchSpacing).
func Fold(t float64) float64 {
	return t - math.Floor(t/BunchSpacing)*BunchSpacing
}

// scanTimes calls fn with the single-precision time and position of
// every row. Absent values read as zero and clear present.
func scanTimes(src tabular.Source, varSpec string, fn func(t, z float64, present bool)) error {
	timeCol, posCol, err := SplitPair(varSpec)
	if err != nil {
		return err
	}
	for _, name := range []string{timeCol, posCol} {
		c, err := src.Column(name)
		if err != nil {
			return err
		}
		if c.Kind != tabular.Scalar {
			return &tabular.DataAccessError{Op: "bind", Name: name, Err: fmt.Errorf("%w: %s is not a scalar", tabular.ErrColumnKind, c.Type)}
		}
	}
	return src.Scan([]string{timeCol, posCol}, func(r tabular.Row) error {
		t, tok := r.Float(0)
		z, zok := r.Float(1)
		fn(float64(float32(t)), float64(float32(z)), tok && zok)
		return nil
	})
}

func compensatedMergedHist(src tabular.Source, varSpec string, b Binning) (*hbook.H1D, error) {
	h := b.hist("compensated_merged_time")
	err := scanTimes(src, varSpec, func(t, z float64, _ bool) {
		if t == 0 || z == 0 {
			return
		}
		merged := t - z/SpeedOfLight
		if t > SentinelTime {
			// Folds the raw time: the correction above is
			// overwritten for every non-sentinel row.
			merged = Fold(t)
		}
		h.Fill(merged, 1)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func compensatedFoldedHist(src tabular.Source, varSpec string, b Binning) (*hbook.H1D, error) {
	h := b.hist("compensated_folded_time")
	err := scanTimes(src, varSpec, func(t, z float64, present bool) {
		if !present || t <= SentinelTime {
			return
		}
		h.Fill(Fold(t-z/SpeedOfLight), 1)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}
