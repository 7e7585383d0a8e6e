// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reduce turns columns of per-event data into 1-D histograms.
//
// Each reduction is a Strategy. The set of strategies is fixed; a
// strategy is found by its exact, case-sensitive name with Lookup.
package reduce

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bnb-tools/plotvars/tabular"
	"go-hep.org/x/hep/hbook"
)

// Strategy is a named reduction from a tabular.Source to a histogram.
type Strategy int

const (
	// BasicHist histograms the raw values of one column using the
	// source's bulk projection.
	BasicHist Strategy = iota

	// SumEntryHist histograms the length of a sequence column,
	// one sample per row.
	SumEntryHist

	// CompensatedMergedHist histograms event times folded into one
	// bunch window. It reproduces the historical behavior exactly:
	// the fold is applied to the raw time, discarding the
	// time-of-flight correction, and exact zeros are dropped.
	CompensatedMergedHist

	// CompensatedFoldedHist folds the time-of-flight corrected
	// time into one bunch window. Sentinel and absent times are
	// dropped; zeros are kept.
	CompensatedFoldedHist

	numStrategies
)

var strategyNames = [numStrategies]string{
	BasicHist:             "basicHist",
	SumEntryHist:          "sumEntryHist",
	CompensatedMergedHist: "compensatedMergedHist",
	CompensatedFoldedHist: "compensatedFoldedHist",
}

func (s Strategy) String() string {
	if s < 0 || s >= numStrategies {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrVarSpec         = errors.New("bad variable spec")
	ErrBinning         = errors.New("bad binning")
)

// Lookup returns the strategy called name.
func Lookup(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return Strategy(s), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}

// Names returns the names of all strategies.
func Names() []string {
	return append([]string(nil), strategyNames[:]...)
}

// Binning gives the fixed bins of a histogram: Bins equal-width bins
// spanning [Low, High).
type Binning struct {
	Bins      int
	Low, High float64
}

// Check reports whether b describes a usable histogram.
func (b Binning) Check() error {
	switch {
	case b.Bins <= 0:
		return fmt.Errorf("%w: %d bins", ErrBinning, b.Bins)
	case math.IsNaN(b.Low) || math.IsInf(b.Low, 0) || math.IsNaN(b.High) || math.IsInf(b.High, 0):
		return fmt.Errorf("%w: range [%g, %g) is not finite", ErrBinning, b.Low, b.High)
	case b.Low >= b.High:
		return fmt.Errorf("%w: empty range [%g, %g)", ErrBinning, b.Low, b.High)
	}
	return nil
}

func (b Binning) hist(name string) *hbook.H1D {
	h := hbook.NewH1D(b.Bins, b.Low, b.High)
	h.Annotation()["name"] = name
	return h
}

// Reduce applies s to the columns named by varSpec in src. The
// returned histogram belongs to the caller.
func (s Strategy) Reduce(src tabular.Source, varSpec string, b Binning) (*hbook.H1D, error) {
	if err := b.Check(); err != nil {
		return nil, err
	}
	switch s {
	case BasicHist:
		return basicHist(src, varSpec, b)
	case SumEntryHist:
		return sumEntryHist(src, varSpec, b)
	case CompensatedMergedHist:
		return compensatedMergedHist(src, varSpec, b)
	case CompensatedFoldedHist:
		return compensatedFoldedHist(src, varSpec, b)
	}
	return nil, fmt.Errorf("%w %v", ErrUnknownStrategy, s)
}

// SplitPair splits a two-column variable spec of the form "a b". The
// separator is exactly one ASCII space; anything else is rejected.
func SplitPair(varSpec string) (first, second string, err error) {
	fields := strings.Split(varSpec, " ")
	if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
		return "", "", fmt.Errorf("%w %q: want two column names separated by one space", ErrVarSpec, varSpec)
	}
	return fields[0], fields[1], nil
}
