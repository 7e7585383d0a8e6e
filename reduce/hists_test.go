// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reduce

import (
	"errors"
	"math"
	"testing"

	"github.com/bnb-tools/plotvars/tabular"
	"github.com/google/go-cmp/cmp"
	"go-hep.org/x/hep/hbook"
)

func bins(h *hbook.H1D) []float64 {
	vals := make([]float64, h.Len())
	for i := range vals {
		vals[i] = h.Value(i)
	}
	return vals
}

func TestBasicHist(t *testing.T) {
	xs := []float64{0.1, 0.2, 1.7, 2.5, 2.5, 3.9, -1, 7}
	src := tabular.NewTable().AddScalar("energy", xs)

	h, err := BasicHist.Reduce(src, "energy", Binning{4, 0, 4})
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != "energy" {
		t.Errorf("name = %q, want energy", h.Name())
	}

	// Tally the same values by hand.
	want := make([]float64, 4)
	for _, x := range xs {
		if x >= 0 && x < 4 {
			want[int(x)]++
		}
	}
	if diff := cmp.Diff(want, bins(h)); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}
	if h.Entries() != int64(len(xs)) {
		t.Errorf("entries = %d, want %d", h.Entries(), len(xs))
	}

	_, err = BasicHist.Reduce(src, "momentum", Binning{4, 0, 4})
	if !errors.Is(err, tabular.ErrNoColumn) {
		t.Errorf("missing column error = %v, want ErrNoColumn", err)
	}
}

func TestSumEntryHist(t *testing.T) {
	src := tabular.NewTable().AddSeq("n", [][]float64{
		{},
		{1, 2, 3},
		{},
		{4, 5},
		{6},
	})
	h, err := SumEntryHist.Reduce(src, "n", Binning{4, 0, 4})
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != "sum_n" {
		t.Errorf("name = %q, want sum_n", h.Name())
	}
	if diff := cmp.Diff([]float64{2, 1, 1, 1}, bins(h)); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}
}

func TestSumEntryHistAbsent(t *testing.T) {
	seqs := [][]float64{{1}, nil, {1, 2}, nil, nil, {}}
	src := tabular.NewTable().AddSeq("hits", seqs)
	h, err := SumEntryHist.Reduce(src, "hits", Binning{10, 0, 10})
	if err != nil {
		t.Fatal(err)
	}
	present := 0
	for _, s := range seqs {
		if s != nil {
			present++
		}
	}
	if h.Entries() != int64(present) {
		t.Errorf("entries = %d, want %d present rows", h.Entries(), present)
	}
}

func TestSumEntryHistScalar(t *testing.T) {
	src := tabular.NewTable().AddScalar("x", []float64{1, 2})
	_, err := SumEntryHist.Reduce(src, "x", Binning{2, 0, 2})
	if !errors.Is(err, tabular.ErrColumnKind) {
		t.Errorf("error = %v, want ErrColumnKind", err)
	}
}

var timeRows = []struct{ t, z float64 }{
	{10, 100},
	{0, 50},    // skipped: zero time
	{25.5, 0},  // skipped: zero position
	{25.5, 100},
	{-999, 20}, // sentinel
	{40.25, 3.5},
	{-3.75, 12},
}

func timeTable() *tabular.Table {
	ts := make([]float64, len(timeRows))
	zs := make([]float64, len(timeRows))
	for i, r := range timeRows {
		ts[i], zs[i] = r.t, r.z
	}
	return tabular.NewTable().AddScalar("time", ts).AddScalar("z", zs)
}

func TestCompensatedMergedHist(t *testing.T) {
	b := Binning{1020, -1000, 20}
	h, err := CompensatedMergedHist.Reduce(timeTable(), "time z", b)
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != "compensated_merged_time" {
		t.Errorf("name = %q, want compensated_merged_time", h.Name())
	}

	want := hbook.NewH1D(b.Bins, b.Low, b.High)
	skipped := 0
	for _, r := range timeRows {
		switch {
		case r.t == 0 || r.z == 0:
			skipped++
		case r.t <= -900:
			want.Fill(r.t-r.z/29.9792458, 1)
		default:
			want.Fill(r.t-math.Floor(r.t/18.831)*18.831, 1)
		}
	}
	if got, want := h.Entries(), int64(len(timeRows)-skipped); got != want {
		t.Errorf("entries = %d, want %d", got, want)
	}
	if diff := cmp.Diff(bins(want), bins(h)); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}
}

func TestCompensatedFoldVariants(t *testing.T) {
	src := tabular.NewTable().AddScalar("time", []float64{25.5}).AddScalar("z", []float64{100})
	b := Binning{19, 0, 19}

	// 25.5 folds to 6.669; 25.5 - 100/c = 22.164 folds to 3.333.
	merged, err := CompensatedMergedHist.Reduce(src, "time z", b)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Value(6) != 1 {
		t.Errorf("merged: bin 6 = %v, want 1; bins %v", merged.Value(6), bins(merged))
	}
	folded, err := CompensatedFoldedHist.Reduce(src, "time z", b)
	if err != nil {
		t.Fatal(err)
	}
	if folded.Value(3) != 1 {
		t.Errorf("folded: bin 3 = %v, want 1; bins %v", folded.Value(3), bins(folded))
	}
	if folded.Name() != "compensated_folded_time" {
		t.Errorf("folded name = %q", folded.Name())
	}
}

func TestCompensatedFoldedHist(t *testing.T) {
	// Zeros are kept; sentinel and absent rows are dropped.
	src := tabular.NewTable().
		AddScalarMask("time", []float64{0, 5, -950, 7, 8}, []bool{true, true, true, false, true}).
		AddScalar("z", []float64{0, 0, 10, 10, 0})
	h, err := CompensatedFoldedHist.Reduce(src, "time z", Binning{19, 0, 19})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[int]float64{0: 1, 5: 1, 8: 1}, nonEmpty(h)); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}
}

func nonEmpty(h *hbook.H1D) map[int]float64 {
	m := make(map[int]float64)
	for i, v := range bins(h) {
		if v != 0 {
			m[i] = v
		}
	}
	return m
}

func TestCompensatedErrors(t *testing.T) {
	src := timeTable()
	for _, spec := range []string{"time", "time  z", "time z extra"} {
		if _, err := CompensatedMergedHist.Reduce(src, spec, Binning{10, 0, 20}); !errors.Is(err, ErrVarSpec) {
			t.Errorf("spec %q: error = %v, want ErrVarSpec", spec, err)
		}
	}
	if _, err := CompensatedMergedHist.Reduce(src, "time depth", Binning{10, 0, 20}); !errors.Is(err, tabular.ErrNoColumn) {
		t.Errorf("missing column: error = %v, want ErrNoColumn", err)
	}
	seq := tabular.NewTable().AddSeq("time", [][]float64{{1}}).AddScalar("z", []float64{1})
	if _, err := CompensatedMergedHist.Reduce(seq, "time z", Binning{10, 0, 20}); !errors.Is(err, tabular.ErrColumnKind) {
		t.Errorf("sequence column: error = %v, want ErrColumnKind", err)
	}
}

func TestReduceBadBinning(t *testing.T) {
	src := tabular.NewTable().AddScalar("x", []float64{1})
	if _, err := BasicHist.Reduce(src, "x", Binning{0, 0, 1}); !errors.Is(err, ErrBinning) {
		t.Errorf("error = %v, want ErrBinning", err)
	}
}
