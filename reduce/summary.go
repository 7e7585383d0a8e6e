// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reduce

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"go-hep.org/x/hep/hbook"
)

// Summary describes the contents of a histogram.
type Summary struct {
	Name string

	// Entries is the number of samples filled, including those
	// outside the histogram range. InRange of them landed in a
	// bin and Outside in the underflow or overflow.
	Entries, InRange, Outside int64

	// Mean and StdDev are computed from bin centers weighted by
	// bin contents. They are NaN for a histogram with no in-range
	// entries.
	Mean, StdDev float64
}

// Summarize computes a Summary of h.
func Summarize(h *hbook.H1D) Summary {
	n := h.Len()
	width := (h.XMax() - h.XMin()) / float64(n)
	centers := []float64{h.XMin() + width/2}
	if n > 1 {
		centers = vec.Linspace(h.XMin()+width/2, h.XMax()-width/2, n)
	}

	s := Summary{Name: h.Name(), Entries: h.Entries()}
	weights := make([]float64, n)
	total := 0.0
	for i := range weights {
		weights[i] = h.Value(i)
		total += weights[i]
		s.InRange += h.Binning.Bins[i].Entries()
	}
	s.Outside = s.Entries - s.InRange

	if total == 0 {
		s.Mean, s.StdDev = math.NaN(), math.NaN()
		return s
	}
	s.Mean = stats.Sample{Xs: centers, Weights: weights}.Mean()
	variance := 0.0
	for i, x := range centers {
		variance += weights[i] * (x - s.Mean) * (x - s.Mean)
	}
	s.StdDev = math.Sqrt(variance / total)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%s: entries=%d in-range=%d outside=%d mean=%.4g stddev=%.4g",
		s.Name, s.Entries, s.InRange, s.Outside, s.Mean, s.StdDev)
}
