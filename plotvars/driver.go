// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"

	"github.com/bnb-tools/plotvars/internal/status"
	"github.com/bnb-tools/plotvars/plotconf"
	"github.com/bnb-tools/plotvars/reduce"
	"github.com/bnb-tools/plotvars/render"
	"github.com/bnb-tools/plotvars/tabular"
)

// driver plots every line of a configuration file against one tree.
// Lines are processed strictly in order, one at a time.
type driver struct {
	// tree fetches the tree to plot. It is called once per line.
	tree func() (tabular.Source, error)

	render render.Renderer
	log    *log.Logger
	status status.Reporter

	// If summary is non-nil, a summary of each plotted histogram
	// is written to it.
	summary io.Writer

	plotted, skipped int
}

// run plots each line of cfg. Bad lines are logged and skipped. It
// returns only errors reading cfg.
func (d *driver) run(cfg io.Reader, name string) error {
	defer d.status.Done()
	s := plotconf.NewScanner(cfg)
	for s.Scan() {
		d.status.Status("%s:%d: %s", name, s.Line(), s.Text())
		if err := d.plot(s); err != nil {
			d.log.Printf("%s:%d: %v", name, s.Line(), err)
			d.skipped++
			continue
		}
		d.plotted++
	}
	return s.Err()
}

func (d *driver) plot(s *plotconf.Scanner) error {
	spec, err := s.Spec()
	if err != nil {
		return fmt.Errorf("malformed line: %v: %s", err, s.Text())
	}
	strategy, err := reduce.Lookup(spec.Strategy)
	if err != nil {
		return err
	}
	src, err := d.tree()
	if err != nil {
		return err
	}

	h, err := strategy.Reduce(src, spec.Vars, reduce.Binning{Bins: spec.Bins, Low: spec.XLow, High: spec.XHigh})
	if err != nil {
		return fmt.Errorf("%v %q: %w", strategy, spec.Vars, err)
	}
	o := render.Options{
		XLabel: spec.XLabel,
		YLabel: spec.YLabel,
		Title:  spec.Title,
		Output: spec.Output,
	}.AxisRange(spec.XLow, spec.XHigh)
	var sum reduce.Summary
	if d.summary != nil {
		sum = reduce.Summarize(h)
	}
	if err := d.render.Render(h, o); err != nil {
		return err
	}
	if d.summary != nil {
		fmt.Fprintln(d.summary, sum)
	}
	return nil
}
