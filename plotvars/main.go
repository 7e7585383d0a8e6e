// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command plotvars draws histograms of variables in a ROOT tree.
//
// plotvars reads a plot configuration file with one plot per line:
//
//	"<vars>" <xlow> <xhigh> <bins> "<xlabel>" "<ylabel>" "<title>" "<output>" "<strategy>"
//
// For each line it reduces the named variables of the tree with the
// named strategy and writes the histogram to output. The image format
// follows the output extension (.png, .pdf, .svg, ...). Blank lines
// and lines starting with # are ignored. A line that cannot be parsed
// or plotted is reported and skipped.
//
// The strategies are:
//
//	basicHist              histogram of a column's values
//	sumEntryHist           histogram of the length of a sequence column
//	compensatedMergedHist  "time z": times folded into one 18.831 ns
//	                       bunch window, with the historical handling
//	                       of the time-of-flight correction
//	compensatedFoldedHist  "time z": time-of-flight corrected times
//	                       folded into one bunch window
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bnb-tools/plotvars/internal/status"
	"github.com/bnb-tools/plotvars/reduce"
	"github.com/bnb-tools/plotvars/render"
	"github.com/bnb-tools/plotvars/tabular"
)

func main() {
	log.SetPrefix("plotvars: ")
	log.SetFlags(0)

	var (
		flagVerbose    = flag.Bool("v", false, "print a summary of each histogram")
		flagStrategies = flag.Bool("strategies", false, "list the reduction strategies and exit")
		flagStatus     = flag.String("status", "auto", "status line `mode`: auto, on or off")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input.root> <config.txt> <tree>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagStrategies {
		for _, name := range reduce.Names() {
			fmt.Println(name)
		}
		return
	}
	if flag.NArg() < 3 {
		flag.Usage()
		os.Exit(1)
	}
	dataPath, cfgPath, treeName := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	rep, err := status.New(os.Stderr, *flagStatus)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := os.Open(cfgPath)
	if err != nil {
		log.Fatalf("could not open config file: %v", err)
	}
	defer cfg.Close()

	f, err := tabular.Open(dataPath)
	if err != nil {
		log.Fatalf("could not open input ROOT file: %v", err)
	}
	defer f.Close()

	d := &driver{
		tree: func() (tabular.Source, error) {
			t, err := f.Tree(treeName)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
		render: render.NewChart(),
		log:    log.New(rep, "plotvars: ", 0),
		status: rep,
	}
	if *flagVerbose {
		d.summary = os.Stdout
	}

	if err := d.run(cfg, cfgPath); err != nil {
		f.Close()
		log.Fatalf("reading %s: %v", cfgPath, err)
	}
	log.Printf("%d plotted, %d skipped", d.plotted, d.skipped)
}
