// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command listbranches prints the branches of a tree in a ROOT file.
//
// Usage:
//
//	listbranches [-l] [file] [tree]
//
// file defaults to myfile.root and tree to treeName. With -l, each
// branch is followed by the types of its leaves.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bnb-tools/plotvars/tabular"
)

func main() {
	log.SetPrefix("listbranches: ")
	log.SetFlags(0)

	flagLeaves := flag.Bool("l", false, "also print leaf types")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file] [tree]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	path, tree := "myfile.root", "treeName"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		tree = flag.Arg(1)
	}

	if err := listBranches(os.Stdout, path, tree, *flagLeaves); err != nil {
		log.Print(err)
	}
}

func listBranches(w io.Writer, path, tree string, leaves bool) error {
	f, err := tabular.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file %s: %w", path, err)
	}
	defer f.Close()

	t, err := f.Tree(tree)
	if err != nil {
		if trees := f.Trees(); len(trees) > 0 {
			return fmt.Errorf("tree %s not found in file %s (have %s)", tree, path, strings.Join(trees, ", "))
		}
		return fmt.Errorf("tree %s not found in file %s", tree, path)
	}

	fmt.Fprintf(w, "Branches in tree '%s':\n", tree)
	for _, b := range t.Branches() {
		if leaves {
			fmt.Fprintf(w, "%s\t%s\n", b, strings.Join(t.Leaves(b), " "))
		} else {
			fmt.Fprintln(w, b)
		}
	}
	return nil
}
