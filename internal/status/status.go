// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package status maintains a single updating status line on a
// terminal, interleaved with ordinary output.
package status

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// A Reporter is an io.Writer that can also display a transient status
// line. Ordinary writes clear the status line first.
type Reporter interface {
	io.Writer
	Status(format string, a ...interface{})
	Done()
}

// New returns a Reporter writing to f. mode is "on", "off" or "auto";
// "auto" shows a status line only if f is an interactive terminal.
func New(f *os.File, mode string) (Reporter, error) {
	switch mode {
	case "on":
		return &VT100{w: f}, nil
	case "off":
		return &Dumb{w: f}, nil
	case "auto":
		if os.Getenv("TERM") == "" || os.Getenv("TERM") == "dumb" || !terminal.IsTerminal(int(f.Fd())) {
			return &Dumb{w: f}, nil
		}
		return &VT100{w: f}, nil
	}
	return nil, fmt.Errorf("unknown status mode %q", mode)
}

// Dumb is a Reporter that drops status updates.
type Dumb struct {
	w io.Writer
}

func NewDumb(w io.Writer) *Dumb {
	return &Dumb{w}
}

func (r *Dumb) Status(format string, a ...interface{}) {}
func (r *Dumb) Done()                                  {}
func (r *Dumb) Write(data []byte) (int, error) {
	return r.w.Write(data)
}

// VT100 control sequences
const (
	resetLine = "\r\x1b[2K"
	wrapOff   = "\x1b[?7l"
	wrapOn    = "\x1b[?7h"
)

// VT100 is a Reporter for terminals that understand VT100 escapes.
type VT100 struct {
	w       io.Writer
	showing bool
}

func NewVT100(w io.Writer) *VT100 {
	return &VT100{w: w}
}

func (r *VT100) Status(format string, a ...interface{}) {
	fmt.Fprintf(r.w, "%s%s%s%s", resetLine, wrapOff, fmt.Sprintf(format, a...), wrapOn)
	r.showing = true
}

func (r *VT100) clear() {
	if r.showing {
		fmt.Fprint(r.w, resetLine)
		r.showing = false
	}
}

func (r *VT100) Write(data []byte) (int, error) {
	r.clear()
	return r.w.Write(data)
}

// Done removes the status line.
func (r *VT100) Done() {
	r.clear()
}
