// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plotconf parses plot configuration files.
//
// A configuration file has one plot per line:
//
//	"<vars>" <xlow> <xhigh> <bins> "<xlabel>" "<ylabel>" "<title>" "<output>" "<strategy>"
//
// Fields are separated by white space and may be quoted with shell
// quoting rules, so quoted fields can contain spaces. Blank lines and
// lines starting with # are comments.
package plotconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// PlotSpec is one parsed configuration line.
type PlotSpec struct {
	// Vars names the column, or the two space-separated columns,
	// to reduce.
	Vars string

	XLow, XHigh float64
	Bins        int

	XLabel, YLabel, Title string

	// Output is the path of the image to write.
	Output string

	// Strategy names the reduction to apply.
	Strategy string
}

// NumFields is the number of fields on a plot line.
const NumFields = 9

var ErrFieldCount = errors.New("wrong number of fields")

// FieldError reports a field that could not be parsed.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("bad %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsComment reports whether line carries no plot.
func IsComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || line[0] == '#'
}

// ParseLine parses a single plot line. Either every field parses or
// ParseLine returns an error and no PlotSpec.
func ParseLine(line string) (*PlotSpec, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(words) != NumFields {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrFieldCount, len(words), NumFields)
	}

	xlow, err := strconv.ParseFloat(words[1], 64)
	if err != nil {
		return nil, &FieldError{"xlow", words[1], err}
	}
	xhigh, err := strconv.ParseFloat(words[2], 64)
	if err != nil {
		return nil, &FieldError{"xhigh", words[2], err}
	}
	bins, err := strconv.Atoi(words[3])
	if err != nil {
		return nil, &FieldError{"bins", words[3], err}
	}
	if bins <= 0 {
		return nil, &FieldError{"bins", words[3], errors.New("must be positive")}
	}

	return &PlotSpec{
		Vars:     words[0],
		XLow:     xlow,
		XHigh:    xhigh,
		Bins:     bins,
		XLabel:   words[4],
		YLabel:   words[5],
		Title:    words[6],
		Output:   words[7],
		Strategy: words[8],
	}, nil
}

// Scanner reads plot lines from a configuration file one at a time,
// skipping comments.
type Scanner struct {
	s    *bufio.Scanner
	line int
	text string
}

// maxLine bounds the length of a single configuration line.
const maxLine = math.MaxInt32

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Scanner{s: s}
}

// Scan advances to the next non-comment line. It returns false at the
// end of the input or on a read error.
func (s *Scanner) Scan() bool {
	for s.s.Scan() {
		s.line++
		s.text = strings.TrimRight(s.s.Text(), "\r")
		if !IsComment(s.text) {
			return true
		}
	}
	return false
}

// Line returns the 1-based line number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Text returns the current line.
func (s *Scanner) Text() string {
	return s.text
}

// Spec parses the current line.
func (s *Scanner) Spec() (*PlotSpec, error) {
	return ParseLine(s.text)
}

// Err returns the first read error, if any.
func (s *Scanner) Err() error {
	return s.s.Err()
}
