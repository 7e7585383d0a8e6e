// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws 1-D histograms to image files.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

// Unset is the axis lower bound that means "keep the automatic
// range".
const Unset = -999

// Options control how a histogram is drawn.
type Options struct {
	XLabel, YLabel, Title string

	// Output is the image path. Its extension selects the format.
	Output string

	// If XRange is set, the X axis is clamped to [XMin, XMax].
	XRange     bool
	XMin, XMax float64
}

// AxisRange returns o with the X axis clamped to [min, max], unless
// min is Unset.
func (o Options) AxisRange(min, max float64) Options {
	if min != Unset {
		o.XRange, o.XMin, o.XMax = true, min, max
	}
	return o
}

// A Renderer draws a histogram. Render does not modify h.
type Renderer interface {
	Render(h *hbook.H1D, o Options) error
}

var ErrFormat = errors.New("unsupported image format")

var lineColor = color.RGBA{R: 255, A: 255}

// Chart is the standard Renderer. SVG output is drawn with go-gg;
// every other format with hplot.
type Chart struct {
	// Width and Height give the size of hplot images.
	Width, Height vg.Length

	// SVGWidth and SVGHeight give the size of SVG images in
	// pixels.
	SVGWidth, SVGHeight int
}

// NewChart returns a Chart with an 800x600 canvas.
func NewChart() *Chart {
	return &Chart{
		Width:     8 * vg.Inch,
		Height:    6 * vg.Inch,
		SVGWidth:  800,
		SVGHeight: 600,
	}
}

func (c *Chart) Render(h *hbook.H1D, o Options) error {
	switch ext := strings.ToLower(filepath.Ext(o.Output)); ext {
	case ".svg":
		return c.renderSVG(h, o)
	case ".png", ".jpg", ".jpeg", ".pdf", ".eps", ".tif", ".tiff":
		return c.renderHPlot(h, o)
	default:
		return fmt.Errorf("%s: %w %q", o.Output, ErrFormat, ext)
	}
}

func (c *Chart) renderHPlot(h *hbook.H1D, o Options) error {
	p := hplot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel

	hh := hplot.NewH1D(h)
	hh.FillColor = nil
	hh.LineStyle.Color = lineColor
	hh.LineStyle.Width = vg.Points(2)
	hh.Infos.Style = hplot.HInfoSummary
	p.Add(hh)

	// Add computes the data range, so the override must follow it.
	if o.XRange {
		p.X.Min, p.X.Max = o.XMin, o.XMax
	}
	return p.Save(c.Width, c.Height, o.Output)
}

// renderSVG draws h as a step outline. Each bin contributes its left
// edge; the last count is repeated at the right edge to close the
// final step.
func (c *Chart) renderSVG(h *hbook.H1D, o Options) error {
	n := h.Len()
	width := (h.XMax() - h.XMin()) / float64(n)
	edges := make([]float64, n+1)
	counts := make([]float64, n+1)
	for i := range edges {
		edges[i] = h.XMin() + float64(i)*width
		if i < n {
			counts[i] = h.Value(i)
		} else {
			counts[i] = counts[i-1]
		}
	}
	tab := new(table.Builder).Add("x", edges).Add("count", counts).Done()

	p := gg.NewPlot(tab)
	xs := gg.NewLinearScaler()
	if o.XRange {
		xs.SetMin(o.XMin).SetMax(o.XMax)
	}
	p.SetScale("x", xs)
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	p.Add(gg.LayerSteps{
		LayerPaths: gg.LayerPaths{X: "x", Y: "count", Color: p.Const(lineColor)},
		Step:       gg.StepHV,
	})
	p.Add(gg.Title(o.Title), gg.AxisLabel("x", o.XLabel), gg.AxisLabel("y", o.YLabel))

	f, err := os.Create(o.Output)
	if err != nil {
		return err
	}
	if err := p.WriteSVG(f, c.SVGWidth, c.SVGHeight); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
