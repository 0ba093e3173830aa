// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package foldchart draws the constant folding charts.
//
// Each chart is built from a table shaped by package foldtab and
// rendered as a PNG with gonum.org/v1/plot.
package foldchart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/foldperf/foldperf/chartfs"
	"golang.org/x/net/context"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultDPI is the resolution charts are rendered at unless the
// caller asks for another.
const DefaultDPI = 300

// File names of the charts.
const (
	EnabledVsDisabledFile = "plot_enabled_vs_disabled.png"
	DepthImpactFile       = "plot_depth_impact.png"
	LoopImpactFile        = "plot_loop_impact.png"
)

const timeLabel = "Execution Time (µs)"

// A Chart is a plot ready to be rendered.
type Chart struct {
	// Name is the file name the chart is saved as.
	Name string

	Plot *plot.Plot

	// Width and Height are the size of the rendered image.
	Width, Height vg.Length
}

// newPlot returns a plot with the common styling: large title and
// axis labels and a horizontal grid.
func newPlot(title, xLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = 20
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = 16
	p.Y.Label.Text = timeLabel
	p.Y.Label.TextStyle.Font.Size = 16
	p.X.Tick.Label.Font.Size = 12
	p.Y.Tick.Label.Font.Size = 12

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{0xdd}
	p.Add(grid)
	return p
}

// WritePNG renders c as a PNG image at the given resolution.
func (c *Chart) WritePNG(w io.Writer, dpi int) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	img := vgimg.NewWith(vgimg.UseWH(c.Width, c.Height),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))
	c.Plot.Draw(draw.New(img))
	_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}

// Save renders c and stores it in fs under c.Name.
func (c *Chart) Save(ctx context.Context, fs chartfs.FS, dpi int) error {
	w, err := fs.NewWriter(ctx, c.Name, chartfs.ContentType(c.Name))
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	if err := c.WritePNG(w, dpi); err != nil {
		w.CloseWithError(err)
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}
