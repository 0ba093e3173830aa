// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package foldchart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/foldperf/foldperf/foldtab"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	magma          = color.RGBA{0x8c, 0x29, 0x81, 0xff}
	mediumSeaGreen = color.RGBA{0x3c, 0xb3, 0x71, 0xff}
)

// DepthImpact returns a line chart of time against maximum folding
// depth, with a tick at every measured depth. t must be shaped by
// foldtab.DepthImpact.
func DepthImpact(t *table.Table) (*Chart, error) {
	p := newPlot("Impact of Constant Folding Depth on Performance", "Maximum Folding Depth")
	if err := addSeries(p, t, foldtab.ColDepth, magma); err != nil {
		return nil, fmt.Errorf("depth chart: %w", err)
	}
	return &Chart{
		Name:   DepthImpactFile,
		Plot:   p,
		Width:  12 * vg.Inch,
		Height: 7 * vg.Inch,
	}, nil
}

// LoopImpact returns a line chart of time against loop iteration
// count on a logarithmic x axis. t must be shaped by
// foldtab.LoopImpact.
func LoopImpact(t *table.Table) (*Chart, error) {
	p := newPlot("Performance Scaling with Loop Iterations", "Number of Iterations")
	if t.Len() > 0 {
		for _, n := range t.MustColumn(foldtab.ColIterations).([]int) {
			if n <= 0 {
				return nil, fmt.Errorf("loop chart: iteration count %d cannot be drawn on a log scale", n)
			}
		}
	}
	p.X.Scale = plot.LogScale{}
	if err := addSeries(p, t, foldtab.ColIterations, mediumSeaGreen); err != nil {
		return nil, fmt.Errorf("loop chart: %w", err)
	}
	return &Chart{
		Name:   LoopImpactFile,
		Plot:   p,
		Width:  12 * vg.Inch,
		Height: 7 * vg.Inch,
	}, nil
}

// interval is a series of points with error bars.
type interval struct {
	plotter.XYs
	plotter.YErrors
}

// addSeries draws time against the int column xCol as a line with
// markers and the low/high bounds as error bars. Each x value gets a
// tick.
func addSeries(p *plot.Plot, t *table.Table, xCol string, clr color.Color) error {
	if t.Len() == 0 {
		return fmt.Errorf("no results to plot")
	}
	xs := t.MustColumn(xCol).([]int)
	times := t.MustColumn(foldtab.ColTime).([]float64)
	lows := t.MustColumn(foldtab.ColLow).([]float64)
	highs := t.MustColumn(foldtab.ColHigh).([]float64)

	pts := interval{
		XYs:     make(plotter.XYs, len(xs)),
		YErrors: make(plotter.YErrors, len(xs)),
	}
	ticks := make([]plot.Tick, len(xs))
	for i, x := range xs {
		pts.XYs[i].X = float64(x)
		pts.XYs[i].Y = times[i]
		pts.YErrors[i].Low = times[i] - lows[i]
		pts.YErrors[i].High = highs[i] - times[i]
		ticks[i] = plot.Tick{Value: float64(x), Label: strconv.Itoa(x)}
	}

	line, points, err := plotter.NewLinePoints(pts.XYs)
	if err != nil {
		return err
	}
	line.LineStyle.Color = clr
	line.LineStyle.Width = vg.Points(3)
	points.GlyphStyle.Color = clr
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Radius = vg.Points(5)

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return err
	}
	bars.LineStyle.Color = clr

	p.Add(line, points, bars)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	return nil
}
