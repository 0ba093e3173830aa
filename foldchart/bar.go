// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package foldchart

import (
	"errors"
	"image/color"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/foldperf/foldperf/foldtab"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// EnabledVsDisabled returns a grouped bar chart of time by benchmark
// scenario, with one bar per status. t must be shaped by
// foldtab.EnabledVsDisabled.
func EnabledVsDisabled(t *table.Table) (*Chart, error) {
	if t.Len() == 0 {
		return nil, errors.New("no enabled/disabled results to plot")
	}
	benchmarks := t.MustColumn(foldtab.ColBenchmark).([]string)
	statuses := t.MustColumn(foldtab.ColStatus).([]string)
	times := t.MustColumn(foldtab.ColTime).([]float64)
	lows := t.MustColumn(foldtab.ColLow).([]float64)
	highs := t.MustColumn(foldtab.ColHigh).([]float64)

	// Categories and series, in order of first appearance.
	var cats, series []string
	catIndex := make(map[string]int)
	seriesIndex := make(map[string]int)
	for i := range benchmarks {
		if _, ok := catIndex[benchmarks[i]]; !ok {
			catIndex[benchmarks[i]] = len(cats)
			cats = append(cats, benchmarks[i])
		}
		if _, ok := seriesIndex[statuses[i]]; !ok {
			seriesIndex[statuses[i]] = len(series)
			series = append(series, statuses[i])
		}
	}
	values := make([]plotter.Values, len(series))
	errs := make([]*barErrors, len(series))
	for i := range values {
		values[i] = make(plotter.Values, len(cats))
		errs[i] = &barErrors{
			lows:  make([]float64, len(cats)),
			highs: make([]float64, len(cats)),
		}
	}
	for i := range benchmarks {
		s, c := seriesIndex[statuses[i]], catIndex[benchmarks[i]]
		values[s][c] = times[i]
		errs[s].lows[c] = lows[i]
		errs[s].highs[c] = highs[i]
	}

	p := newPlot("Constant Folding Performance: Enabled vs. Disabled", "Benchmark Scenario")

	// Brewer palettes start at three colors.
	n := len(series) + 1
	if n < 3 {
		n = 3
	}
	pal, err := brewer.GetPalette(brewer.TypeSequential, "YlGnBu", n)
	if err != nil {
		return nil, err
	}
	colors := pal.Colors()

	p.Legend.Add("Constant Folding")
	barWidth := vg.Points(60)
	groupWidth := barWidth * vg.Length(len(series)-1)
	for i, s := range series {
		bc, err := plotter.NewBarChart(values[i], barWidth)
		if err != nil {
			return nil, err
		}
		bc.Offset = barWidth*vg.Length(i) - groupWidth/2
		bc.Color = colors[len(colors)-1-i]
		bc.LineStyle.Width = 0
		errs[i].offset = bc.Offset
		errs[i].LineStyle = draw.LineStyle{Color: color.Gray{0x40}, Width: vg.Points(1.5)}
		p.Add(bc, errs[i])
		p.Legend.Add(s, bc)
	}
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = 14

	p.NominalX(cats...)
	p.X.Tick.Label.Rotation = math.Pi / 12
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YTop
	// One unit per category, so the offset bars stay inside the
	// plot area, and room above the tallest bar for the legend.
	p.X.Min = -0.5
	p.X.Max = float64(len(cats)) - 0.5
	p.Y.Min = 0
	p.Y.Max *= 1.15

	return &Chart{
		Name:   EnabledVsDisabledFile,
		Plot:   p,
		Width:  14 * vg.Inch,
		Height: 8 * vg.Inch,
	}, nil
}

// barErrors draws the low/high bounds of one bar series as capped
// whiskers. Bars are shifted in canvas units, so the whiskers are
// too.
type barErrors struct {
	lows, highs []float64
	offset      vg.Length
	draw.LineStyle
}

const whiskerCap = vg.Length(16)

func (e *barErrors) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for i := range e.lows {
		if e.lows[i] == 0 && e.highs[i] == 0 {
			continue
		}
		x := trX(float64(i)) + e.offset
		lo, hi := trY(e.lows[i]), trY(e.highs[i])
		c.StrokeLine2(e.LineStyle, x, lo, x, hi)
		c.StrokeLine2(e.LineStyle, x-whiskerCap/2, lo, x+whiskerCap/2, lo)
		c.StrokeLine2(e.LineStyle, x-whiskerCap/2, hi, x+whiskerCap/2, hi)
	}
}

// DataRange implements plot.DataRanger.
func (e *barErrors) DataRange() (xmin, xmax, ymin, ymax float64) {
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for i := range e.lows {
		ymin = math.Min(ymin, e.lows[i])
		ymax = math.Max(ymax, e.highs[i])
	}
	return 0, float64(len(e.lows) - 1), ymin, ymax
}
