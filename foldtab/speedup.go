// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package foldtab

import (
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// A Speedup compares one benchmark scenario with constant folding
// enabled and disabled.
type Speedup struct {
	Benchmark         string
	Enabled, Disabled float64 // µs
}

// Ratio returns how many times faster the enabled run is.
func (s Speedup) Ratio() float64 {
	return s.Disabled / s.Enabled
}

// Speedups pairs the enabled and disabled rows of a table produced by
// EnabledVsDisabled. Scenarios missing either status are skipped.
// It also returns the geometric mean of the ratios, or NaN if there
// are none.
func Speedups(t *table.Table) ([]Speedup, float64) {
	benchmarks, statuses := stringCol(t, ColBenchmark), stringCol(t, ColStatus)
	times := floatCol(t, ColTime)

	type pair struct {
		enabled, disabled float64
		haveE, haveD      bool
	}
	var order []string
	pairs := make(map[string]*pair)
	for i, b := range benchmarks {
		p := pairs[b]
		if p == nil {
			p = new(pair)
			pairs[b] = p
			order = append(order, b)
		}
		if statuses[i] == Enabled {
			p.enabled, p.haveE = times[i], true
		} else {
			p.disabled, p.haveD = times[i], true
		}
	}

	var out []Speedup
	var ratios []float64
	for _, b := range order {
		p := pairs[b]
		if !p.haveE || !p.haveD {
			continue
		}
		s := Speedup{b, p.enabled, p.disabled}
		out = append(out, s)
		ratios = append(ratios, s.Ratio())
	}
	if len(ratios) == 0 {
		return out, math.NaN()
	}
	return out, stats.GeoMean(ratios)
}
