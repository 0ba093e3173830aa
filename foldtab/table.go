// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package foldtab arranges constant-folding benchmark results into
// tables and derives the columns each chart is drawn from.
//
// Tables are github.com/aclements/go-gg/table Tables. FromResults
// produces the base table; EnabledVsDisabled, DepthImpact and
// LoopImpact each select the rows of one benchmark group and add the
// columns the corresponding chart needs.
package foldtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/foldperf/foldperf/critfmt"
)

// Benchmark groups produced by the constant folding benchmarks.
const (
	GroupEnabledVsDisabled = "constant_folding_enabled_vs_disabled"
	GroupMatrixInit        = "matrix_init_heavy"
	GroupDepth             = "constant_folding_depth_impact"
	GroupLoop              = "loop_iterations_impact"
)

// Column names. Times are in microseconds.
const (
	ColGroup      = "group"
	ColName       = "name"
	ColTime       = "time"
	ColLow        = "low"
	ColHigh       = "high"
	ColStatus     = "status"
	ColBenchmark  = "benchmark"
	ColDepth      = "depth"
	ColIterations = "iterations"
)

// FromResults returns a table with one row per result and the
// columns group, name, time, low and high, in input order.
func FromResults(rs []*critfmt.Result) *table.Table {
	groups := make([]string, len(rs))
	names := make([]string, len(rs))
	times := make([]float64, len(rs))
	lows := make([]float64, len(rs))
	highs := make([]float64, len(rs))
	for i, r := range rs {
		groups[i] = r.Group
		names[i] = r.Name
		times[i] = r.Time
		lows[i] = r.Low
		highs[i] = r.High
	}
	return new(table.Builder).
		Add(ColGroup, groups).
		Add(ColName, names).
		Add(ColTime, times).
		Add(ColLow, lows).
		Add(ColHigh, highs).
		Done()
}

// filterGroups returns the rows of t whose group is one of groups.
func filterGroups(t *table.Table, groups ...string) *table.Table {
	want := make(map[string]bool, len(groups))
	for _, g := range groups {
		want[g] = true
	}
	return table.Flatten(table.Filter(t, func(group string) bool {
		return want[group]
	}, ColGroup))
}

// stringCol returns column col of t, which must be a []string.
func stringCol(t *table.Table, col string) []string {
	if t.Len() == 0 {
		return nil
	}
	return t.MustColumn(col).([]string)
}

func floatCol(t *table.Table, col string) []float64 {
	if t.Len() == 0 {
		return nil
	}
	return t.MustColumn(col).([]float64)
}

// WriteCSV writes t to w as CSV with a header row.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, name := range cols {
			if cv, ok := t.Const(name); ok {
				row[j] = fmt.Sprint(cv)
				continue
			}
			switch col := t.Column(name).(type) {
			case []string:
				row[j] = col[i]
			case []int:
				row[j] = strconv.Itoa(col[i])
			case []float64:
				row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
			default:
				row[j] = fmt.Sprint(reflect.ValueOf(col).Index(i).Interface())
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
