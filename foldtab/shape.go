// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package foldtab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// Status values.
const (
	Enabled  = "Enabled"
	Disabled = "Disabled"
)

// Status returns Enabled if the test name mentions "enabled" and
// Disabled otherwise.
func Status(name string) string {
	if strings.Contains(name, "enabled") {
		return Enabled
	}
	return Disabled
}

// BaseName returns the scenario a test measures, without its
// enabled/disabled suffix. All tests in the matrix initialization
// group share the scenario "matrix_init".
func BaseName(group, name string) string {
	if group == GroupMatrixInit {
		return "matrix_init"
	}
	name = strings.ReplaceAll(name, "_enabled", "")
	return strings.ReplaceAll(name, "_disabled", "")
}

// Depth parses a test name of the form "depth_<n>".
func Depth(name string) (int, error) {
	return parseCount(name, strings.ReplaceAll(name, "depth_", ""), "depth")
}

// Iterations parses a test name of the form "<n>_iterations".
func Iterations(name string) (int, error) {
	return parseCount(name, strings.ReplaceAll(name, "_iterations", ""), "iteration count")
}

func parseCount(name, num, what string) (int, error) {
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("test %q: no %s in name", name, what)
	}
	return n, nil
}

// EnabledVsDisabled returns the enabled/disabled comparison table.
//
// It selects the enabled-vs-disabled and matrix initialization
// groups, labels each row with its status and benchmark scenario, and
// averages repeated measurements of the same scenario and status. The
// result has columns benchmark, status, time, low and high, with
// scenarios and statuses in order of first appearance. low and high
// are the extreme bounds over the averaged rows.
func EnabledVsDisabled(t *table.Table) *table.Table {
	t = filterGroups(t, GroupEnabledVsDisabled, GroupMatrixInit)
	groups, names := stringCol(t, ColGroup), stringCol(t, ColName)
	statuses := make([]string, len(names))
	benchmarks := make([]string, len(names))
	for i, name := range names {
		statuses[i] = Status(name)
		benchmarks[i] = BaseName(groups[i], name)
	}

	rows := new(table.Builder).
		Add(ColBenchmark, benchmarks).
		Add(ColStatus, statuses).
		Add(ColTime, nonNil(floatCol(t, ColTime))).
		Add(ColLow, nonNil(floatCol(t, ColLow))).
		Add(ColHigh, nonNil(floatCol(t, ColHigh))).
		Done()
	if rows.Len() == 0 {
		return rows
	}

	agg := table.Flatten(ggstat.Agg(ColBenchmark, ColStatus)(
		ggstat.AggMean(ColTime),
		ggstat.AggMin(ColLow),
		ggstat.AggMax(ColHigh),
	).F(rows))
	return new(table.Builder).
		Add(ColBenchmark, agg.MustColumn(ColBenchmark)).
		Add(ColStatus, agg.MustColumn(ColStatus)).
		Add(ColTime, agg.MustColumn("mean "+ColTime)).
		Add(ColLow, agg.MustColumn("min "+ColLow)).
		Add(ColHigh, agg.MustColumn("max "+ColHigh)).
		Done()
}

// DepthImpact returns the folding depth table: the rows of the depth
// group with an int depth column parsed from each test name, sorted
// by depth.
func DepthImpact(t *table.Table) (*table.Table, error) {
	return withCount(filterGroups(t, GroupDepth), ColDepth, Depth)
}

// LoopImpact returns the loop iterations table: the rows of the loop
// group with an int iterations column parsed from each test name,
// sorted by iteration count.
func LoopImpact(t *table.Table) (*table.Table, error) {
	return withCount(filterGroups(t, GroupLoop), ColIterations, Iterations)
}

func withCount(t *table.Table, col string, parse func(string) (int, error)) (*table.Table, error) {
	names := stringCol(t, ColName)
	counts := make([]int, len(names))
	for i, name := range names {
		n, err := parse(name)
		if err != nil {
			return nil, err
		}
		counts[i] = n
	}
	if t.Len() == 0 {
		return table.NewBuilder(FromResults(nil)).Add(col, counts).Done(), nil
	}
	t = table.NewBuilder(t).Add(col, counts).Done()
	return table.Flatten(table.SortBy(t, col)), nil
}

func nonNil(xs []float64) []float64 {
	if xs == nil {
		return []float64{}
	}
	return xs
}
