// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package critfmt reads and writes the timing summaries printed by
// criterion-style benchmark harnesses.
//
// Each benchmark result occupies two lines: a header naming the
// benchmark as "group/name", and a time line giving a confidence
// interval for the time per iteration:
//
//	constant_folding_depth_impact/depth_1
//	                        time:   [2.9433 µs 2.9582 µs 2.9758 µs]
//
// The middle value of the interval is the point estimate. The unit
// may follow every value, as above, or appear once after the closing
// bracket. A header and its time line may also share a single line.
package critfmt

import "fmt"

// Result is a single benchmark result.
//
// All times are in microseconds, regardless of the unit they were
// written in.
type Result struct {
	// Group is the benchmark group: the part of the header before
	// the first "/".
	Group string

	// Name is the test name within Group: everything after the
	// first "/". It may itself contain "/".
	Name string

	// Time is the point estimate, the middle value of the interval.
	Time float64

	// Low and High are the bounds of the interval.
	Low, High float64

	// Unit is the unit the values were written in, or "" if the
	// input did not specify one. Writer uses it to reproduce the
	// input.
	Unit string

	fileName string
	line     int
}

// FullName returns the header form of r's name, "group/name".
func (r *Result) FullName() string {
	return r.Group + "/" + r.Name
}

// Pos returns the file name and line number of r's header, if r was
// read by a Reader.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of Result.
func (r *Result) Clone() *Result {
	r2 := *r
	return &r2
}

func (r *Result) String() string {
	return fmt.Sprintf("%s: %v µs [%v, %v]", r.FullName(), r.Time, r.Low, r.High)
}
