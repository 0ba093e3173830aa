// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package critfmt

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/foldperf/foldperf/timeunit"
)

// A Writer writes benchmark results in criterion's summary format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewWriter returns a writer that writes benchmark results to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// indent is the column criterion aligns time lines to.
const indent = "                        "

// Write writes res to w as a header line followed by a time line.
// Values are written in res.Unit to reproduce the input as closely as
// possible. If res.Unit is empty the values carry no unit, which
// readers take to mean microseconds.
func (w *Writer) Write(res *Result) error {
	unit := res.Unit
	if unit != "" && !timeunit.Known(unit) {
		unit = timeunit.Micro
	}

	w.buf.WriteString(res.Group)
	w.buf.WriteByte('/')
	w.buf.WriteString(res.Name)
	w.buf.WriteByte('\n')

	w.buf.WriteString(indent)
	w.buf.WriteString(timePrefix)
	w.buf.WriteString("   [")
	for i, v := range []float64{res.Low, res.Time, res.High} {
		if i > 0 {
			w.buf.WriteByte(' ')
		}
		w.buf.WriteString(formatValue(v, unit))
		if unit != "" {
			w.buf.WriteByte(' ')
			w.buf.WriteString(unit)
		}
	}
	w.buf.WriteString("]\n")

	// Writes to the buffer can't fail, so we only have to check if
	// this fails.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// formatValue formats us microseconds in unit, which must be known.
// Scaling is not exact in binary floating point, so among the values
// a few ulps from the scaled one it prefers one that reads back as us.
func formatValue(us float64, unit string) string {
	v, _ := timeunit.FromMicros(us, unit)
	up, down := v, v
	for i := 0; i < 3; i++ {
		for _, c := range []float64{up, down} {
			if back, _ := timeunit.ToMicros(c, unit); back == us {
				return strconv.FormatFloat(c, 'f', -1, 64)
			}
		}
		up = math.Nextafter(up, math.Inf(1))
		down = math.Nextafter(down, math.Inf(-1))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
