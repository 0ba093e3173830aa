// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timeunit converts benchmark timings between the units
// criterion prints and formats them for display.
//
// All values are normalized to microseconds, which is the unit the
// charts are drawn in.
package timeunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Micro is the canonical unit name used for display.
const Micro = "µs"

// microExp maps a unit to the power of ten that converts it to
// microseconds.
var microExp = map[string]int{
	"ps": -6,
	"ns": -3,
	"µs": 0, // MICRO SIGN
	"μs": 0, // GREEK SMALL LETTER MU
	"us": 0,
	"ms": 3,
	"s":  6,
}

// Known reports whether unit is a time unit ToMicros understands.
func Known(unit string) bool {
	_, ok := microExp[unit]
	return ok
}

// ToMicros converts v, measured in unit, to microseconds. An empty
// unit is taken to already be microseconds.
func ToMicros(v float64, unit string) (float64, error) {
	if unit == "" {
		return v, nil
	}
	exp, ok := microExp[unit]
	if !ok {
		return 0, fmt.Errorf("unknown time unit %q", unit)
	}
	return shift(v, exp), nil
}

// FromMicros converts v microseconds to unit.
func FromMicros(v float64, unit string) (float64, error) {
	if unit == "" {
		return v, nil
	}
	exp, ok := microExp[unit]
	if !ok {
		return 0, fmt.Errorf("unknown time unit %q", unit)
	}
	return shift(v, -exp), nil
}

// shift returns v*10^exp. Negative exponents divide by an exact power
// of ten, so 500ns is exactly 0.5µs.
func shift(v float64, exp int) float64 {
	if exp < 0 {
		return v / math.Pow10(-exp)
	}
	return v * math.Pow10(exp)
}

// A Scaler represents a display unit for microsecond values and the
// precision to print them with.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Microseconds in one Unit
	Unit   string  // "ns", "µs", etc.
}

// Format formats val, in microseconds, in the Scaler's unit.
// For example, Scaler{2, 1e3, "ms"}.Format(1234) returns "1.23ms".
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Unit...)
	return string(buf)
}

type factor struct {
	factor float64
	unit   string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var factors = mkFactors()

func mkFactors() []factor {
	// Build the thresholds by parsing the printed representation so
	// they match how printing itself rounds.
	var fs []factor
	exp := 6
	for _, u := range []string{"s", "ms", Micro, "ns"} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.995e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".99995e%d", exp), 64)
		fs = append(fs, factor{math.Pow(10, float64(exp)), u, t100, t10, t1})
		exp -= 3
	}
	return fs
}

// Scale formats val microseconds using at least three significant
// digits in the largest unit that keeps the integer part non-zero.
func Scale(val float64) string {
	return CommonScale([]float64{val}).Format(val)
}

// CommonScale returns a common Scaler to apply to all values in vals.
// The scale is determined by the non-zero value closest to zero.
func CommonScale(vals []float64) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, Micro}
	}
	for _, f := range factors {
		switch {
		case min >= f.t100:
			return Scaler{1, f.factor, f.unit}
		case min >= f.t10:
			return Scaler{2, f.factor, f.unit}
		case min >= f.t1:
			return Scaler{3, f.factor, f.unit}
		}
	}
	// Sub-nanosecond. Stay in ns and add digits.
	f := factors[len(factors)-1]
	prec := 3
	for v := min / f.factor; v < 0.99995 && prec < 10; v *= 10 {
		prec++
	}
	return Scaler{prec, f.factor, f.unit}
}

// Split separates a criterion value token such as "2.5000µs" into its
// number and unit parts. Tokens without a unit return an empty unit.
func Split(tok string) (num, unit string) {
	i := strings.IndexFunc(tok, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E')
	})
	if i < 0 {
		return tok, ""
	}
	return tok[:i], tok[i:]
}
