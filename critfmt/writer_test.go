// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package critfmt

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/foldperf/foldperf/timeunit"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(r("matrix_init_heavy/enabled", 0.78, 0.8, 0.82, "µs")); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(r("g/t", 1, 2, 3, "")); err != nil {
		t.Fatal(err)
	}
	want := `matrix_init_heavy/enabled
                        time:   [0.78 µs 0.8 µs 0.82 µs]
g/t
                        time:   [1 2 3]
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	in := []*Result{
		r("constant_folding_enabled_vs_disabled/constant_folding_enabled", 2.48, 2.5, 2.52, "µs"),
		r("loop_iterations_impact/10000_iterations", 41.4, 41.564, 41.739, "µs"),
		r("g/nested/name", 1, 2, 3, ""),
		r("g/us", 1.25, 1.5, 1.75, "us"),
		r("g/ms", 1000, 2500, 4000, "ms"),
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, res := range in {
		if err := w.Write(res); err != nil {
			t.Fatal(err)
		}
	}
	got, err := parseAll(t, buf.String())
	if err != nil {
		t.Fatalf("re-parsing %q: %v", buf.String(), err)
	}
	compareResults(t, got, in)
}

// closeTo reports whether got is within a relative 1e-15 of want.
func closeTo(got, want float64) bool {
	return got == want || math.Abs(got-want) <= 1e-15*math.Abs(want)
}

func TestRoundTripScaled(t *testing.T) {
	in := r("g/ns", 0.4321, 0.5432, 0.6543, "ns")
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(in); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ns") {
		t.Fatalf("output %q not written in ns", buf.String())
	}
	got, err := parseAll(t, buf.String())
	if err != nil || len(got) != 1 {
		t.Fatalf("re-parsing %q: %v, %v", buf.String(), got, err)
	}
	for _, pair := range [][2]float64{{got[0].Low, in.Low}, {got[0].Time, in.Time}, {got[0].High, in.High}} {
		if !closeTo(pair[0], pair[1]) {
			t.Errorf("got %v, want %v", pair[0], pair[1])
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, unit := range []string{"ps", "ns", "us", "ms", "s"} {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		var in []*Result
		for i := 0; i < 1000; i++ {
			var vals [3]float64
			for j := range vals {
				vals[j], _ = timeunit.ToMicros(rnd.Float64()*1000, unit)
			}
			res := r("g/"+unit, vals[0], vals[1], vals[2], unit)
			in = append(in, res)
			if err := w.Write(res); err != nil {
				t.Fatal(err)
			}
		}
		got, err := parseAll(t, buf.String())
		if err != nil || len(got) != len(in) {
			t.Fatalf("%s: re-parsed %d results, %v", unit, len(got), err)
		}
		exact := 0
		for i := range in {
			for _, pair := range [][2]float64{{got[i].Low, in[i].Low}, {got[i].Time, in[i].Time}, {got[i].High, in[i].High}} {
				if !closeTo(pair[0], pair[1]) {
					t.Fatalf("%s: got %v, want %v", unit, pair[0], pair[1])
				}
				if pair[0] == pair[1] {
					exact++
				}
			}
		}
		if exact < 3*len(in)*99/100 {
			t.Errorf("%s: only %d of %d values read back exactly", unit, exact, 3*len(in))
		}
	}
}
