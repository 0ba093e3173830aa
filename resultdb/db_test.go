// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultdb_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/foldperf/foldperf/critfmt"
	. "github.com/foldperf/foldperf/resultdb"
	_ "github.com/foldperf/foldperf/resultdb/sqlite3"
	"golang.org/x/net/context"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func results(t *testing.T, data string) []*critfmt.Result {
	t.Helper()
	rs, err := critfmt.ReadAll(strings.NewReader(data), "test")
	if err != nil {
		t.Fatal(err)
	}
	return rs
}

// fields drops the source position so results from the database
// compare equal to parsed ones.
func fields(rs []*critfmt.Result) []critfmt.Result {
	var out []critfmt.Result
	for _, r := range rs {
		out = append(out, critfmt.Result{Group: r.Group, Name: r.Name, Time: r.Time, Low: r.Low, High: r.High, Unit: r.Unit})
	}
	return out
}

func TestInsertRun(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	defer SetNow(time.Unix(86400, 0))()

	in := results(t, `
constant_folding_depth_impact/depth_1
time: [2.9433 µs 2.9582 µs 2.9758 µs]
loop_iterations_impact/10_iterations
time: [2976.5 ns 2997.5 ns 3024.5 ns]
`)
	id, err := db.InsertRun(ctx, "baseline", in)
	if err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	out, err := db.Results(ctx, id)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if !reflect.DeepEqual(fields(out), fields(in)) {
		t.Errorf("Results = %v, want %v", out, in)
	}

	id2, err := db.InsertRun(ctx, "empty", nil)
	if err != nil {
		t.Fatal(err)
	}
	if id2 == id {
		t.Errorf("second run reused ID %d", id)
	}
	if out, err := db.Results(ctx, id2); err != nil || len(out) != 0 {
		t.Errorf("Results of empty run = %v, %v", out, err)
	}

	runs, err := db.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []Run{
		{ID: id2, Label: "empty", Created: time.Unix(86400, 0), Count: 0},
		{ID: id, Label: "baseline", Created: time.Unix(86400, 0), Count: 2},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("Runs = %+v, want %+v", runs, want)
	}
}

func TestResultsMissingRun(t *testing.T) {
	db := newDB(t)
	if _, err := db.Results(context.Background(), 42); err == nil {
		t.Errorf("Results of missing run succeeded")
	}
}

func TestInsertRunCanceled(t *testing.T) {
	db := newDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := db.InsertRun(ctx, "x", results(t, "a/b\ntime: [1 2 3]\n")); err == nil {
		t.Errorf("InsertRun with canceled context succeeded")
	}
	runs, err := db.Runs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("canceled insert left %d run(s)", len(runs))
	}
}
