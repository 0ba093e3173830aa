// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foldperf/foldperf/critfmt"
	"github.com/foldperf/foldperf/resultdb"
	"golang.org/x/net/context"
)

const generated = `Generated plot_enabled_vs_disabled.png
Generated plot_depth_impact.png
Generated plot_loop_impact.png
`

func TestDataset(t *testing.T) {
	rs, err := readResults(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 16 {
		t.Fatalf("built-in dataset has %d results, want 16", len(rs))
	}
	if r := rs[13]; r.FullName() != "loop_iterations_impact/10000_iterations" || r.Time != 41.564 {
		t.Errorf("result 13 = %v", r)
	}
}

func checkPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("%s is not a PNG file", path)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-o", dir, "-dpi", "30"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	if stdout.String() != generated {
		t.Errorf("stdout:\n%s\nwant:\n%s", stdout.String(), generated)
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr:\n%s", stderr.String())
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 3 {
		t.Errorf("output directory has %d entries, want 3", len(ents))
	}
	for _, name := range []string{"plot_enabled_vs_disabled.png", "plot_depth_impact.png", "plot_loop_impact.png"} {
		checkPNG(t, filepath.Join(dir, name))
	}
}

// chdir changes into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestRunDefault(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	if stdout.String() != generated {
		t.Errorf("stdout:\n%s\nwant:\n%s", stdout.String(), generated)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 3 {
		t.Errorf("working directory has %d entries, want 3", len(ents))
	}
	for _, test := range []struct {
		name          string
		width, height int
	}{
		{"plot_enabled_vs_disabled.png", 4200, 2400},
		{"plot_depth_impact.png", 3600, 2100},
		{"plot_loop_impact.png", 3600, 2100},
	} {
		f, err := os.Open(filepath.Join(dir, test.name))
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if cfg.Width != test.width || cfg.Height != test.height {
			t.Errorf("%s is %dx%d, want %dx%d", test.name, cfg.Width, cfg.Height, test.width, test.height)
		}
	}
}

func TestRunExtras(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "runs.db")
	var stdout, stderr bytes.Buffer
	args := []string{"-o", dir, "-dpi", "30", "-csv", "results.csv", "-html", "index.html", "-db", dsn, "-v"}
	if err := run(args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}
	want := generated + "Generated results.csv\nGenerated index.html\n"
	if stdout.String() != want {
		t.Errorf("stdout:\n%s\nwant:\n%s", stdout.String(), want)
	}
	for _, s := range []string{"matrix_init_heavy", "geomean", "archived 16 results as run 1"} {
		if !strings.Contains(stderr.String(), s) {
			t.Errorf("stderr missing %q:\n%s", s, stderr.String())
		}
	}

	csv, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(csv), "\n"); lines != 17 {
		t.Errorf("CSV has %d lines, want 17", lines)
	}
	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), `src="plot_loop_impact.png"`) {
		t.Errorf("report does not show the loop chart")
	}

	db, err := resultdb.OpenSQL("sqlite3", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := db.Runs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Label != "built-in" || runs[0].Count != 16 {
		t.Errorf("archived runs = %+v", runs)
	}
}

func TestRunInputFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	err := os.WriteFile(in, []byte(`
constant_folding_enabled_vs_disabled/x_enabled
time: [1 2 3] µs
constant_folding_enabled_vs_disabled/x_disabled
time: [3 4 5] µs
constant_folding_depth_impact/depth_2
time: [1 2 3] µs
loop_iterations_impact/5_iterations
time: [1 2 3] µs
`), 0666)
	if err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-o", filepath.Join(dir, "out"), "-dpi", "30", in}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != generated {
		t.Errorf("stdout:\n%s\nwant:\n%s", stdout.String(), generated)
	}
	checkPNG(t, filepath.Join(dir, "out", "plot_depth_impact.png"))
}

func TestRunSyntaxError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(in, []byte("a/b\nnot a time line\n"), 0666); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	err := run([]string{"-o", dir, in}, &stdout, &stderr)
	var se *critfmt.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("run error = %v, want SyntaxError", err)
	}
	if file, line := se.Pos(); file != in || line != 2 {
		t.Errorf("error at %s:%d, want %s:2", file, line, in)
	}
	if stdout.Len() != 0 {
		t.Errorf("charts reported despite error:\n%s", stdout.String())
	}
}

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{
		{"-dpi", "0"},
		{"-no-such-flag"},
	} {
		var stdout, stderr bytes.Buffer
		if err := run(args, &stdout, &stderr); err != errUsage {
			t.Errorf("run(%q) = %v, want usage error", args, err)
		}
		if !strings.Contains(stderr.String(), "usage: foldcharts") {
			t.Errorf("run(%q) printed no usage", args)
		}
	}
}
