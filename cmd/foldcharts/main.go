// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Foldcharts draws charts of constant folding benchmark results.
//
// Usage:
//
//	foldcharts [options] [results.txt ...]
//
// Each input file should contain criterion-style results, one
// benchmark per pair of lines:
//
//	constant_folding_depth_impact/depth_1
//	                        time:   [2.9433 µs 2.9582 µs 2.9758 µs]
//
// With no input files, foldcharts uses the results it was built with.
// The input "-" reads from standard input.
//
// Foldcharts writes three PNG charts and prints a line naming each:
//
//	plot_enabled_vs_disabled.png  enabled vs. disabled, per scenario
//	plot_depth_impact.png         time by maximum folding depth
//	plot_loop_impact.png          time by loop iteration count
//
// The -o option names the output directory. The -gcs option writes
// to a Google Cloud Storage bucket instead, authenticating with
// -gcs-credentials or -gcs-token when set.
//
// The -csv and -html options also write the parsed results as CSV
// and an HTML page showing the charts, results, and speedups.
//
// The -db option archives the results in a SQL database, sqlite3 by
// default or mysql with -db-driver mysql.
//
// The -v option prints the parsed results and the speedup from
// constant folding to standard error.
package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/foldperf/foldperf/chartfs"
	"github.com/foldperf/foldperf/chartfs/gcs"
	"github.com/foldperf/foldperf/critfmt"
	"github.com/foldperf/foldperf/foldchart"
	"github.com/foldperf/foldperf/foldtab"
	"github.com/foldperf/foldperf/report"
	"github.com/foldperf/foldperf/resultdb"
	_ "github.com/foldperf/foldperf/resultdb/sqlite3"
	"github.com/foldperf/foldperf/timeunit"
	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/net/context"
)

//go:embed data.txt
var dataset string

// errUsage reports a command line error. The usage message has
// already been printed.
var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("foldcharts: ")
	log.SetFlags(0)
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == flag.ErrHelp:
		os.Exit(0)
	case err == errUsage:
		os.Exit(2)
	case err != nil:
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("foldcharts", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: foldcharts [options] [results.txt ...]\n")
		fmt.Fprintf(stderr, "options:\n")
		flags.PrintDefaults()
	}
	var (
		flagOut      = flags.String("o", ".", "write output files to `dir`")
		flagDPI      = flags.Int("dpi", foldchart.DefaultDPI, "render charts at `n` dots per inch")
		flagCSV      = flags.String("csv", "", "also write the parsed results as CSV to `file`")
		flagHTML     = flags.String("html", "", "also write an HTML report to `file`")
		flagDB       = flags.String("db", "", "archive the results in the database at `dsn`")
		flagDriver   = flags.String("db-driver", "sqlite3", "database `driver` for -db: sqlite3 or mysql")
		flagGCS      = flags.String("gcs", "", "write output files to Cloud Storage `bucket` instead of -o")
		flagGCSCreds = flags.String("gcs-credentials", "", "service account key `file` for -gcs")
		flagGCSToken = flags.String("gcs-token", "", "OAuth2 access `token` for -gcs")
		flagVerbose  = flags.Bool("v", false, "print the parsed results and speedups to stderr")
	)
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return errUsage
	}
	if *flagDPI <= 0 {
		fmt.Fprintf(stderr, "invalid -dpi %d\n", *flagDPI)
		flags.Usage()
		return errUsage
	}

	ctx := context.Background()

	results, err := readResults(flags.Args())
	if err != nil {
		return err
	}
	tab := foldtab.FromResults(results)
	speedups, geomean := foldtab.Speedups(foldtab.EnabledVsDisabled(tab))
	if *flagVerbose {
		printSummary(stderr, tab, speedups, geomean)
	}

	charts, err := drawCharts(tab)
	if err != nil {
		return err
	}

	var out chartfs.FS = chartfs.Dir(*flagOut)
	if *flagGCS != "" {
		prefix := ""
		if *flagOut != "." {
			prefix = strings.TrimSuffix(*flagOut, "/") + "/"
		}
		gfs, err := gcs.NewFS(ctx, *flagGCS, prefix, gcs.ClientOptions(*flagGCSCreds, *flagGCSToken)...)
		if err != nil {
			return err
		}
		defer gfs.Close()
		out = gfs
	}

	var names []string
	for _, c := range charts {
		if err := c.Save(ctx, out, *flagDPI); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Generated %s\n", c.Name)
		names = append(names, c.Name)
	}

	if *flagCSV != "" {
		err := writeFile(ctx, out, *flagCSV, func(w io.Writer) error {
			return foldtab.WriteCSV(w, tab)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Generated %s\n", *flagCSV)
	}
	if *flagHTML != "" {
		r := &report.Report{
			Title:    "Constant Folding Benchmarks",
			Charts:   names,
			Results:  results,
			Speedups: speedups,
			GeoMean:  geomean,
		}
		err := writeFile(ctx, out, *flagHTML, func(w io.Writer) error {
			return report.Write(w, r)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Generated %s\n", *flagHTML)
	}

	if *flagDB != "" {
		if err := archive(ctx, *flagDriver, *flagDB, runLabel(flags.Args()), results, stderr); err != nil {
			return err
		}
	}
	return nil
}

// readResults reads the named files, or the built-in results if there
// are none.
func readResults(paths []string) ([]*critfmt.Result, error) {
	if len(paths) == 0 {
		return critfmt.ReadAll(strings.NewReader(dataset), "data.txt")
	}
	files := &critfmt.Files{Paths: paths, AllowStdin: true}
	var results []*critfmt.Result
	for files.Scan() {
		results = append(results, files.Result())
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func drawCharts(tab *table.Table) ([]*foldchart.Chart, error) {
	bar, err := foldchart.EnabledVsDisabled(foldtab.EnabledVsDisabled(tab))
	if err != nil {
		return nil, err
	}
	depths, err := foldtab.DepthImpact(tab)
	if err != nil {
		return nil, err
	}
	depth, err := foldchart.DepthImpact(depths)
	if err != nil {
		return nil, err
	}
	loops, err := foldtab.LoopImpact(tab)
	if err != nil {
		return nil, err
	}
	loop, err := foldchart.LoopImpact(loops)
	if err != nil {
		return nil, err
	}
	return []*foldchart.Chart{bar, depth, loop}, nil
}

func writeFile(ctx context.Context, fs chartfs.FS, name string, write func(io.Writer) error) error {
	w, err := fs.NewWriter(ctx, name, chartfs.ContentType(name))
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.CloseWithError(err)
		return fmt.Errorf("%s: %w", name, err)
	}
	return w.Close()
}

func printSummary(w io.Writer, tab *table.Table, speedups []foldtab.Speedup, geomean float64) {
	table.Fprint(w, tab)
	if len(speedups) == 0 {
		return
	}
	fmt.Fprintf(w, "\n")
	for _, s := range speedups {
		fmt.Fprintf(w, "%-24s %10s -> %10s  %.2fx\n", s.Benchmark, timeunit.Scale(s.Disabled), timeunit.Scale(s.Enabled), s.Ratio())
	}
	fmt.Fprintf(w, "%-24s %27s  %.2fx\n", "geomean", "", geomean)
}

func runLabel(paths []string) string {
	if len(paths) == 0 {
		return "built-in"
	}
	return strings.Join(paths, " ")
}

func archive(ctx context.Context, driver, dsn, label string, results []*critfmt.Result, stderr io.Writer) error {
	db, err := resultdb.OpenSQL(driver, dsn)
	if err != nil {
		return fmt.Errorf("open database: %v", err)
	}
	defer db.Close()
	id, err := db.InsertRun(ctx, label, results)
	if err != nil {
		return fmt.Errorf("archive results: %v", err)
	}
	fmt.Fprintf(stderr, "archived %d results as run %d\n", len(results), id)
	return nil
}
