// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders a static HTML page summarizing a set of
// constant folding results and the charts drawn from them.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/foldperf/foldperf/critfmt"
	"github.com/foldperf/foldperf/foldtab"
	"github.com/foldperf/foldperf/timeunit"
	"github.com/google/safehtml/template"
)

// A Report is the input to Write.
type Report struct {
	Title string

	// Charts are the image file names, relative to the page.
	Charts []string

	Results  []*critfmt.Result
	Speedups []foldtab.Speedup
	// GeoMean is the geometric mean of the speedups, or NaN.
	GeoMean float64
}

type resultRow struct {
	Group, Name, Low, Time, High string
}

type speedupRow struct {
	Benchmark, Enabled, Disabled, Ratio string
}

type page struct {
	Title    string
	Charts   []string
	Results  []resultRow
	Speedups []speedupRow
	GeoMean  string
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
img { max-width: 100%; display: block; margin-bottom: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { padding: 0.2em 0.8em; text-align: right; }
th:first-child, td:first-child, td.name { text-align: left; }
tr:nth-child(even) { background: #f2f2f2; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Charts}}<img src="{{.}}" alt="{{.}}">
{{end}}
{{- if .Speedups}}
<h2>Speedup from constant folding</h2>
<table>
<tr><th>benchmark<th>enabled<th>disabled<th>speedup
{{range .Speedups}}<tr><td>{{.Benchmark}}<td>{{.Enabled}}<td>{{.Disabled}}<td>{{.Ratio}}
{{end}}<tr><td>geomean<td><td><td>{{.GeoMean}}
</table>
{{- end}}
<h2>Results</h2>
<table>
<tr><th>group<th>name<th>low<th>time<th>high
{{range .Results}}<tr><td>{{.Group}}<td class="name">{{.Name}}<td>{{.Low}}<td>{{.Time}}<td>{{.High}}
{{end}}</table>
</body>
</html>
`))

// Write renders r as an HTML page to w.
func Write(w io.Writer, r *Report) error {
	p := page{Title: r.Title, Charts: r.Charts}
	for _, res := range r.Results {
		sc := timeunit.CommonScale([]float64{res.Low, res.Time, res.High})
		p.Results = append(p.Results, resultRow{
			Group: res.Group,
			Name:  res.Name,
			Low:   sc.Format(res.Low),
			Time:  sc.Format(res.Time),
			High:  sc.Format(res.High),
		})
	}
	for _, s := range r.Speedups {
		sc := timeunit.CommonScale([]float64{s.Enabled, s.Disabled})
		p.Speedups = append(p.Speedups, speedupRow{
			Benchmark: s.Benchmark,
			Enabled:   sc.Format(s.Enabled),
			Disabled:  sc.Format(s.Disabled),
			Ratio:     formatRatio(s.Ratio()),
		})
	}
	p.GeoMean = formatRatio(r.GeoMean)
	return pageTemplate.Execute(w, p)
}

func formatRatio(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "~"
	}
	return fmt.Sprintf("%.2fx", x)
}
