// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package critfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/foldperf/foldperf/timeunit"
)

// A Reader reads benchmark results in criterion's summary format.
//
// Its API is modeled on bufio.Scanner. Unlike the lenient readers of
// other benchmark formats, a Reader stops at the first line it cannot
// make sense of and reports it through Err as a *SyntaxError.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error

	result *Result

	// header is a benchmark name waiting for its time line, and
	// headerLine is the line it was read from.
	header     string
	headerLine int
}

// A SyntaxError represents a syntax error on a particular line of a
// benchmark results file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

const timePrefix = "time:"

// NewReader constructs a reader to parse benchmark results from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.err = nil
	r.result = nil
	r.header = ""
	r.headerLine = 0
}

func (r *Reader) syntaxError(line int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, line, fmt.Sprintf(format, args...)}
}

// Scan advances the reader to the next result and reports whether a
// result was read. The caller should use the Result method to get the
// result. If Scan reaches EOF, encounters malformed input, or an I/O
// error occurs, it returns false, in which case the caller should use
// the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	r.result = nil

	for r.s.Scan() {
		r.line++
		text := strings.TrimSpace(r.s.Text())
		if text == "" {
			continue
		}

		if r.header == "" {
			if strings.HasPrefix(text, timePrefix) {
				r.err = r.syntaxError(r.line, "time line %q has no benchmark header", text)
				return false
			}
			if i := oneLineTime(text); i > 0 {
				// Header and time share a line.
				r.header, r.headerLine = strings.TrimSpace(text[:i]), r.line
				text = text[i:]
			} else {
				r.header, r.headerLine = text, r.line
				continue
			}
		} else if !strings.HasPrefix(text, timePrefix) {
			r.err = r.syntaxError(r.line, "expected time line for %q, got %q", r.header, text)
			return false
		}

		res, err := r.parse(r.header, text)
		r.header = ""
		if err != nil {
			r.err = err
			return false
		}
		r.result = res
		return true
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
		return false
	}
	if r.header != "" {
		r.err = r.syntaxError(r.headerLine, "benchmark %q has no time line", r.header)
		r.header = ""
	}
	return false
}

// oneLineTime returns the index of a "time:" field that follows the
// benchmark name on the same line, or -1. "time:" must start a
// whitespace-separated field, so names like "g/uptime:x" are headers.
func oneLineTime(text string) int {
	for i := 1; i < len(text); i++ {
		j := strings.Index(text[i:], timePrefix)
		if j < 0 {
			return -1
		}
		i += j
		if c := text[i-1]; c == ' ' || c == '\t' {
			return i
		}
	}
	return -1
}

// parse builds a Result from a header and the time line that follows
// it.
func (r *Reader) parse(header, timeLine string) (*Result, error) {
	group, name, ok := strings.Cut(header, "/")
	if !ok || group == "" || name == "" {
		return nil, r.syntaxError(r.headerLine, "benchmark name %q is not of the form group/name", header)
	}

	vals, unit, err := parseInterval(timeLine)
	if err != nil {
		return nil, r.syntaxError(r.line, "%s in %q", err, timeLine)
	}
	return &Result{
		Group:    group,
		Name:     name,
		Low:      vals[0],
		Time:     vals[1],
		High:     vals[2],
		Unit:     unit,
		fileName: r.fileName,
		line:     r.headerLine,
	}, nil
}

// parseInterval extracts the three bounds from a time line and
// converts them to microseconds. It returns the unit of the middle
// value as written.
func parseInterval(line string) (vals [3]float64, unit string, err error) {
	rest := strings.TrimPrefix(line, timePrefix)
	open := strings.IndexByte(rest, '[')
	end := strings.IndexByte(rest, ']')
	if open < 0 || end < open {
		return vals, "", fmt.Errorf("missing [low estimate high] interval")
	}
	fields := strings.Fields(rest[open+1 : end])
	trailing := strings.Fields(rest[end+1:])
	if len(trailing) > 1 {
		return vals, "", fmt.Errorf("unexpected text %q after interval", strings.Join(trailing, " "))
	}

	type bound struct {
		num, unit string
	}
	var bounds []bound
	for i := 0; i < len(fields); i++ {
		num, u := timeunit.Split(fields[i])
		if num == "" {
			return vals, "", fmt.Errorf("invalid time value %q", fields[i])
		}
		if u == "" && i+1 < len(fields) && timeunit.Known(fields[i+1]) {
			u = fields[i+1]
			i++
		}
		bounds = append(bounds, bound{num, u})
	}
	if len(bounds) != 3 {
		return vals, "", fmt.Errorf("want 3 values in interval, got %d", len(bounds))
	}

	for i, b := range bounds {
		u := b.unit
		if u == "" && len(trailing) == 1 {
			u = trailing[0]
		}
		v, err := strconv.ParseFloat(b.num, 64)
		if err != nil {
			return vals, "", fmt.Errorf("invalid time value %q", b.num)
		}
		if vals[i], err = timeunit.ToMicros(v, u); err != nil {
			return vals, "", err
		}
		if i == 1 {
			unit = u
		}
	}
	return vals, unit, nil
}

// Result returns the record that was just read by Scan.
//
// The Result is freshly allocated by each call to Scan, so the caller
// may retain it.
func (r *Reader) Result() *Result {
	if r.result == nil {
		panic(noResult)
	}
	return r.result
}

// Err returns the first non-EOF error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads every result from r. It stops at the first error.
func ReadAll(r io.Reader, fileName string) ([]*Result, error) {
	var out []*Result
	reader := NewReader(r, fileName)
	for reader.Scan() {
		out = append(out, reader.Result())
	}
	return out, reader.Err()
}
