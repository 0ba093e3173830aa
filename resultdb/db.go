// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultdb archives parsed benchmark results in a SQL
// database so runs can be reloaded and compared later.
package resultdb

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/foldperf/foldperf/critfmt"
	"golang.org/x/net/context"
)

// DB is a result archive. It's safe for concurrent use by multiple
// goroutines.
type DB struct {
	sql *sql.DB

	// prepared statements
	insertRun    *sql.Stmt
	insertResult *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other engines receive MySQL syntax.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Results (
	RunID BIGINT UNSIGNED,
	ResultID BIGINT UNSIGNED,
	GroupName VARCHAR(255),
	Name VARCHAR(255),
	Low DOUBLE,
	Time DOUBLE,
	High DOUBLE,
	Unit VARCHAR(16),
	PRIMARY KEY (RunID, ResultID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Label, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertResult, err = db.sql.Prepare("INSERT INTO Results(RunID, ResultID, GroupName, Name, Low, Time, High, Unit) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	return err
}

// now is a hook for testing.
var now = time.Now

// A Run is one archived set of results.
type Run struct {
	ID      int64
	Label   string
	Created time.Time
	// Count is the number of results in the run.
	Count int
}

// InsertRun stores results as a new run and returns its ID. The run
// and its results are written in a single transaction.
func (db *DB) InsertRun(ctx context.Context, label string, results []*critfmt.Result) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, label, now().Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	ins := tx.StmtContext(ctx, db.insertResult)
	for i, r := range results {
		if _, err := ins.ExecContext(ctx, id, i, r.Group, r.Name, r.Low, r.Time, r.High, r.Unit); err != nil {
			return 0, fmt.Errorf("insert %s: %v", r.FullName(), err)
		}
	}
	return id, nil
}

// Results returns the results of run id in insertion order. Times
// are in microseconds.
func (db *DB) Results(ctx context.Context, id int64) ([]*critfmt.Result, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT GroupName, Name, Low, Time, High, Unit FROM Results WHERE RunID = ? ORDER BY ResultID", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*critfmt.Result
	for rows.Next() {
		r := new(critfmt.Result)
		if err := rows.Scan(&r.Group, &r.Name, &r.Low, &r.Time, &r.High, &r.Unit); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		var n int
		if err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs WHERE RunID = ?", id).Scan(&n); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("run %d not found", id)
		}
	}
	return out, nil
}

// Runs returns all archived runs, newest first.
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT r.RunID, r.Label, r.Created, COUNT(x.ResultID)
FROM Runs r LEFT JOIN Results x ON x.RunID = r.RunID
GROUP BY r.RunID, r.Label, r.Created
ORDER BY r.RunID DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var run Run
		var created int64
		if err := rows.Scan(&run.ID, &run.Label, &created, &run.Count); err != nil {
			return nil, err
		}
		run.Created = time.Unix(created, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertResult} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
