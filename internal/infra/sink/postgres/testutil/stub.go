// Package testutil provides an in-memory database/sql stub understanding the
// small SQL dialect used by the postgres sink.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// StubConn records statements and keeps table rows in memory. It supports:
//
//	CREATE TABLE ...                     (recorded only)
//	INSERT INTO t (cols) VALUES (...) [ON CONFLICT (keys) DO UPDATE ...]
//	SELECT [DISTINCT] cols FROM t [WHERE col = $1] [ORDER BY col]
//
// A VALUES item that is not a $n placeholder is treated as the next ordinal
// within the group sharing the first conflict key. On conflict only
// placeholder columns are updated.
type StubConn struct {
	mu        sync.Mutex
	Execs     []string
	Tables    map[string][]map[string]any
	FailPing  bool
	FailExec  bool
	FailQuery bool
	RowsErr   error
}

// NewStubDB registers a sql.DB backed by an in-memory stub connection.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Tables: make(map[string][]map[string]any)}
	name := fmt.Sprintf("stubpg%d", time.Now().UnixNano())
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct {
	conn *StubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

// Prepare implements driver.Conn.
func (c *StubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

// Ping implements driver.Pinger.
func (c *StubConn) Ping(_ context.Context) error {
	if c.FailPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

// Rows returns a copy of the rows stored for table.
func (c *StubConn) Rows(table string) []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.Tables[table]))
	for _, row := range c.Tables[table] {
		cp := make(map[string]any, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out
}

// ExecContext implements driver.ExecerContext.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Execs = append(c.Execs, query)
	if c.FailExec {
		return nil, fmt.Errorf("exec fail")
	}
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT INTO") {
		return c.insert(query, args)
	}
	return driver.RowsAffected(0), nil
}

func (c *StubConn) insert(query string, args []driver.NamedValue) (driver.Result, error) {
	ins, err := parseInsert(query)
	if err != nil {
		return nil, err
	}
	if len(ins.cols) != len(ins.values) {
		return nil, fmt.Errorf("column/value mismatch for %s", ins.table)
	}
	row := make(map[string]any, len(ins.cols))
	var computed []string
	for i, col := range ins.cols {
		n, ok := placeholder(ins.values[i])
		if !ok {
			computed = append(computed, col)
			continue
		}
		if n < 1 || n > len(args) {
			return nil, fmt.Errorf("missing arg $%d for %s", n, ins.table)
		}
		row[col] = args[n-1].Value
	}
	rows := c.Tables[ins.table]
	if len(ins.conflict) > 0 {
		for _, existing := range rows {
			if matches(existing, row, ins.conflict) {
				for col, v := range row {
					existing[col] = v
				}
				return driver.RowsAffected(1), nil
			}
		}
	}
	for _, col := range computed {
		var group []string
		if len(ins.conflict) > 0 {
			group = ins.conflict[:1]
		}
		var ordinal int64
		for _, existing := range rows {
			if matches(existing, row, group) {
				ordinal++
			}
		}
		row[col] = ordinal
	}
	c.Tables[ins.table] = append(rows, row)
	return driver.RowsAffected(1), nil
}

// QueryContext implements driver.QueryerContext.
func (c *StubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailQuery {
		return nil, fmt.Errorf("query fail")
	}
	sel, err := parseSelect(query)
	if err != nil {
		return nil, err
	}
	var matched []map[string]any
	for _, row := range c.Tables[sel.table] {
		if sel.whereCol != "" {
			if len(args) == 0 || row[sel.whereCol] != args[0].Value {
				continue
			}
		}
		matched = append(matched, row)
	}
	if sel.orderCol != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i][sel.orderCol], matched[j][sel.orderCol])
		})
	}
	values := make([][]driver.Value, 0, len(matched))
	seen := make(map[string]bool)
	for _, row := range matched {
		vals := make([]driver.Value, len(sel.cols))
		for i, col := range sel.cols {
			vals[i] = row[col]
		}
		if sel.distinct {
			args := make([]any, len(vals))
			for i, v := range vals {
				args[i] = v
			}
			k := fmt.Sprint(args...)
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		values = append(values, vals)
	}
	return &stubRows{cols: sel.cols, rows: values, err: c.RowsErr}, nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
	err  error
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

func matches(a, b map[string]any, cols []string) bool {
	for _, col := range cols {
		if a[col] != b[col] {
			return false
		}
	}
	return true
}

func less(a, b any) bool {
	switch av := a.(type) {
	case int64:
		bv, _ := b.(int64)
		return av < bv
	case string:
		bv, _ := b.(string)
		return av < bv
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func placeholder(v string) (int, bool) {
	if !strings.HasPrefix(v, "$") {
		return 0, false
	}
	n, err := strconv.Atoi(v[1:])
	return n, err == nil
}

type insertStmt struct {
	table    string
	cols     []string
	values   []string
	conflict []string
}

func parseInsert(query string) (insertStmt, error) {
	up := strings.ToUpper(query)
	intoIdx := strings.Index(up, "INTO ")
	if intoIdx == -1 {
		return insertStmt{}, fmt.Errorf("cannot parse insert: %s", query)
	}
	rest := query[intoIdx+len("INTO "):]
	open := strings.Index(rest, "(")
	if open == -1 {
		return insertStmt{}, fmt.Errorf("cannot parse insert: %s", query)
	}
	colsRaw, after, ok := group(rest[open:])
	if !ok {
		return insertStmt{}, fmt.Errorf("cannot parse insert columns: %s", query)
	}
	stmt := insertStmt{
		table: strings.ToLower(strings.TrimSpace(rest[:open])),
		cols:  splitTopLevel(colsRaw),
	}
	valuesIdx := strings.Index(strings.ToUpper(after), "VALUES")
	if valuesIdx == -1 {
		return insertStmt{}, fmt.Errorf("cannot parse insert values: %s", query)
	}
	after = strings.TrimSpace(after[valuesIdx+len("VALUES"):])
	valsRaw, tail, ok := group(after)
	if !ok {
		return insertStmt{}, fmt.Errorf("cannot parse insert values: %s", query)
	}
	stmt.values = splitTopLevel(valsRaw)
	if i := strings.Index(strings.ToUpper(tail), "ON CONFLICT"); i != -1 {
		tail = strings.TrimSpace(tail[i+len("ON CONFLICT"):])
		if keys, _, ok := group(tail); ok {
			stmt.conflict = splitTopLevel(keys)
		}
	}
	return stmt, nil
}

// group returns the contents of the parenthesised group s starts with and
// the text following it.
func group(s string) (inner, rest string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") {
		return "", "", false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

func splitTopLevel(raw string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range raw {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.ToLower(strings.TrimSpace(raw[start:i])))
				start = i + 1
			}
		}
	}
	return append(out, strings.ToLower(strings.TrimSpace(raw[start:])))
}

type selectStmt struct {
	table    string
	cols     []string
	distinct bool
	whereCol string
	orderCol string
}

func parseSelect(query string) (selectStmt, error) {
	lower := strings.ToLower(strings.TrimSpace(query))
	if !strings.HasPrefix(lower, "select ") {
		return selectStmt{}, fmt.Errorf("cannot parse select: %s", query)
	}
	fromIdx := strings.Index(lower, " from ")
	if fromIdx == -1 {
		return selectStmt{}, fmt.Errorf("cannot parse select: %s", query)
	}
	var stmt selectStmt
	cols := strings.TrimSpace(lower[len("select "):fromIdx])
	if strings.HasPrefix(cols, "distinct ") {
		stmt.distinct = true
		cols = strings.TrimPrefix(cols, "distinct ")
	}
	stmt.cols = splitTopLevel(cols)
	fields := strings.Fields(lower[fromIdx+len(" from "):])
	if len(fields) == 0 {
		return selectStmt{}, fmt.Errorf("cannot parse select: %s", query)
	}
	stmt.table = fields[0]
	for i := 1; i < len(fields); i++ {
		switch {
		case fields[i] == "where" && i+1 < len(fields):
			stmt.whereCol = strings.TrimSuffix(fields[i+1], "=")
		case fields[i] == "by" && i+1 < len(fields):
			stmt.orderCol = fields[i+1]
		}
	}
	return stmt, nil
}
