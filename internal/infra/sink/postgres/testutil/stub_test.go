package testutil

import (
	"context"
	"database/sql/driver"
	"testing"
)

func TestStubUpsertAssignsOrdinalsPerGroup(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	const q = "INSERT INTO items (owner, name, val, pos) VALUES ($1, $2, $3, (SELECT COALESCE(MAX(pos), -1) + 1 FROM items WHERE owner = $1)) ON CONFLICT (owner, name) DO UPDATE SET val = EXCLUDED.val"
	exec := func(owner, name, val string) {
		t.Helper()
		args := []driver.NamedValue{{Ordinal: 1, Value: owner}, {Ordinal: 2, Value: name}, {Ordinal: 3, Value: val}}
		if _, err := conn.ExecContext(ctx, q, args); err != nil {
			t.Fatalf("exec: %v", err)
		}
	}
	exec("a", "x", "1")
	exec("b", "x", "1")
	exec("a", "y", "2")
	exec("a", "x", "3")

	rows := conn.Rows("items")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %v", rows)
	}
	if rows[0]["val"] != "3" || rows[0]["pos"] != int64(0) {
		t.Fatalf("expected a.x overwritten in place, got %v", rows[0])
	}
	if rows[2]["name"] != "y" || rows[2]["pos"] != int64(1) {
		t.Fatalf("expected a.y at position 1, got %v", rows[2])
	}
}

func TestStubSelectFiltersOrdersAndDistincts(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.Tables["items"] = []map[string]any{
		{"owner": "b", "name": "z", "pos": int64(1)},
		{"owner": "b", "name": "w", "pos": int64(0)},
		{"owner": "a", "name": "q", "pos": int64(0)},
	}
	rows, err := conn.QueryContext(ctx, "SELECT name FROM items WHERE owner = $1 ORDER BY pos", []driver.NamedValue{{Ordinal: 1, Value: "b"}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	dest := make([]driver.Value, 1)
	var got []any
	for rows.Next(dest) == nil {
		got = append(got, dest[0])
	}
	if len(got) != 2 || got[0] != "w" || got[1] != "z" {
		t.Fatalf("unexpected rows %v", got)
	}
	rows, err = conn.QueryContext(ctx, "SELECT DISTINCT owner FROM items ORDER BY owner", nil)
	if err != nil {
		t.Fatalf("query distinct: %v", err)
	}
	got = nil
	for rows.Next(dest) == nil {
		got = append(got, dest[0])
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected distinct rows %v", got)
	}
}

func TestStubFailureToggles(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.FailPing, conn.FailExec, conn.FailQuery = true, true, true
	if err := conn.Ping(ctx); err == nil {
		t.Fatalf("expected ping failure")
	}
	if _, err := conn.ExecContext(ctx, "CREATE TABLE x (a TEXT)", nil); err == nil {
		t.Fatalf("expected exec failure")
	}
	if _, err := conn.QueryContext(ctx, "SELECT a FROM x", nil); err == nil {
		t.Fatalf("expected query failure")
	}
}
