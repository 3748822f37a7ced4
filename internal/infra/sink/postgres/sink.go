// Package postgres persists resolved prototypes to Postgres through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"prototypecore/pkg/prototype"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	// DefaultDSN is used when Open receives an empty DSN.
	DefaultDSN = "postgres://localhost/prototypes?sslmode=disable"
)

const schema = `CREATE TABLE IF NOT EXISTS prototype_components (
	entity TEXT NOT NULL,
	component TEXT NOT NULL,
	value TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (entity, component)
)`

const upsert = `INSERT INTO prototype_components (entity, component, value, position) VALUES ($1, $2, $3, (SELECT COALESCE(MAX(position), -1) + 1 FROM prototype_components WHERE entity = $1)) ON CONFLICT (entity, component) DO UPDATE SET value = EXCLUDED.value`

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Sink upserts components into the prototype_components table.
type Sink struct {
	db *sql.DB
}

// Open connects using dsn (falls back to DefaultDSN), pings the server and
// ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Sink, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure prototype_components table: %w", err)
	}
	return &Sink{db: db}, nil
}

// SetComponent upserts one component, keeping the position of an
// overwritten key.
func (s *Sink) SetComponent(ctx context.Context, entity, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsert, entity, key, value); err != nil {
		return fmt.Errorf("upsert %s.%s: %w", entity, key, err)
	}
	return nil
}

// Prototype returns the stored components of name in position order.
func (s *Sink) Prototype(ctx context.Context, name string) (*prototype.Components, bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT component, value FROM prototype_components WHERE entity = $1 ORDER BY position`, name)
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()
	comps := prototype.NewComponents()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, false, fmt.Errorf("scan: %w", err)
		}
		comps.Set(key, value)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return comps, comps.Len() > 0, nil
}

// Names returns every stored entity, sorted.
func (s *Sink) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT entity FROM prototype_components ORDER BY entity`)
	if err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Sink) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Sink) Close() error { return s.db.Close() }

// OverrideSQLOpen swaps the sql.Open function used by Open, returning a
// restore func. Tests use it to inject a stub driver.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
