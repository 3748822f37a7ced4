// Package sqlite persists resolved prototypes to a SQLite database using the
// pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"prototypecore/pkg/prototype"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const defaultPath = "prototypes.db"

const schema = `CREATE TABLE IF NOT EXISTS prototype_components (
	entity TEXT NOT NULL,
	component TEXT NOT NULL,
	value TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (entity, component)
)`

const upsert = `INSERT INTO prototype_components (entity, component, value, position)
VALUES (?1, ?2, ?3, (SELECT COALESCE(MAX(position), -1) + 1 FROM prototype_components WHERE entity = ?1))
ON CONFLICT (entity, component) DO UPDATE SET value = excluded.value`

// Sink upserts components into the prototype_components table.
type Sink struct {
	db   *sql.DB
	path string
}

// Open creates the database file (and parent directories) if needed and
// ensures the schema exists.
func Open(ctx context.Context, path string) (*Sink, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create prototype_components table: %w", err)
	}
	return &Sink{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Sink) Path() string { return s.path }

// SetComponent upserts one component. A new component takes the next
// position for its entity; an overwritten one keeps its position.
func (s *Sink) SetComponent(ctx context.Context, entity, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsert, entity, key, value); err != nil {
		return fmt.Errorf("upsert %s.%s: %w", entity, key, err)
	}
	return nil
}

// Prototype returns the stored components of name in position order.
func (s *Sink) Prototype(ctx context.Context, name string) (*prototype.Components, bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT component, value FROM prototype_components WHERE entity = ? ORDER BY position`, name)
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

// Close releases the database handle.
func (s *Sink) Close() error { return s.db.Close() }
