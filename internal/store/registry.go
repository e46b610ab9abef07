package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const registryFileName = "registry.sqlite"

// RegistryEntry is one known project in the per-user registry.
type RegistryEntry struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	LastOpened time.Time `json:"lastOpened"`
}

func registryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, registryFileName), nil
}

func openRegistry(ctx context.Context) (*sql.DB, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS projects (
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		last_opened_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// TouchRegistry upserts a project into the registry, stamping the
// last-opened time. Paths are stored absolute so entries stay stable
// across working directories.
func TouchRegistry(ctx context.Context, name, root string, now time.Time) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	db, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO projects(path, name, last_opened_unixms) VALUES(?, ?, ?)`,
		abs, name, now.UTC().UnixMilli())
	return err
}

// ListRegistry returns known projects, most recently opened first.
func ListRegistry(ctx context.Context) ([]RegistryEntry, error) {
	db, err := openRegistry(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT path, name, last_opened_unixms FROM projects ORDER BY last_opened_unixms DESC, path ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RegistryEntry{}
	for rows.Next() {
		var e RegistryEntry
		var ms int64
		if err := rows.Scan(&e.Path, &e.Name, &ms); err != nil {
			return nil, err
		}
		e.LastOpened = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
