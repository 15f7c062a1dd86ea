package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rbxasset/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.SnapshotStore using SQLite. Each write replaces the
// previous snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements SnapshotStore
var _ ports.SnapshotStore = (*Store)(nil)

// Open opens or creates the snapshot database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS assets (
			path TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			kind TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assets_filename ON assets(filename);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WriteSnapshot replaces the stored snapshot within one transaction
func (s *Store) WriteSnapshot(ctx context.Context, snap ports.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assets`); err != nil {
		return fmt.Errorf("failed to clear assets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assets (path, asset_id, filename, kind)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range snap.Entries {
		if _, err := stmt.ExecContext(ctx, e.Path, e.ID, e.Filename(), e.Kind().String()); err != nil {
			return fmt.Errorf("failed to insert %s: %w", e.Path, err)
		}
	}

	meta := map[string]string{
		"schema_version": schemaVersion,
		"root":           snap.Root,
		"mapping_path":   snap.MappingPath,
		"generated_at":   snap.GeneratedAt.Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to write meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of exported assets
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&n)
	return n, err
}

// Meta returns a stored metadata value, or "" if unset
func (s *Store) Meta(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

// LookupByFilename returns exported paths for a filename, ordered by path
func (s *Store) LookupByFilename(ctx context.Context, filename string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM assets WHERE filename = ? ORDER BY path`, filename)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
