// Package buildstate persists per-file content hashes and build records in
// SQLite so unchanged pages can skip re-rendering between builds.
package buildstate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed build-state database.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// BuildRecord summarizes one completed build.
type BuildRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Pages      int
	Assets     int
	Outcome    string // "success" or "failure"
}

// Open opens (and initializes) the build-state database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create build-state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		rel_path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		rendered_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		assets INTEGER NOT NULL,
		outcome TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// FileHash returns the stored hash for relPath, with ok=false when the file
// has never been recorded.
func (s *Store) FileHash(ctx context.Context, relPath string) (hash string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT hash FROM files WHERE rel_path = ?", relPath)
	switch err := row.Scan(&hash); err {
	case nil:
		return hash, true, nil
	case sql.ErrNoRows:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("query file hash: %w", err)
	}
}

// PutFileHash upserts the hash for relPath.
func (s *Store) PutFileHash(ctx context.Context, relPath, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO files (rel_path, hash, rendered_at) VALUES (?, ?, ?) ON CONFLICT(rel_path) DO UPDATE SET hash = excluded.hash, rendered_at = excluded.rendered_at",
		relPath, hash, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert file hash: %w", err)
	}
	return nil
}

// PruneExcept removes file records whose rel_path is not in keep. Stale
// records would otherwise accumulate as posts are renamed or deleted.
func (s *Store) PruneExcept(ctx context.Context, keep []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keepSet := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		keepSet[k] = struct{}{}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT rel_path FROM files")
	if err != nil {
		return fmt.Errorf("query files: %w", err)
	}
	var stale []string
	for rows.Next() {
		var relPath string
		if err := rows.Scan(&relPath); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan file row: %w", err)
		}
		if _, ok := keepSet[relPath]; !ok {
			stale = append(stale, relPath)
		}
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, relPath := range stale {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE rel_path = ?", relPath); err != nil {
			return fmt.Errorf("delete stale file record: %w", err)
		}
	}
	return nil
}

// ConfigHash returns the stored configuration signature, empty when unset.
func (s *Store) ConfigHash(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	row := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'config_hash'")
	switch err := row.Scan(&value); err {
	case nil:
		return value, nil
	case sql.ErrNoRows:
		return "", nil
	default:
		return "", fmt.Errorf("query config hash: %w", err)
	}
}

// SetConfigHash stores the configuration signature.
func (s *Store) SetConfigHash(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES ('config_hash', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		hash,
	)
	if err != nil {
		return fmt.Errorf("store config hash: %w", err)
	}
	return nil
}

// RecordBuild appends a build record.
func (s *Store) RecordBuild(ctx context.Context, rec BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (id, started_at, finished_at, pages, assets, outcome) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.StartedAt.Unix(), rec.FinishedAt.Unix(), rec.Pages, rec.Assets, rec.Outcome,
	)
	if err != nil {
		return fmt.Errorf("insert build record: %w", err)
	}
	return nil
}

// RecentBuilds returns the most recent build records, newest first.
func (s *Store) RecentBuilds(ctx context.Context, limit int) ([]BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, finished_at, pages, assets, outcome FROM builds ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var records []BuildRecord
	for rows.Next() {
		var rec BuildRecord
		var started, finished int64
		if err := rows.Scan(&rec.ID, &started, &finished, &rec.Pages, &rec.Assets, &rec.Outcome); err != nil {
			return nil, fmt.Errorf("scan build row: %w", err)
		}
		rec.StartedAt = time.Unix(started, 0)
		rec.FinishedAt = time.Unix(finished, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}
