// Package store handles the SQLite passage cache.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/JackRKennedy/terminal-typing/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrCacheEmpty reports that no passage has been cached yet.
var ErrCacheEmpty = errors.New("passage cache is empty")

// Retained passages beyond this count are pruned, oldest first.
const cacheLimit = 100

// Store wraps SQLite access for cached passages.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS passages (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			source TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_passages_fetched_at ON passages(fetched_at);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_passages_body ON passages(body);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePassage caches a fetched passage and prunes the oldest entries
// beyond the retention limit. Re-fetching a known passage refreshes its
// timestamp instead of duplicating it.
func (s *Store) SavePassage(ctx context.Context, p model.Passage, source string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO passages (title, body, source, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(body) DO UPDATE SET fetched_at = excluded.fetched_at`,
		p.Title, p.Body, source, time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM passages WHERE id NOT IN (
			SELECT id FROM passages ORDER BY fetched_at DESC LIMIT ?
		)`, cacheLimit)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RandomPassage returns a uniformly random cached passage, or
// ErrCacheEmpty when nothing has been cached.
func (s *Store) RandomPassage(ctx context.Context) (model.Passage, error) {
	var p model.Passage
	err := s.db.QueryRowContext(ctx,
		`SELECT title, body FROM passages ORDER BY RANDOM() LIMIT 1`,
	).Scan(&p.Title, &p.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Passage{}, ErrCacheEmpty
	}
	if err != nil {
		return model.Passage{}, err
	}
	return p, nil
}

// ListPassages returns cached passages, most recently fetched first.
func (s *Store) ListPassages(ctx context.Context) ([]model.CachedPassage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, body, source, fetched_at FROM passages ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var passages []model.CachedPassage
	for rows.Next() {
		var p model.CachedPassage
		var fetchedAt string
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Source, &fetchedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, fetchedAt)
		if err != nil {
			return nil, err
		}
		p.FetchedAt = parsed
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return passages, nil
}

// Count returns the number of cached passages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
