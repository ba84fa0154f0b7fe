// Package runlog keeps an append-only record of composed engine command
// lines so that any run can be reproduced from its stored argument vector.
package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/statforge/gostan/pkg/errors"
	"github.com/statforge/gostan/pkg/logging"
	"github.com/statforge/gostan/pkg/stanargs"
)

// Entry is one recorded command line.
type Entry struct {
	ID        string
	Method    string
	Argv      []string
	CreatedAt time.Time
}

// Store persists entries in SQLite. The path ":memory:" keeps the record
// in-process, which the tests use.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	initialized sync.Once
}

// NewStore opens (and if needed creates) the record at the given path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to open run log"),
			errors.Fields{"path": path},
		)
	}

	store := &Store{
		db:   db,
		path: path,
	}
	if err := store.ensureInitialized(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureInitialized() error {
	var initErr error
	s.initialized.Do(func() {
		// WAL keeps concurrent readers cheap while runs append.
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			initErr = errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
			return
		}

		query := `
        CREATE TABLE IF NOT EXISTS run_log (
            id TEXT PRIMARY KEY,
            method TEXT NOT NULL,
            argv TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );

        CREATE INDEX IF NOT EXISTS idx_run_log_created_at
        ON run_log(created_at);
        `

		if _, err := s.db.Exec(query); err != nil {
			initErr = errors.WithFields(
				errors.Wrap(err, errors.StorageFailed, "failed to initialize run log"),
				errors.Fields{"query": query},
			)
			return
		}
	})
	return initErr
}

// Record stores a composed argument vector and returns its generated id.
func (s *Store) Record(ctx context.Context, method stanargs.Method, argv []string) (string, error) {
	if err := errors.CheckContext(ctx, "record run"); err != nil {
		return "", err
	}
	if err := s.ensureInitialized(); err != nil {
		return "", err
	}

	encoded, err := json.Marshal(argv)
	if err != nil {
		return "", errors.Wrap(err, errors.StorageFailed, "failed to encode argv")
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO run_log (id, method, argv) VALUES (?, ?, ?)",
		id, method.String(), string(encoded),
	)
	if err != nil {
		return "", errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to record run"),
			errors.Fields{"id": id, "method": method.String()},
		)
	}

	logging.GetLogger().Debug(ctx, "recorded run %s (%s, %d tokens)", id, method, len(argv))
	return id, nil
}

// Get returns the entry with the given id.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	if err := errors.CheckContext(ctx, "get run"); err != nil {
		return Entry{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, method, argv, created_at FROM run_log WHERE id = ?", id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, errors.WithFields(
			errors.New(errors.InvalidInput, "no such run"),
			errors.Fields{"id": id},
		)
	}
	if err != nil {
		return Entry{}, errors.Wrap(err, errors.StorageFailed, "failed to read run")
	}
	return entry, nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if err := errors.CheckContext(ctx, "list runs"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, method, argv, created_at FROM run_log ORDER BY created_at DESC, id LIMIT ?",
		limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to list runs")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan run")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to iterate runs")
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to close run log")
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (Entry, error) {
	var entry Entry
	var encoded string
	if err := row.Scan(&entry.ID, &entry.Method, &encoded, &entry.CreatedAt); err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(encoded), &entry.Argv); err != nil {
		return Entry{}, err
	}
	return entry, nil
}
