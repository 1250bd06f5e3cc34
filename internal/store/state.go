// Package store persists client-side state in a local SQLite database.
// The scholar TUI keeps only two durable things on disk: the authenticated
// session identity and the theme preference, each under a fixed key. Values
// are JSON so callers get a typed load/save boundary instead of scattering
// raw key access through the codebase.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"optischolar/internal/logging"
)

// Fixed keys for persisted client state.
const (
	KeySession = "session"
	KeyTheme   = "theme"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("store: key not found")

// StateStore is a small SQLite-backed key-value store.
type StateStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*StateStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store.Open")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.Get(logging.CategoryStore).Debug("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.Get(logging.CategoryStore).Debug("failed to set journal_mode=WAL: %v", err)
	}

	s := &StateStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.Store("state store ready at %s", path)
	return s, nil
}

func (s *StateStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize state schema: %w", err)
	}
	return nil
}

// Put stores v under key, JSON-encoded. Existing values are replaced.
func (s *StateStore) Put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		`INSERT INTO state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data))
	if err != nil {
		logging.StoreError("put %q failed: %v", key, err)
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	return nil
}

// Get loads the value stored under key into out. Returns ErrNotFound when the
// key is absent. A value that no longer decodes is treated the same as an
// absent one: the stale row is deleted and ErrNotFound returned, so a corrupt
// entry can never wedge startup.
func (s *StateStore) Get(key string, out interface{}) error {
	s.mu.RLock()
	var raw string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&raw)
	s.mu.RUnlock()

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		logging.StoreError("get %q failed: %v", key, err)
		return fmt.Errorf("failed to load %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logging.StoreError("value for %q is malformed, discarding: %v", key, err)
		_ = s.Delete(key)
		return ErrNotFound
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (s *StateStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		logging.StoreError("delete %q failed: %v", key, err)
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *StateStore) Close() error {
	return s.db.Close()
}
