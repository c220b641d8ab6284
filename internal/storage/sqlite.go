package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLite is a Backend persisting the state blob in a single-row key/value
// table. Suited to installs that already keep other data in SQLite.
type SQLite struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (creating if needed) the database at dsn and prepares
// the state table.
func OpenSQLite(dsn string) (*SQLite, error) {
	if err := EnsureDir(dsn); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS engine_state (
		key        TEXT PRIMARY KEY,
		data       BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	return &SQLite{db: db, key: StateKey}, nil
}

func (s *SQLite) Load() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM engine_state WHERE key = ?`, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load state: %w", err)
	}
	return data, nil
}

func (s *SQLite) Save(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO engine_state (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (s *SQLite) Delete() error {
	if _, err := s.db.Exec(`DELETE FROM engine_state WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user workloads.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
