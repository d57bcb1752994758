// Package localstore is the durable key-value mirror of the portfolio
// state: a single SQLite file holding one JSON document per logical key.
// It is the offline cache and the fallback source of truth when no remote
// backend is configured.
package localstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lamnguyen/folio/pkg/logger"
)

// Logical keys. The exact spelling is load-bearing: existing deployments
// already persist under these names.
const (
	KeyProfile     = "portfolio-profile"
	KeySkills      = "portfolio-skills"
	KeyExperiences = "portfolio-experiences"
	KeyProjects    = "portfolio-projects"
	KeyAdmin       = "portfolio-admin"
	KeyPassword    = "portfolio-password"
)

type Store struct {
	db     *sql.DB
	path   string
	logger logger.Logger
}

func Open(path string, log logger.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open local store: %w", err)
	}

	// One writer at a time; the store serializes its own writes anyway.
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS portfolio_kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create local store schema: %w", err)
	}

	return &Store{db: db, path: path, logger: log}, nil
}

// Load returns the value stored under key. The second return is false when
// the key has never been written.
func (s *Store) Load(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM portfolio_kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return value, true, nil
}

// Save writes value under key, replacing any previous value. There is no
// transaction across keys; a crash between two Saves can leave keys
// mutually inconsistent, which is accepted for a single-user tool.
func (s *Store) Save(key string, value []byte) error {
	query := `
		INSERT INTO portfolio_kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}
