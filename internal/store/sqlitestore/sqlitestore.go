// Package sqlitestore keeps the persisted list in one row of a SQLite
// key/value table, the way a browser keeps it in local storage.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/schema"
)

// DefaultFileName is the database file inside the data dir.
const DefaultFileName = "tada.db"

const createTable = `CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Slot reads and writes one key of the slots table.
type Slot struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) the database at path and binds the slot to key.
// path may be ":memory:".
func Open(path, key string) (*Slot, error) {
	if key == "" {
		return nil, errors.New("sqlitestore: empty key")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

// New binds a slot to an already open database. The table must exist or be
// creatable.
func New(db *sql.DB, key string) (*Slot, error) {
	if _, err := db.Exec(createTable); err != nil {
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

// Key returns the slot name.
func (s *Slot) Key() string { return s.key }

func (s *Slot) Load() ([]model.Item, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", s.key, err)
	}
	items, err := schema.Decode([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", s.key, err)
	}
	return items, nil
}

// Save upserts the full serialized list under the slot key.
func (s *Slot) Save(items []model.Item) error {
	b, err := schema.Encode(items)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, s.key, string(b))
	if err != nil {
		return fmt.Errorf("write key %s: %w", s.key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Slot) Close() error {
	return s.db.Close()
}
