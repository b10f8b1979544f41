package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/schema"
)

// JSON-backed slot. Single file, human-readable, portable.
// No locking; fine for a local single-user tool.

// DefaultFileName is the slot file inside the data dir.
const DefaultFileName = "todos.json"

// Slot persists the list to one JSON file.
type Slot struct {
	path string
}

// New returns a slot at path. Nothing is read or created yet.
func New(path string) *Slot {
	return &Slot{path: path}
}

// NewInDir returns a slot for DefaultFileName in dir.
func NewInDir(dir string) *Slot {
	return New(filepath.Join(dir, DefaultFileName))
}

// Path returns the file backing the slot.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Load() ([]model.Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	items, err := schema.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return items, nil
}

// Save replaces the file content with the full list.
func (s *Slot) Save(items []model.Item) error {
	b, err := schema.Encode(items)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	// readers see the old list or the new one, never a partial write
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
