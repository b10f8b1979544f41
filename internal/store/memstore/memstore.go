// Package memstore keeps the persisted list in memory, serialized the same
// way the durable backends serialize it.
package memstore

import (
	"errors"
	"sync"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/schema"
)

// ErrWriteFailed is returned by Save after FailWrites(true).
var ErrWriteFailed = errors.New("memstore: write failed")

// Slot is an in-memory persistent slot.
type Slot struct {
	mu        sync.Mutex
	raw       []byte
	saves     int
	loads     int
	failWrite bool
}

// New returns an empty slot.
func New() *Slot { return &Slot{} }

// NewWith returns a slot already holding items.
func NewWith(items []model.Item) *Slot {
	s := New()
	b, _ := schema.Encode(items)
	s.raw = b
	return s
}

func (s *Slot) Load() ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.raw == nil {
		return nil, nil
	}
	return schema.Decode(s.raw)
}

func (s *Slot) Save(items []model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return ErrWriteFailed
	}
	b, err := schema.Encode(items)
	if err != nil {
		return err
	}
	s.raw = b
	s.saves++
	return nil
}

// Raw returns a copy of the serialized content, nil when never written.
func (s *Slot) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return nil
	}
	return append([]byte(nil), s.raw...)
}

// SetRaw replaces the serialized content as-is, e.g. with corrupt data.
func (s *Slot) SetRaw(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = append([]byte(nil), b...)
}

// Saves counts successful writes.
func (s *Slot) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Loads counts reads.
func (s *Slot) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// FailWrites makes subsequent saves fail (or succeed again).
func (s *Slot) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = fail
}
