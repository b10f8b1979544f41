// Package store owns the canonical to-do list and mirrors it to a persistent
// slot. Every mutation overwrites the slot in full.
package store

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

// DefaultKey is the name of the persistent slot.
const DefaultKey = "list"

// Slot is a single named location holding the serialized list.
// Load returns nil, nil when nothing was ever saved.
type Slot interface {
	Load() ([]model.Item, error)
	Save(items []model.Item) error
}

// Celebrator fires the particle burst. It must not block.
type Celebrator interface {
	Celebrate()
}

// CelebratorFunc adapts a plain function to Celebrator.
type CelebratorFunc func()

func (f CelebratorFunc) Celebrate() { f() }

type noCelebration struct{}

func (noCelebration) Celebrate() {}

// Store is the List Store. The zero value is not usable; call New.
type Store struct {
	slot   Slot
	party  Celebrator
	logger *log.Logger

	// mu also covers the slot write, so saves land in mutation order.
	mu    sync.Mutex
	items []model.Item
}

// Option tunes a Store at construction.
type Option func(*Store)

// WithCelebrator sets what Remove triggers.
func WithCelebrator(c Celebrator) Option {
	return func(s *Store) {
		if c != nil {
			s.party = c
		}
	}
}

// WithLogger routes store diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store bound to slot. Call Hydrate to read prior state.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		party:  noCelebration{},
		logger: log.New(io.Discard),
		items:  []model.Item{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Hydrate replaces the in-memory list with the slot's content. An absent,
// unreadable or empty slot yields an empty list and is not an error.
func (s *Store) Hydrate() {
	items, err := s.slot.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Debug("persisted list ignored", "err", err)
		s.items = []model.Item{}
		return
	}
	if len(items) == 0 {
		s.items = []model.Item{}
		return
	}
	s.items = append([]model.Item(nil), items...)
	s.logger.Debug("hydrated", "items", len(s.items))
}

// Add appends a new item and persists the whole list. A *model.ValidationError
// is returned, with nothing changed, when title or description is empty, and
// model.ErrIDExhausted when the last item holds the largest id. Invalid UTF-8
// is replaced with U+FFFD before the item is stored.
func (s *Store) Add(title, description string) (model.Item, error) {
	if err := model.Validate(title, description); err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := model.NextID(s.items)
	if err != nil {
		return model.Item{}, err
	}
	it := model.Item{
		ID:          id,
		Title:       strings.ToValidUTF8(title, "\uFFFD"),
		Description: strings.ToValidUTF8(description, "\uFFFD"),
	}
	next := make([]model.Item, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, it)
	s.items = next

	s.persist(next)
	s.logger.Debug("added", "id", it.ID)
	return it, nil
}

// Remove drops every item with the given id, persists the result and fires
// the celebration, whether or not anything matched. It reports whether an
// item was removed.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	next := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	removed := len(next) != len(s.items)
	s.items = next
	s.persist(next)
	s.mu.Unlock()

	s.party.Celebrate()
	s.logger.Debug("removed", "id", id, "found", removed)
	return removed
}

// Items returns a snapshot in insertion order.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item{}, s.items...)
}

// Len returns the number of live items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// persist writes the full list. A failed write leaves the in-memory list
// authoritative for the rest of the session.
func (s *Store) persist(items []model.Item) {
	if err := s.slot.Save(items); err != nil {
		s.logger.Warn("list not persisted", "err", err)
	}
}
