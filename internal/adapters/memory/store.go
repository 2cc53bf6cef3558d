// Package memory provides the session-scoped in-memory collection store.
// Every mutation swaps in a freshly allocated slice, so a List result is
// never changed underneath its holder and Version can drive change detection.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/csg33k/staffdesk/internal/collection"
	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/ports"
)

type Store[T domain.Entity[T]] struct {
	mu      sync.RWMutex
	kind    domain.Kind
	items   []T
	version uint64
	// next is the id Add hands out. It only grows, so an id freed by
	// Remove stays reserved for a later Insert.
	next int64
}

// New seeds a store. Seed records keep their ids; duplicates are rejected.
func New[T domain.Entity[T]](kind domain.Kind, seed []T) (*Store[T], error) {
	seen := make(map[int64]bool, len(seed))
	items := make([]T, 0, len(seed))
	for _, rec := range seed {
		id := rec.EntityID()
		if id <= 0 {
			return nil, fmt.Errorf("seed %s: %w: %d", kind, domain.ErrInvalidID, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("seed %s: %w: %d", kind, domain.ErrDuplicateID, id)
		}
		seen[id] = true
		items = append(items, rec.WithID(id))
	}
	return &Store[T]{kind: kind, items: items, next: collection.NextID(items)}, nil
}

// MustNew is New for fixed seed data.
func MustNew[T domain.Entity[T]](kind domain.Kind, seed []T) *Store[T] {
	s, err := New(kind, seed)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind reports which entity kind the store holds.
func (s *Store[T]) Kind() domain.Kind { return s.kind }

// Version increments on every successful mutation.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store[T]) Add(_ context.Context, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec = rec.WithID(max(s.next, collection.NextID(s.items)))
	s.next = rec.EntityID() + 1
	s.commit(collection.Append(s.items, rec))
	return rec, nil
}

func (s *Store[T]) Insert(_ context.Context, rec T, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := rec.EntityID()
	if id <= 0 {
		return fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrInvalidID)
	}
	if collection.IndexOf(s.items, id) >= 0 {
		return fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrDuplicateID)
	}
	s.commit(collection.InsertAt(s.items, rec.WithID(id), index))
	s.next = max(s.next, id+1)
	return nil
}

func (s *Store[T]) Replace(_ context.Context, id int64, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := collection.IndexOf(s.items, id)
	if i < 0 {
		return fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrNotFound)
	}
	s.commit(collection.ReplaceAt(s.items, rec.WithID(id), i))
	return nil
}

// ReplaceAll swaps every record in recs by id, or none of them if any id
// is missing.
func (s *Store[T]) ReplaceAll(_ context.Context, recs []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items
	for _, rec := range recs {
		id := rec.EntityID()
		i := collection.IndexOf(items, id)
		if i < 0 {
			return fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrNotFound)
		}
		items = collection.ReplaceAt(items, rec.WithID(id), i)
	}
	if len(recs) > 0 {
		s.commit(items)
	}
	return nil
}

func (s *Store[T]) Remove(_ context.Context, id int64) (ports.Removal[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := collection.IndexOf(s.items, id)
	if i < 0 {
		return ports.Removal[T]{}, fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrNotFound)
	}
	removed := s.items[i]
	s.commit(collection.RemoveAt(s.items, i))
	return ports.Removal[T]{Record: removed, Index: i}, nil
}

func (s *Store[T]) Get(_ context.Context, id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := collection.IndexOf(s.items, id)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrNotFound)
	}
	return s.items[i].WithID(id), nil
}

func (s *Store[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	for i, it := range s.items {
		out[i] = it.WithID(it.EntityID())
	}
	return out, nil
}

// commit must be called with mu held.
func (s *Store[T]) commit(items []T) {
	s.items = items
	s.version++
}

var _ ports.Collection[domain.Employee] = (*Store[domain.Employee])(nil)
