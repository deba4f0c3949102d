// Package memstore provides an in-memory implementation of classify.Store.
package memstore

import (
	"context"
	"sync"

	"github.com/linnemanlabs/trigon/internal/classify"
)

// Store holds classification records in memory. Suitable for dev/testing.
type Store struct {
	mu      sync.RWMutex
	records map[string]*classify.Record // record ID -> record
	order   []string                    // record IDs in first-Put order
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		records: make(map[string]*classify.Record),
	}
}

// Get retrieves a record by its ID. Returns a copy.
func (s *Store) Get(_ context.Context, id string) (*classify.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}
	cp := *r
	return &cp, true, nil
}

// Put stores a copy of the record, replacing any record with the same ID.
func (s *Store) Put(_ context.Context, r *classify.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	cp := *r
	s.records[r.ID] = &cp
	return nil
}

// List returns copies of up to limit records, most recently added first.
func (s *Store) List(_ context.Context, limit int) ([]*classify.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}
	out := make([]*classify.Record, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *s.records[s.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}
