package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/okian/dugout/internal/domain/model"
)

// MemoryStore keeps overrides in a map. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.Override
	closed  bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.Override)}
}

// ListAll returns a copy of every record.
func (s *MemoryStore) ListAll(ctx context.Context) (map[string]model.Override, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make(map[string]model.Override, len(s.records))
	for id, o := range s.records {
		out[id] = model.Override{}.Overlay(o)
	}
	return out, nil
}

// Get returns the record for id.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Override, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Override{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.Override{}, false, ErrClosed
	}
	o, ok := s.records[id]
	if !ok {
		return model.Override{}, false, nil
	}
	return model.Override{}.Overlay(o), true, nil
}

// Upsert creates or patches the record for id.
func (s *MemoryStore) Upsert(ctx context.Context, id string, patch model.Override) (model.Override, error) {
	if err := ctx.Err(); err != nil {
		return model.Override{}, err
	}
	if strings.TrimSpace(id) == "" {
		return model.Override{}, ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Override{}, ErrClosed
	}
	stored := s.records[id].Overlay(patch)
	s.records[id] = stored
	return model.Override{}.Overlay(stored), nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
