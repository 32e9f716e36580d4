package risk

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store for demo/test use.
type MemoryStore struct {
	mu     sync.RWMutex
	events []*Event
	nextID int64
}

// NewMemoryStore creates an in-memory risk event store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Record(ctx context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = s.nextID
	s.nextID++
	event.CreatedAt = time.Now().UTC()

	stored := *event
	s.events = append(s.events, &stored)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, opts ListOptions) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	// Append-only slice is already in insertion order; walk backwards for
	// newest-first.
	result := make([]*Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(result) < limit; i-- {
		e := s.events[i]
		if opts.MinLevel != "" && !e.RiskLevel.AtLeast(opts.MinLevel) {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	return result, nil
}
