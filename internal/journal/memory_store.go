package journal

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	moods   []*MoodLog
	goals   []*Goal

	nextEntryID int64
	nextMoodID  int64
	nextGoalID  int64
}

// NewMemoryStore creates an empty in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateEntry(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEntryID++
	entry.ID = s.nextEntryID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

func (s *MemoryStore) ListEntries(ctx context.Context, userID string) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first.
	out := make([]*Entry, 0)
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].UserID == userID {
			e := *s.entries[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListHighRisk(ctx context.Context, threshold float64) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Entry, 0)
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].RiskScore >= threshold {
			e := *s.entries[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

func (s *MemoryStore) LogMood(ctx context.Context, log *MoodLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMoodID++
	log.ID = s.nextMoodID
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	stored := *log
	s.moods = append(s.moods, &stored)
	return nil
}

func (s *MemoryStore) ListMoods(ctx context.Context, userID string) ([]*MoodLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*MoodLog, 0)
	for i := len(s.moods) - 1; i >= 0; i-- {
		if s.moods[i].UserID == userID {
			m := *s.moods[i]
			out = append(out, &m)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpsertGoal(ctx context.Context, goal *Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, existing := range s.goals {
		if existing.UserID == goal.UserID && existing.Description == goal.Description {
			existing.Status = goal.Status
			existing.TargetDate = goal.TargetDate
			existing.UpdatedAt = now
			*goal = *existing
			return nil
		}
	}

	s.nextGoalID++
	goal.ID = s.nextGoalID
	goal.CreatedAt = now
	goal.UpdatedAt = now

	stored := *goal
	s.goals = append(s.goals, &stored)
	return nil
}

func (s *MemoryStore) ListGoals(ctx context.Context, userID string) ([]*Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Goal, 0)
	for _, g := range s.goals {
		if g.UserID == userID {
			goal := *g
			out = append(out, &goal)
		}
	}
	return out, nil
}
