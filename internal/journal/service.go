package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/calmmind/calmmind/internal/metrics"
	"github.com/calmmind/calmmind/internal/risk"
	"github.com/calmmind/calmmind/internal/traces"
)

// Service provides journaling business logic.
type Service struct {
	store Store
	risk  *risk.Service
}

// NewService creates a new journal service.
func NewService(store Store, riskSvc *risk.Service) *Service {
	return &Service{store: store, risk: riskSvc}
}

// CreateEntry assesses the entry content, stores the entry with its
// risk score, and appends a "journal" event to the risk audit log.
// The entry is persisted before the audit write; if the audit write
// fails the caller gets an error even though the entry exists, so the
// failure is never silent.
func (s *Service) CreateEntry(ctx context.Context, userID, title, content, tags string) (*Entry, *risk.Assessment, error) {
	ctx, span := traces.StartSpan(ctx, "journal.create_entry", traces.UserID(userID))
	defer span.End()

	assessment := s.risk.Assess(content)

	entry := &Entry{
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		RiskScore: assessment.Score,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, nil, fmt.Errorf("create journal entry: %w", err)
	}
	metrics.JournalEntriesTotal.Inc()

	if _, err := s.risk.Record(ctx, userID, risk.SourceJournal, content, assessment); err != nil {
		return nil, nil, err
	}

	return entry, assessment, nil
}

// ListEntries returns a user's journal history, newest first.
func (s *Service) ListEntries(ctx context.Context, userID string) ([]*Entry, error) {
	return s.store.ListEntries(ctx, userID)
}

// HighRiskEntries returns entries at or above the risk score threshold,
// newest first. Used by the clinician alert feed.
func (s *Service) HighRiskEntries(ctx context.Context, threshold float64) ([]*Entry, error) {
	return s.store.ListHighRisk(ctx, threshold)
}

// LogMood records a mood snapshot.
func (s *Service) LogMood(ctx context.Context, userID, mood string, intensity int, notes string) (*MoodLog, error) {
	if intensity < 1 || intensity > 10 {
		return nil, fmt.Errorf("intensity %d out of range 1-10", intensity)
	}

	log := &MoodLog{
		UserID:    userID,
		Mood:      strings.TrimSpace(mood),
		Intensity: intensity,
		Notes:     notes,
	}
	if err := s.store.LogMood(ctx, log); err != nil {
		return nil, fmt.Errorf("log mood: %w", err)
	}
	metrics.MoodLogsTotal.Inc()

	return log, nil
}

// ListMoods returns a user's mood history, newest first.
func (s *Service) ListMoods(ctx context.Context, userID string) ([]*MoodLog, error) {
	return s.store.ListMoods(ctx, userID)
}

// UpsertGoal creates a goal or updates the status and target date of
// the user's existing goal with the same description.
func (s *Service) UpsertGoal(ctx context.Context, userID, description, status string, targetDate *time.Time) (*Goal, error) {
	if status == "" {
		status = GoalInProgress
	}

	goal := &Goal{
		UserID:      userID,
		Description: strings.TrimSpace(description),
		Status:      status,
		TargetDate:  targetDate,
	}
	if err := s.store.UpsertGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("upsert goal: %w", err)
	}

	return goal, nil
}

// ListGoals returns all goals for a user.
func (s *Service) ListGoals(ctx context.Context, userID string) ([]*Goal, error) {
	return s.store.ListGoals(ctx, userID)
}
