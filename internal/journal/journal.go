// Package journal tracks journal entries, mood logs, and goals per user.
//
// Journal content is scored for risk on write; the score is stored with
// the entry so clinicians can query for concerning entries later without
// re-running the assessment.
package journal

import (
	"context"
	"errors"
	"time"
)

// ErrGoalNotFound is returned when a goal lookup misses.
var ErrGoalNotFound = errors.New("goal not found")

// DefaultAlertThreshold is the risk score above which a journal entry
// is surfaced on the clinician alert feed.
const DefaultAlertThreshold = 0.6

// Goal status values.
const (
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
	GoalPaused     = "paused"
)

// Entry is a free-form journal entry captured from guided prompts.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags,omitempty"` // comma-separated topic tags
	RiskScore float64   `json:"risk_score"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodLog is a quantitative mood snapshot.
type MoodLog struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      string    `json:"mood"`
	Intensity int       `json:"intensity"` // 1-10
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Goal is a client goal tracked over time. Goals are upserted by
// (user_id, description): posting the same description again updates
// the status and target date instead of creating a duplicate.
type Goal struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Store persists journal data.
type Store interface {
	CreateEntry(ctx context.Context, entry *Entry) error
	ListEntries(ctx context.Context, userID string) ([]*Entry, error)
	ListHighRisk(ctx context.Context, threshold float64) ([]*Entry, error)

	LogMood(ctx context.Context, log *MoodLog) error
	ListMoods(ctx context.Context, userID string) ([]*MoodLog, error)

	UpsertGoal(ctx context.Context, goal *Goal) error
	ListGoals(ctx context.Context, userID string) ([]*Goal, error)
}
