// Package risk implements crisis-risk scoring for user text.
//
// Every chat message and journal entry is scored by blending sentiment
// polarity with configured crisis-keyword matches. Scores range from 0.0
// (safe) to 1.0 (high risk) and map onto three levels; any keyword hit
// escalates straight to high regardless of the continuous score, because a
// missed crisis signal costs far more than a false alarm. Assessments that
// originate from a chat or journal submission are persisted as events for
// clinician review.
package risk

import (
	"context"
	"strings"
	"time"
)

// Level is the discrete severity bucket assigned to a piece of text.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Event sources identify which surface produced the assessed content.
const (
	SourceChat    = "chat"
	SourceJournal = "journal"
)

// Scoring constants. Sentiment dominates the continuous score, but explicit
// crisis language overrides it entirely via the level rule.
const (
	SentimentWeight = 0.6
	KeywordWeight   = 0.4

	HighThreshold     = 0.7
	ModerateThreshold = 0.4
)

// DefaultKeywords are the crisis phrases matched when no RISK_KEYWORDS
// configuration is supplied.
var DefaultKeywords = []string{
	"suicide",
	"kill myself",
	"can't go on",
	"hurt myself",
	"ending it",
}

// levelRank orders levels for minimum-level filtering: low < moderate < high.
var levelRank = map[Level]int{
	LevelLow:      0,
	LevelModerate: 1,
	LevelHigh:     2,
}

// ParseLevel normalizes a level string. Unrecognized values return ok=false;
// callers treat that as "no filter" rather than rejecting the request.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	_, ok := levelRank[l]
	return l, ok
}

// AtLeast reports whether l is greater-or-equal to min in severity.
func (l Level) AtLeast(min Level) bool {
	return levelRank[l] >= levelRank[min]
}

// Assessment is the result of scoring a single piece of text. It is computed
// per call and never persisted directly; Event carries the durable copy.
type Assessment struct {
	Sentiment   float64  `json:"sentiment"`   // polarity in [-1, 1]
	KeywordHits []string `json:"keywordHits"` // configured order, may be empty
	Score       float64  `json:"score"`       // composite in [0, 1]
	Level       Level    `json:"level"`
}

// Event is the durable audit record pairing an assessment with its origin.
// Events are append-only: the store assigns ID and CreatedAt on insert, and
// nothing ever updates or deletes them.
type Event struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Source    string    `json:"source"`  // "chat" or "journal"
	Content   string    `json:"content"` // original text, verbatim
	RiskLevel Level     `json:"riskLevel"`
	RiskScore float64   `json:"riskScore"`
	Sentiment float64   `json:"sentiment"`
	Keywords  string    `json:"keywords,omitempty"` // comma-joined hits
	CreatedAt time.Time `json:"createdAt"`
}

// NewEvent builds an event from an assessment and its provenance.
func NewEvent(userID, source, content string, a *Assessment) *Event {
	return &Event{
		UserID:    userID,
		Source:    source,
		Content:   content,
		RiskLevel: a.Level,
		RiskScore: a.Score,
		Sentiment: a.Sentiment,
		Keywords:  strings.Join(a.KeywordHits, ","),
	}
}

// KeywordHits reconstructs the original hit list from the stored
// comma-joined form.
func (e *Event) KeywordHits() []string {
	if e.Keywords == "" {
		return nil
	}
	return strings.Split(e.Keywords, ",")
}

// ListOptions filter event retrieval.
type ListOptions struct {
	// MinLevel filters to events at or above this severity. Empty means no
	// filter.
	MinLevel Level
	// Limit caps returned rows. Zero or negative uses DefaultListLimit.
	Limit int
}

// DefaultListLimit is applied when a query does not specify a limit.
const DefaultListLimit = 50

// Store persists risk events for the clinician audit trail.
//
// Record assigns ID and CreatedAt. List returns events newest-first. Both
// surface storage failures directly; there is no retry or buffering, a
// dropped event is treated as worse than a failed request.
type Store interface {
	Record(ctx context.Context, event *Event) error
	List(ctx context.Context, opts ListOptions) ([]*Event, error)
}
