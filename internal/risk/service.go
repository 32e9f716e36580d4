package risk

import (
	"context"
	"fmt"

	"github.com/calmmind/calmmind/internal/logging"
	"github.com/calmmind/calmmind/internal/metrics"
	"github.com/calmmind/calmmind/internal/traces"
)

// Notifier receives every recorded risk event. The realtime hub
// implements this to push alerts to connected clinician sessions.
type Notifier interface {
	NotifyRiskEvent(event *Event)
}

// Service combines assessment and the audit log. All user content that
// flows through chat or journaling is assessed here so the scoring and
// event recording stay consistent across sources.
type Service struct {
	assessor *Assessor
	store    Store
	notifier Notifier
}

// NewService creates a risk service. notifier may be nil.
func NewService(assessor *Assessor, store Store, notifier Notifier) *Service {
	return &Service{assessor: assessor, store: store, notifier: notifier}
}

// Assess scores a piece of text without recording anything.
func (s *Service) Assess(text string) *Assessment {
	assessment := s.assessor.Assess(text)
	metrics.RiskAssessmentsTotal.WithLabelValues(string(assessment.Level)).Inc()
	return assessment
}

// AssessAndRecord scores the text and appends the result to the audit
// log. A recording failure fails the whole operation: an assessment
// that never reached the audit log must not look like a success to the
// caller.
func (s *Service) AssessAndRecord(ctx context.Context, userID, source, content string) (*Assessment, *Event, error) {
	assessment := s.Assess(content)
	event, err := s.Record(ctx, userID, source, content, assessment)
	if err != nil {
		return nil, nil, err
	}
	return assessment, event, nil
}

// Record appends an already-computed assessment to the audit log.
func (s *Service) Record(ctx context.Context, userID, source, content string, assessment *Assessment) (*Event, error) {
	ctx, span := traces.StartSpan(ctx, "risk.record",
		traces.UserID(userID), traces.Source(source), traces.RiskLevel(string(assessment.Level)))
	defer span.End()

	event := NewEvent(userID, source, content, assessment)
	if err := s.store.Record(ctx, event); err != nil {
		return nil, fmt.Errorf("record risk event: %w", err)
	}
	metrics.RiskEventsRecordedTotal.WithLabelValues(source).Inc()

	if assessment.Level != LevelLow {
		logging.L(ctx).Warn("elevated risk detected",
			"user_id", userID,
			"source", source,
			"level", assessment.Level,
			"score", assessment.Score)
	}

	if s.notifier != nil {
		s.notifier.NotifyRiskEvent(event)
	}

	return event, nil
}

// List returns recent events from the audit log.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Event, error) {
	return s.store.List(ctx, opts)
}
