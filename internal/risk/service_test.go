package risk

import (
	"context"
	"testing"
)

type captureNotifier struct {
	events []*Event
}

func (n *captureNotifier) NotifyRiskEvent(event *Event) {
	n.events = append(n.events, event)
}

func TestServiceAssessAndRecord(t *testing.T) {
	store := NewMemoryStore()
	notifier := &captureNotifier{}
	svc := NewService(NewAssessor(DefaultKeywords), store, notifier)

	assessment, event, err := svc.AssessAndRecord(context.Background(), "alice", SourceChat, "I want to hurt myself")
	if err != nil {
		t.Fatalf("AssessAndRecord failed: %v", err)
	}
	if assessment.Level != LevelHigh {
		t.Errorf("Expected high level, got %s", assessment.Level)
	}
	if event.ID == 0 {
		t.Error("Expected event ID to be assigned")
	}
	if event.UserID != "alice" || event.Source != SourceChat {
		t.Errorf("Unexpected event provenance: %+v", event)
	}

	if len(notifier.events) != 1 {
		t.Fatalf("Expected notifier to receive 1 event, got %d", len(notifier.events))
	}
	if notifier.events[0] != event {
		t.Error("Expected notifier to receive the recorded event")
	}

	stored, err := svc.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("Expected 1 stored event, got %d", len(stored))
	}
}

func TestServiceNilNotifier(t *testing.T) {
	svc := NewService(NewAssessor(DefaultKeywords), NewMemoryStore(), nil)

	_, _, err := svc.AssessAndRecord(context.Background(), "bob", SourceJournal, "Feeling okay today")
	if err != nil {
		t.Fatalf("AssessAndRecord failed: %v", err)
	}
}
