package risk

import (
	"context"
	"sync"
	"testing"
)

func seedEvent(t *testing.T, store Store, level Level, content string) *Event {
	t.Helper()
	e := &Event{
		UserID:    "user-1",
		Source:    "chat",
		Content:   content,
		RiskLevel: level,
		RiskScore: 0.5,
		Sentiment: -0.2,
	}
	if err := store.Record(context.Background(), e); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	return e
}

func TestMemoryStore_RecordAssignsIDAndTimestamp(t *testing.T) {
	store := NewMemoryStore()

	first := seedEvent(t, store, LevelLow, "one")
	second := seedEvent(t, store, LevelHigh, "two")

	if first.ID == 0 || second.ID == 0 {
		t.Fatal("Expected assigned IDs")
	}
	if second.ID <= first.ID {
		t.Errorf("IDs must increase with insertion order: %d then %d", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be assigned")
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	seedEvent(t, store, LevelLow, "oldest")
	seedEvent(t, store, LevelModerate, "middle")
	seedEvent(t, store, LevelHigh, "newest")

	events, err := store.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Content != "newest" || events[2].Content != "oldest" {
		t.Errorf("Expected newest-first ordering, got %s .. %s", events[0].Content, events[2].Content)
	}
}

func TestMemoryStore_MinLevelFilter(t *testing.T) {
	store := NewMemoryStore()
	seedEvent(t, store, LevelLow, "a")
	seedEvent(t, store, LevelHigh, "b")
	seedEvent(t, store, LevelModerate, "c")
	seedEvent(t, store, LevelHigh, "d")

	events, err := store.List(context.Background(), ListOptions{MinLevel: LevelHigh})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 high events, got %d", len(events))
	}
	if events[0].Content != "d" || events[1].Content != "b" {
		t.Errorf("Expected [d b], got [%s %s]", events[0].Content, events[1].Content)
	}

	moderate, err := store.List(context.Background(), ListOptions{MinLevel: LevelModerate})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, e := range moderate {
		if e.RiskLevel == LevelLow {
			t.Errorf("minimumLevel=moderate returned a low event: %+v", e)
		}
	}
}

func TestMemoryStore_Limit(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 10; i++ {
		seedEvent(t, store, LevelLow, "e")
	}

	events, err := store.List(context.Background(), ListOptions{Limit: 3})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("Expected limit of 3, got %d", len(events))
	}

	// Zero limit falls back to the default.
	events, err = store.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 10 {
		t.Errorf("Expected all 10 events under default limit, got %d", len(events))
	}
}

func TestMemoryStore_NewestAfterRecord(t *testing.T) {
	store := NewMemoryStore()
	a := NewAssessor(DefaultKeywords)

	assessment := a.Assess("I can't go on")
	event := NewEvent("u", "chat", "I can't go on", assessment)
	if err := store.Record(context.Background(), event); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	events, err := store.List(context.Background(), ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected exactly 1 event, got %d", len(events))
	}
	got := events[0]
	if got.Content != "I can't go on" || got.Source != "chat" {
		t.Errorf("Unexpected event: %+v", got)
	}
	if got.KeywordHits()[0] != "can't go on" {
		t.Errorf("Keywords not reconstructable: %v", got.KeywordHits())
	}
}

func TestMemoryStore_ConcurrentRecord(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Record(context.Background(), &Event{
				UserID: "u", Source: "chat", Content: "concurrent", RiskLevel: LevelModerate,
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	events, err := store.List(context.Background(), ListOptions{Limit: 100})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 50 {
		t.Errorf("Expected 50 events, got %d (lost writes)", len(events))
	}

	seen := make(map[int64]bool)
	for _, e := range events {
		if seen[e.ID] {
			t.Errorf("Duplicate event ID %d", e.ID)
		}
		seen[e.ID] = true
	}
}
