//go:build integration

package journal

import (
	"context"
	"testing"
	"time"

	"github.com/calmmind/calmmind/internal/testutil"
)

func setupPostgresStore(t *testing.T) (*PostgresStore, func()) {
	t.Helper()

	db, cleanup := testutil.PGTest(t)
	return NewPostgresStore(db), cleanup
}

func TestPostgres_CreateAndListEntries(t *testing.T) {
	store, cleanup := setupPostgresStore(t)
	defer cleanup()

	ctx := context.Background()

	first := &Entry{UserID: "alice", Title: "Morning", Content: "slept badly", Tags: "sleep", RiskScore: 0.2}
	second := &Entry{UserID: "alice", Title: "Evening", Content: "feeling calmer", RiskScore: 0}
	for _, e := range []*Entry{first, second} {
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		if e.ID == 0 {
			t.Error("Expected ID to be assigned")
		}
	}

	entries, err := store.ListEntries(ctx, "alice")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Evening" {
		t.Errorf("Expected newest first, got %q", entries[0].Title)
	}
	if entries[1].Tags != "sleep" {
		t.Errorf("Expected tags to round-trip, got %q", entries[1].Tags)
	}
}

func TestPostgres_ListHighRisk(t *testing.T) {
	store, cleanup := setupPostgresStore(t)
	defer cleanup()

	ctx := context.Background()

	safe := &Entry{UserID: "bob", Content: "good day", RiskScore: 0.1}
	risky := &Entry{UserID: "bob", Content: "dark thoughts again", RiskScore: 0.85}
	for _, e := range []*Entry{safe, risky} {
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	entries, err := store.ListHighRisk(ctx, 0.6)
	if err != nil {
		t.Fatalf("ListHighRisk failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 high-risk entry, got %d", len(entries))
	}
	if entries[0].RiskScore != 0.85 {
		t.Errorf("Expected risk score 0.85, got %f", entries[0].RiskScore)
	}
}

func TestPostgres_MoodLogs(t *testing.T) {
	store, cleanup := setupPostgresStore(t)
	defer cleanup()

	ctx := context.Background()

	mood := &MoodLog{UserID: "carol", Mood: "anxious", Intensity: 7, Notes: "before presentation"}
	if err := store.LogMood(ctx, mood); err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}
	if mood.ID == 0 {
		t.Error("Expected ID to be assigned")
	}

	moods, err := store.ListMoods(ctx, "carol")
	if err != nil {
		t.Fatalf("ListMoods failed: %v", err)
	}
	if len(moods) != 1 {
		t.Fatalf("Expected 1 mood, got %d", len(moods))
	}
	if moods[0].Mood != "anxious" || moods[0].Intensity != 7 {
		t.Errorf("Unexpected mood: %+v", moods[0])
	}
}

func TestPostgres_MoodIntensityConstraint(t *testing.T) {
	store, cleanup := setupPostgresStore(t)
	defer cleanup()

	ctx := context.Background()

	mood := &MoodLog{UserID: "carol", Mood: "fine", Intensity: 15}
	if err := store.LogMood(ctx, mood); err == nil {
		t.Error("Expected CHECK constraint to reject intensity 15")
	}
}

func TestPostgres_UpsertGoal(t *testing.T) {
	store, cleanup := setupPostgresStore(t)
	defer cleanup()

	ctx := context.Background()

	target := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	goal := &Goal{UserID: "dave", Description: "daily walk", Status: GoalInProgress, TargetDate: &target}
	if err := store.UpsertGoal(ctx, goal); err != nil {
		t.Fatalf("UpsertGoal failed: %v", err)
	}
	firstID := goal.ID

	// Same description updates in place
	updated := &Goal{UserID: "dave", Description: "daily walk", Status: GoalCompleted}
	if err := store.UpsertGoal(ctx, updated); err != nil {
		t.Fatalf("UpsertGoal update failed: %v", err)
	}
	if updated.ID != firstID {
		t.Errorf("Expected upsert to reuse ID %d, got %d", firstID, updated.ID)
	}

	goals, err := store.ListGoals(ctx, "dave")
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("Expected 1 goal, got %d", len(goals))
	}
	if goals[0].Status != GoalCompleted {
		t.Errorf("Expected status completed, got %s", goals[0].Status)
	}
}
