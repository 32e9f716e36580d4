package resources

import (
	"reflect"
	"testing"
)

func TestRecommend_CategoryMatch(t *testing.T) {
	got := Recommend("My anxiety has been terrible this week")

	if len(got) != 3 {
		t.Fatalf("Expected 3 anxiety suggestions, got %d: %v", len(got), got)
	}
	if got[0] != "5-minute breathing exercise" {
		t.Errorf("First suggestion = %q", got[0])
	}
}

func TestRecommend_MultipleCategories(t *testing.T) {
	got := Recommend("stress at work is ruining my sleep")

	if len(got) != 6 {
		t.Fatalf("Expected 6 suggestions for stress+sleep, got %d", len(got))
	}
	// Stress suggestions come before sleep suggestions.
	if got[0] != "Box breathing technique" {
		t.Errorf("First suggestion = %q", got[0])
	}
	if got[3] != "Sleep hygiene checklist" {
		t.Errorf("Fourth suggestion = %q", got[3])
	}
}

func TestRecommend_CrisisEscalation(t *testing.T) {
	got := Recommend("I feel completely overwhelmed")

	found := false
	for _, s := range got {
		if s == crisisSuggestion {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected crisis suggestion in %v", got)
	}
}

func TestRecommend_Fallback(t *testing.T) {
	got := Recommend("just checking in")

	if !reflect.DeepEqual(got, fallbackSuggestions) {
		t.Errorf("Expected fallback suggestions, got %v", got)
	}
}

func TestRecommend_CaseInsensitive(t *testing.T) {
	got := Recommend("DEPRESSION has been rough")

	if len(got) != 3 {
		t.Fatalf("Expected 3 depression suggestions, got %d", len(got))
	}
}

func TestRecommend_Dedupe(t *testing.T) {
	// "high" appears twice; the crisis suggestion must appear once.
	got := Recommend("high stress and high pressure")

	count := 0
	for _, s := range got {
		if s == crisisSuggestion {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Crisis suggestion should appear once, got %d in %v", count, got)
	}
}
