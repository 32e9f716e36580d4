// Package resources recommends coping resources based on message content.
package resources

import "strings"

// category pairs a trigger keyword with its suggestions. Kept as a slice
// so recommendations come back in a stable order.
type category struct {
	keyword     string
	suggestions []string
}

var categories = []category{
	{"anxiety", []string{
		"5-minute breathing exercise",
		"Progressive muscle relaxation guide",
		"Headspace: Managing anxiety basics",
	}},
	{"depression", []string{
		"Daily gratitude worksheet",
		"Reach out to a trusted contact",
		"National Suicide Prevention Lifeline: 988",
	}},
	{"stress", []string{
		"Box breathing technique",
		"Take a short mindfulness walk",
		"Pomodoro planning sheet",
	}},
	{"sleep", []string{
		"Sleep hygiene checklist",
		"Guided body scan meditation",
		"Avoid screens 60 minutes before bedtime",
	}},
}

// crisisSuggestion is appended when the message signals acute distress.
const crisisSuggestion = "Contact a crisis counselor or trusted person immediately."

// fallbackSuggestions are returned when no category matches.
var fallbackSuggestions = []string{
	"Try a 3-minute grounding exercise.",
	"Journal how you feel and what you need right now.",
}

// Recommend returns a deduplicated list of coping suggestions for the
// message. Matching is case-insensitive substring search per category
// keyword; categories are checked in a fixed order.
func Recommend(text string) []string {
	lowered := strings.ToLower(text)

	var suggestions []string
	for _, c := range categories {
		if strings.Contains(lowered, c.keyword) {
			suggestions = append(suggestions, c.suggestions...)
		}
	}

	if strings.Contains(lowered, "high") || strings.Contains(lowered, "overwhelmed") {
		suggestions = append(suggestions, crisisSuggestion)
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, fallbackSuggestions...)
	}

	return dedupe(suggestions)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
