package risk

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Assessor scores text for crisis risk. It is pure computation: no I/O, no
// side effects, and deterministic for a given keyword configuration, so a
// single instance is safe for concurrent use.
type Assessor struct {
	keywords []string
	lowered  []string
}

// NewAssessor creates an assessor matching the given crisis keywords.
// The keyword list is copied; the configured order is preserved in hits.
func NewAssessor(keywords []string) *Assessor {
	a := &Assessor{
		keywords: make([]string, len(keywords)),
		lowered:  make([]string, len(keywords)),
	}
	for i, kw := range keywords {
		a.keywords[i] = kw
		a.lowered[i] = strings.ToLower(kw)
	}
	return a
}

// Keywords returns the configured keyword list.
func (a *Assessor) Keywords() []string {
	out := make([]string, len(a.keywords))
	copy(out, a.keywords)
	return out
}

// Assess computes a risk assessment for text. It never fails; empty input
// yields neutral sentiment, no hits, and level low.
func (a *Assessor) Assess(text string) *Assessment {
	polarity := sentitext.PolarityScore(sentitext.Parse(text, lexicon.DefaultLexicon))
	sentiment := clamp(polarity.Compound, -1, 1)

	lowered := strings.ToLower(text)
	var hits []string
	for i, kw := range a.lowered {
		if kw != "" && strings.Contains(lowered, kw) {
			hits = append(hits, a.keywords[i])
		}
	}

	// Fully positive text contributes 0, fully negative contributes 1.
	normalized := clamp(-sentiment, 0, 1)

	// Roughly half the configured list matching saturates the keyword
	// contribution. max(1, ...) keeps the denominator sane for empty or
	// single-keyword configurations.
	half := len(a.keywords) / 2
	if half < 1 {
		half = 1
	}
	keywordScore := float64(len(hits)) / float64(half)
	if keywordScore > 1 {
		keywordScore = 1
	}

	score := clamp(normalized*SentimentWeight+keywordScore*KeywordWeight, 0, 1)

	// Any keyword hit is an unconditional escalation signal, decoupled from
	// the continuous score.
	level := LevelLow
	switch {
	case score > HighThreshold || len(hits) > 0:
		level = LevelHigh
	case score > ModerateThreshold:
		level = LevelModerate
	}

	return &Assessment{
		Sentiment:   sentiment,
		KeywordHits: hits,
		Score:       score,
		Level:       level,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
