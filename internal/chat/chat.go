// Package chat orchestrates LLM conversations with risk screening.
//
// Every user message is scored before the reply goes back: the reply
// path and the safety path are deliberately coupled so a failure to
// record a risk event fails the whole exchange.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/calmmind/calmmind/internal/risk"
	"github.com/calmmind/calmmind/internal/traces"
)

// SystemPrompt frames every conversation with the companion persona.
const SystemPrompt = "You are CalmMind, a compassionate mental health companion. " +
	"Provide supportive, non-judgmental responses, encourage professional help " +
	"when needed, and never make promises you cannot keep."

// Alert strings surfaced to the client alongside the reply.
const (
	AlertCrisisKeywords = "Crisis keywords detected."
	AlertEscalate       = "Escalate to human support ASAP."
)

// Response is the outcome of a chat exchange.
type Response struct {
	Reply     string   `json:"reply"`
	RiskLevel string   `json:"risk_level"`
	RiskScore float64  `json:"risk_score"`
	Sentiment float64  `json:"sentiment"`
	Alerts    []string `json:"alerts"`
}

// Service generates supportive replies and screens messages for risk.
type Service struct {
	llm  Generator
	risk *risk.Service
}

// NewService creates a chat service.
func NewService(llm Generator, riskSvc *risk.Service) *Service {
	return &Service{llm: llm, risk: riskSvc}
}

// buildPrompt prepends optional conversation context to the message.
func buildPrompt(message, context string) string {
	if context == "" {
		return message
	}
	return context + "\nUser: " + message
}

// alertsFor derives the client-facing alert strings from an assessment.
func alertsFor(a *risk.Assessment) []string {
	alerts := []string{}
	if len(a.KeywordHits) > 0 {
		alerts = append(alerts, AlertCrisisKeywords)
	}
	if a.Level == risk.LevelHigh {
		alerts = append(alerts, AlertEscalate)
	}
	return alerts
}

// Respond generates a reply and returns it with the risk signals for
// the message. The message is recorded to the risk audit log; if that
// write fails, the exchange fails even though a reply was generated.
func (s *Service) Respond(ctx context.Context, userID, message, conversationContext string) (*Response, error) {
	ctx, span := traces.StartSpan(ctx, "chat.respond", traces.UserID(userID))
	defer span.End()

	reply, err := s.llm.Generate(ctx, buildPrompt(message, conversationContext), SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	assessment, _, err := s.risk.AssessAndRecord(ctx, userID, risk.SourceChat, message)
	if err != nil {
		return nil, err
	}

	return &Response{
		Reply:     strings.TrimSpace(reply),
		RiskLevel: string(assessment.Level),
		RiskScore: assessment.Score,
		Sentiment: assessment.Sentiment,
		Alerts:    alertsFor(assessment),
	}, nil
}

// StreamReply assesses and records the message, then streams reply
// tokens through fn. The audit write happens before the first token so
// a stream never starts for a message that could not be recorded.
func (s *Service) StreamReply(ctx context.Context, userID, message, conversationContext string, fn func(token string) error) error {
	ctx, span := traces.StartSpan(ctx, "chat.stream_reply", traces.UserID(userID))
	defer span.End()

	if _, _, err := s.risk.AssessAndRecord(ctx, userID, risk.SourceChat, message); err != nil {
		return err
	}

	return s.llm.Stream(ctx, buildPrompt(message, conversationContext), SystemPrompt, fn)
}
