package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	client *APIClient
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client *APIClient) *Handlers {
	return &Handlers{client: client}
}

// HandleListRiskEvents lists audit log events.
func (h *Handlers) HandleListRiskEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minimumLevel := req.GetString("minimum_level", "")
	limit := req.GetInt("limit", 50)

	raw, err := h.client.ListRiskEvents(ctx, minimumLevel, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list risk events: %v", err)), nil
	}

	text, err := formatRiskEvents(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse risk events: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleHighRiskAlerts lists journal entries above a risk threshold.
func (h *Handlers) HandleHighRiskAlerts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	threshold := req.GetFloat("threshold", 0.6)

	raw, err := h.client.HighRiskAlerts(ctx, threshold)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch alerts: %v", err)), nil
	}

	text, err := formatAlerts(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse alerts: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleRecommendResources returns coping suggestions.
func (h *Handlers) HandleRecommendResources(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := req.GetString("user_id", "")
	if userID == "" {
		return mcp.NewToolResultError("user_id is required"), nil
	}
	message := req.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError("message is required"), nil
	}

	raw, err := h.client.RecommendResources(ctx, userID, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get resources: %v", err)), nil
	}

	text, err := formatResources(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse resources: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleLogMood records a mood snapshot.
func (h *Handlers) HandleLogMood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := req.GetString("user_id", "")
	if userID == "" {
		return mcp.NewToolResultError("user_id is required"), nil
	}
	mood := req.GetString("mood", "")
	if mood == "" {
		return mcp.NewToolResultError("mood is required"), nil
	}
	intensity := req.GetInt("intensity", 0)
	if intensity < 1 || intensity > 10 {
		return mcp.NewToolResultError("intensity must be between 1 and 10"), nil
	}
	notes := req.GetString("notes", "")

	if _, err := h.client.LogMood(ctx, userID, mood, intensity, notes); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to log mood: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Mood recorded for %s: %s (intensity %d/10)", userID, mood, intensity)), nil
}

// HandleMoodHistory returns a user's mood trend.
func (h *Handlers) HandleMoodHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := req.GetString("user_id", "")
	if userID == "" {
		return mcp.NewToolResultError("user_id is required"), nil
	}

	raw, err := h.client.MoodHistory(ctx, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch mood history: %v", err)), nil
	}

	text, err := formatMoods(raw, userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse mood history: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// --- Formatting helpers ---

type riskEventInfo struct {
	UserID    string    `json:"user_id"`
	Source    string    `json:"source"`
	RiskLevel string    `json:"risk_level"`
	RiskScore float64   `json:"risk_score"`
	Sentiment float64   `json:"sentiment"`
	Keywords  string    `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

func formatRiskEvents(raw json.RawMessage) (string, error) {
	var resp struct {
		Events []riskEventInfo `json:"events"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if len(resp.Events) == 0 {
		return "No risk events recorded.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d risk event(s):\n\n", len(resp.Events))
	for i, e := range resp.Events {
		fmt.Fprintf(&sb, "%d. [%s] %s via %s\n", i+1, strings.ToUpper(e.RiskLevel), e.UserID, e.Source)
		fmt.Fprintf(&sb, "   Score: %.2f | Sentiment: %.2f\n", e.RiskScore, e.Sentiment)
		if e.Keywords != "" {
			fmt.Fprintf(&sb, "   Keywords: %s\n", e.Keywords)
		}
		fmt.Fprintf(&sb, "   At: %s\n", e.CreatedAt.Format(time.RFC3339))
		if i < len(resp.Events)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

type alertEntryInfo struct {
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	RiskScore float64   `json:"risk_score"`
	CreatedAt time.Time `json:"created_at"`
}

func formatAlerts(raw json.RawMessage) (string, error) {
	var resp struct {
		Entries   []alertEntryInfo `json:"entries"`
		Threshold float64          `json:"threshold"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if len(resp.Entries) == 0 {
		return fmt.Sprintf("No journal entries at or above threshold %.2f.", resp.Threshold), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d journal entries at or above threshold %.2f:\n\n", len(resp.Entries), resp.Threshold)
	for i, e := range resp.Entries {
		fmt.Fprintf(&sb, "%d. %s: %q (score %.2f, %s)\n",
			i+1, e.UserID, e.Title, e.RiskScore, e.CreatedAt.Format(time.RFC3339))
	}
	return sb.String(), nil
}

func formatResources(raw json.RawMessage) (string, error) {
	var resp struct {
		Resources []string `json:"resources"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if len(resp.Resources) == 0 {
		return "No resource suggestions.", nil
	}

	var sb strings.Builder
	sb.WriteString("Suggested resources:\n")
	for _, r := range resp.Resources {
		fmt.Fprintf(&sb, "  - %s\n", r)
	}
	return sb.String(), nil
}

type moodInfo struct {
	Mood      string    `json:"mood"`
	Intensity int       `json:"intensity"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func formatMoods(raw json.RawMessage, userID string) (string, error) {
	var resp struct {
		Moods []moodInfo `json:"moods"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", err
	}
	if len(resp.Moods) == 0 {
		return fmt.Sprintf("No moods recorded for %s.", userID), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Mood history for %s (%d entries, newest first):\n\n", userID, len(resp.Moods))
	for i, m := range resp.Moods {
		fmt.Fprintf(&sb, "%d. %s (%d/10) at %s\n", i+1, m.Mood, m.Intensity, m.CreatedAt.Format(time.RFC3339))
		if m.Notes != "" {
			fmt.Fprintf(&sb, "   Notes: %s\n", m.Notes)
		}
	}
	return sb.String(), nil
}
