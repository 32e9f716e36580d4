package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	if args == nil {
		args = map[string]any{}
	}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("Empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func fakeBackend(t *testing.T, handler http.HandlerFunc) *Handlers {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHandlers(NewAPIClient(Config{APIURL: srv.URL}))
}

func TestHandleListRiskEvents(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/risk-events" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("minimumLevel"); got != "high" {
			t.Errorf("minimumLevel = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"events": []map[string]any{
				{
					"user_id":    "alice",
					"source":     "chat",
					"risk_level": "high",
					"risk_score": 0.82,
					"sentiment":  -0.7,
					"keywords":   "hurt myself",
					"created_at": "2026-08-30T12:00:00Z",
				},
			},
			"count": 1,
		})
	})

	res, err := h.HandleListRiskEvents(context.Background(), callRequest("list_risk_events", map[string]any{
		"minimum_level": "high",
	}))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}

	text := resultText(t, res)
	if !strings.Contains(text, "[HIGH] alice via chat") {
		t.Errorf("Unexpected output:\n%s", text)
	}
	if !strings.Contains(text, "hurt myself") {
		t.Errorf("Keywords missing from output:\n%s", text)
	}
}

func TestHandleListRiskEvents_Empty(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"events": []any{}, "count": 0})
	})

	res, err := h.HandleListRiskEvents(context.Background(), callRequest("list_risk_events", nil))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	if text := resultText(t, res); !strings.Contains(text, "No risk events") {
		t.Errorf("Unexpected output: %s", text)
	}
}

func TestHandleHighRiskAlerts(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/alerts" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]any{
				{"user_id": "alice", "title": "crisis", "risk_score": 0.9, "created_at": "2026-08-30T12:00:00Z"},
			},
			"count":     1,
			"threshold": 0.6,
		})
	})

	res, err := h.HandleHighRiskAlerts(context.Background(), callRequest("high_risk_alerts", nil))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "alice") || !strings.Contains(text, "0.90") {
		t.Errorf("Unexpected output:\n%s", text)
	}
}

func TestHandleRecommendResources(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/resources" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"resources": []string{"Box breathing technique"},
		})
	})

	res, err := h.HandleRecommendResources(context.Background(), callRequest("recommend_resources", map[string]any{
		"user_id": "alice",
		"message": "so much stress",
	}))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	if text := resultText(t, res); !strings.Contains(text, "Box breathing technique") {
		t.Errorf("Unexpected output: %s", text)
	}
}

func TestHandleRecommendResources_MissingArgs(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Backend should not be called")
	})

	res, err := h.HandleRecommendResources(context.Background(), callRequest("recommend_resources", map[string]any{
		"user_id": "alice",
	}))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	if !res.IsError {
		t.Error("Expected error result for missing message")
	}
}

func TestHandleLogMood(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/journal/mood" || r.Method != http.MethodPost {
			t.Errorf("Unexpected %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["mood"] != "hopeful" {
			t.Errorf("mood = %v", body["mood"])
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"mood": body})
	})

	res, err := h.HandleLogMood(context.Background(), callRequest("log_mood", map[string]any{
		"user_id":   "alice",
		"mood":      "hopeful",
		"intensity": float64(6),
	}))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	if text := resultText(t, res); !strings.Contains(text, "hopeful") {
		t.Errorf("Unexpected output: %s", text)
	}
}

func TestHandleLogMood_BadIntensity(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Backend should not be called")
	})

	res, err := h.HandleLogMood(context.Background(), callRequest("log_mood", map[string]any{
		"user_id":   "alice",
		"mood":      "anxious",
		"intensity": float64(12),
	}))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	if !res.IsError {
		t.Error("Expected error result for out-of-range intensity")
	}
}

func TestHandleMoodHistory(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/journal/mood/alice" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"moods": []map[string]any{
				{"mood": "anxious", "intensity": 7, "notes": "rough morning", "created_at": "2026-08-30T09:00:00Z"},
				{"mood": "calm", "intensity": 4, "created_at": "2026-08-29T21:00:00Z"},
			},
			"count": 2,
		})
	})

	res, err := h.HandleMoodHistory(context.Background(), callRequest("mood_history", map[string]any{
		"user_id": "alice",
	}))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "anxious (7/10)") {
		t.Errorf("Unexpected output:\n%s", text)
	}
	if !strings.Contains(text, "rough morning") {
		t.Errorf("Notes missing:\n%s", text)
	}
}

func TestHandleMoodHistory_APIError(t *testing.T) {
	h := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal_error", "message": "db down"})
	})

	res, err := h.HandleMoodHistory(context.Background(), callRequest("mood_history", map[string]any{
		"user_id": "alice",
	}))
	if err != nil {
		t.Fatalf("Handler error: %v", err)
	}
	if !res.IsError {
		t.Error("Expected error result")
	}
	if text := resultText(t, res); !strings.Contains(text, "db down") {
		t.Errorf("Error message should surface backend detail: %s", text)
	}
}
