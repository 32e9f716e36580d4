// Package mcpserver exposes CalmMind clinician tools over the Model
// Context Protocol so an assistant can query risk events, review
// alerts, and log moods through the HTTP API.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Config holds the configuration for connecting to the CalmMind backend.
type Config struct {
	APIURL string // Base URL, e.g. "http://localhost:8080"
}

// APIClient is a pure HTTP client for the CalmMind backend API.
type APIClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewAPIClient creates a new client for the CalmMind backend.
func NewAPIClient(cfg Config) *APIClient {
	return &APIClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError represents an error response from the backend.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest makes an HTTP request to the backend and returns the response body.
func (c *APIClient) doRequest(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u, err := url.Parse(c.cfg.APIURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}

// ListRiskEvents returns recent risk events, optionally filtered by
// minimum level.
func (c *APIClient) ListRiskEvents(ctx context.Context, minimumLevel string, limit int) (json.RawMessage, error) {
	q := url.Values{}
	if minimumLevel != "" {
		q.Set("minimumLevel", minimumLevel)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return c.doRequest(ctx, http.MethodGet, "/api/admin/risk-events", q, nil)
}

// HighRiskAlerts returns journal entries above the risk threshold.
func (c *APIClient) HighRiskAlerts(ctx context.Context, threshold float64) (json.RawMessage, error) {
	q := url.Values{}
	if threshold > 0 {
		q.Set("threshold", strconv.FormatFloat(threshold, 'f', -1, 64))
	}
	return c.doRequest(ctx, http.MethodGet, "/api/admin/alerts", q, nil)
}

// RecommendResources returns coping suggestions for a message.
func (c *APIClient) RecommendResources(ctx context.Context, userID, message string) (json.RawMessage, error) {
	body := map[string]string{
		"user_id": userID,
		"message": message,
	}
	return c.doRequest(ctx, http.MethodPost, "/api/chat/resources", nil, body)
}

// LogMood records a mood snapshot for a user.
func (c *APIClient) LogMood(ctx context.Context, userID, mood string, intensity int, notes string) (json.RawMessage, error) {
	body := map[string]any{
		"user_id":   userID,
		"mood":      mood,
		"intensity": intensity,
		"notes":     notes,
	}
	return c.doRequest(ctx, http.MethodPost, "/api/journal/mood", nil, body)
}

// MoodHistory returns a user's recorded moods, newest first.
func (c *APIClient) MoodHistory(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodGet, "/api/journal/mood/"+url.PathEscape(userID), nil, nil)
}
