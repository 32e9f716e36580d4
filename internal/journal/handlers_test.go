package journal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmmind/calmmind/internal/risk"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService()
	h := NewHandler(svc)

	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	h.RegisterAdminRoutes(api)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateEntryEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/api/journal", gin.H{
		"user_id": "alice",
		"title":   "rough day",
		"content": "Everything feels heavy and I can't go on",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Entry     Entry   `json:"entry"`
		RiskLevel string  `json:"risk_level"`
		RiskScore float64 `json:"risk_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "alice", resp.Entry.UserID)
	assert.Equal(t, string(risk.LevelHigh), resp.RiskLevel)
	assert.Equal(t, resp.RiskScore, resp.Entry.RiskScore)
}

func TestCreateEntryEndpoint_MissingUserID(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/api/journal", gin.H{
		"title":   "untitled",
		"content": "something",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestListEntriesEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/api/journal", gin.H{
		"user_id": "alice",
		"title":   "note",
		"content": "A quiet afternoon",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest("GET", "/api/journal/alice", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []Entry `json:"entries"`
		Count   int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "note", resp.Entries[0].Title)
}

func TestMoodEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/api/journal/mood", gin.H{
		"user_id":   "alice",
		"mood":      "anxious",
		"intensity": 7,
		"notes":     "before work",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/journal/mood", gin.H{
		"user_id":   "alice",
		"mood":      "anxious",
		"intensity": 15,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest("GET", "/api/journal/mood/alice", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Moods []MoodLog `json:"moods"`
		Count int       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 7, resp.Moods[0].Intensity)
}

func TestGoalEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/api/journal/goals", gin.H{
		"user_id":     "alice",
		"description": "sleep 8 hours",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Same description updates in place.
	w = postJSON(t, r, "/api/journal/goals", gin.H{
		"user_id":     "alice",
		"description": "sleep 8 hours",
		"status":      "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest("GET", "/api/journal/goals/alice", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Goals []Goal `json:"goals"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "completed", resp.Goals[0].Status)
}

func TestHighRiskAlertsEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/api/journal", gin.H{
		"user_id": "alice",
		"title":   "crisis",
		"content": "I keep thinking about suicide",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/journal", gin.H{
		"user_id": "bob",
		"title":   "fine",
		"content": "Had a lovely walk in the sun",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest("GET", "/api/admin/alerts?threshold=0.3", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries   []Entry `json:"entries"`
		Threshold float64 `json:"threshold"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 0.3, resp.Threshold, 0.001)

	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "alice", resp.Entries[0].UserID)
}

func TestHighRiskAlertsEndpoint_BadThresholdFallsBack(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest("GET", "/api/admin/alerts?threshold=nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Threshold float64 `json:"threshold"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, DefaultAlertThreshold, resp.Threshold, 0.001)
}
