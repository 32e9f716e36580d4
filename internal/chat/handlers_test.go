package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(gen Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc, _ := newChatService(gen)
	h := NewHandler(svc)

	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	r := setupRouter(&stubGenerator{reply: "I'm here with you."})

	w := post(r, "/api/chat", gin.H{
		"user_id": "alice",
		"message": "I feel overwhelmed by everything",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "I'm here with you.", resp.Reply)
	assert.NotEmpty(t, resp.RiskLevel)
	assert.NotNil(t, resp.Alerts)
}

func TestChatEndpoint_MissingMessage(t *testing.T) {
	r := setupRouter(&stubGenerator{reply: "hi"})

	w := post(r, "/api/chat", gin.H{"user_id": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestChatEndpoint_GeneratorFailure(t *testing.T) {
	r := setupRouter(&stubGenerator{err: assert.AnError})

	w := post(r, "/api/chat", gin.H{
		"user_id": "alice",
		"message": "hello",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "chat_failed")
}

func TestStreamChatEndpoint(t *testing.T) {
	r := setupRouter(&stubGenerator{tokens: []string{"take ", "it ", "slow"}})

	w := post(r, "/api/chat/stream", gin.H{
		"user_id": "alice",
		"message": "long day",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "take it slow", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestStreamChatEndpoint_FailureBeforeTokens(t *testing.T) {
	r := setupRouter(&stubGenerator{err: assert.AnError})

	w := post(r, "/api/chat/stream", gin.H{
		"user_id": "alice",
		"message": "hello",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "chat_failed")
}

func TestResourcesEndpoint(t *testing.T) {
	r := setupRouter(&stubGenerator{})

	w := post(r, "/api/chat/resources", gin.H{
		"user_id": "alice",
		"message": "my anxiety is bad at night and I can't sleep",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Resources []string `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Resources, "5-minute breathing exercise")
	assert.Contains(t, resp.Resources, "Sleep hygiene checklist")
}
