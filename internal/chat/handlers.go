package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calmmind/calmmind/internal/resources"
	"github.com/calmmind/calmmind/internal/validation"
)

// Handler provides HTTP endpoints for chat.
type Handler struct {
	service *Service
}

// NewHandler creates a new chat handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up chat routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.POST("/chat/stream", h.StreamChat)
	r.POST("/chat/resources", h.RecommendResources)
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Context string `json:"context"`
}

func bindChatRequest(c *gin.Context) (*chatRequest, bool) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Body must be JSON with user_id and message",
		})
		return nil, false
	}

	if errs := validation.Validate(
		validation.Required("user_id", req.UserID),
		validation.ValidUserID("user_id", req.UserID),
		validation.Required("message", req.Message),
		validation.MaxLength("message", req.Message, validation.MaxContentLength),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
			"details": errs,
		})
		return nil, false
	}

	return &req, true
}

// Chat handles POST /api/chat
func (h *Handler) Chat(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}

	resp, err := h.service.Respond(c.Request.Context(), req.UserID, req.Message, req.Context)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "chat_failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// StreamChat handles POST /api/chat/stream
//
// The reply streams as plain text tokens. Risk screening happens before
// the first byte is written, so screening failures still produce a
// proper JSON error response.
func (h *Handler) StreamChat(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}

	started := false
	err := h.service.StreamReply(c.Request.Context(), req.UserID, req.Message, req.Context, func(token string) error {
		if !started {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Status(http.StatusOK)
			started = true
		}
		if _, err := c.Writer.WriteString(token); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil && !started {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "chat_failed",
			"message": err.Error(),
		})
	}
}

// RecommendResources handles POST /api/chat/resources
func (h *Handler) RecommendResources(c *gin.Context) {
	req, ok := bindChatRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": resources.Recommend(req.Message),
	})
}
