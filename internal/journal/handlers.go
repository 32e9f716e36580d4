package journal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calmmind/calmmind/internal/validation"
)

// Handler provides HTTP endpoints for journaling.
type Handler struct {
	service *Service
}

// NewHandler creates a new journal handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up journal routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/journal", h.CreateEntry)
	r.GET("/journal/:user_id", h.ListEntries)
	r.POST("/journal/mood", h.LogMood)
	r.GET("/journal/mood/:user_id", h.ListMoods)
	r.POST("/journal/goals", h.UpsertGoal)
	r.GET("/journal/goals/:user_id", h.ListGoals)
}

// RegisterAdminRoutes sets up clinician-facing journal routes.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/admin/alerts", h.HighRiskAlerts)
}

type createEntryRequest struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

// CreateEntry handles POST /api/journal
func (h *Handler) CreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Body must be JSON with user_id, title, and content",
		})
		return
	}

	if errs := validation.Validate(
		validation.Required("user_id", req.UserID),
		validation.ValidUserID("user_id", req.UserID),
		validation.Required("content", req.Content),
		validation.MaxLength("content", req.Content, validation.MaxContentLength),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
			"details": errs,
		})
		return
	}

	entry, assessment, err := h.service.CreateEntry(
		c.Request.Context(), req.UserID, req.Title, req.Content, req.Tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"entry":      entry,
		"risk_level": assessment.Level,
		"risk_score": assessment.Score,
	})
}

// ListEntries handles GET /api/journal/:user_id
func (h *Handler) ListEntries(c *gin.Context) {
	entries, err := h.service.ListEntries(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

type logMoodRequest struct {
	UserID    string `json:"user_id"`
	Mood      string `json:"mood"`
	Intensity int    `json:"intensity"`
	Notes     string `json:"notes"`
}

// LogMood handles POST /api/journal/mood
func (h *Handler) LogMood(c *gin.Context) {
	var req logMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Body must be JSON with user_id, mood, and intensity",
		})
		return
	}

	if errs := validation.Validate(
		validation.Required("user_id", req.UserID),
		validation.ValidUserID("user_id", req.UserID),
		validation.Required("mood", req.Mood),
		validation.MoodInRange("intensity", req.Intensity),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
			"details": errs,
		})
		return
	}

	log, err := h.service.LogMood(c.Request.Context(), req.UserID, req.Mood, req.Intensity, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"mood": log})
}

// ListMoods handles GET /api/journal/mood/:user_id
func (h *Handler) ListMoods(c *gin.Context) {
	logs, err := h.service.ListMoods(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"moods": logs,
		"count": len(logs),
	})
}

type upsertGoalRequest struct {
	UserID      string     `json:"user_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	TargetDate  *time.Time `json:"target_date"`
}

// UpsertGoal handles POST /api/journal/goals
func (h *Handler) UpsertGoal(c *gin.Context) {
	var req upsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Body must be JSON with user_id and description",
		})
		return
	}

	if errs := validation.Validate(
		validation.Required("user_id", req.UserID),
		validation.ValidUserID("user_id", req.UserID),
		validation.Required("description", req.Description),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
			"details": errs,
		})
		return
	}

	goal, err := h.service.UpsertGoal(
		c.Request.Context(), req.UserID, req.Description, req.Status, req.TargetDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// ListGoals handles GET /api/journal/goals/:user_id
func (h *Handler) ListGoals(c *gin.Context) {
	goals, err := h.service.ListGoals(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goals": goals,
		"count": len(goals),
	})
}

// HighRiskAlerts handles GET /api/admin/alerts?threshold=
func (h *Handler) HighRiskAlerts(c *gin.Context) {
	threshold := DefaultAlertThreshold
	if t := c.Query("threshold"); t != "" {
		if parsed, err := strconv.ParseFloat(t, 64); err == nil && parsed >= 0 && parsed <= 1 {
			threshold = parsed
		}
	}

	entries, err := h.service.HighRiskEntries(c.Request.Context(), threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":   entries,
		"count":     len(entries),
		"threshold": threshold,
	})
}
