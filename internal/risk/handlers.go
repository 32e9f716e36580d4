package risk

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calmmind/calmmind/internal/logging"
)

// Handler exposes the clinician read path over the event log.
type Handler struct {
	store Store
}

// NewHandler creates a risk event handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes sets up clinician risk routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/admin/risk-events", h.ListEvents)
}

// ListEvents handles GET /admin/risk-events?minimumLevel=&limit=.
// An unrecognized minimumLevel applies no filter rather than failing.
func (h *Handler) ListEvents(c *gin.Context) {
	var opts ListOptions

	if raw := c.Query("minimumLevel"); raw != "" {
		if level, ok := ParseLevel(raw); ok {
			opts.MinLevel = level
		}
	}

	opts.Limit = DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			opts.Limit = parsed
		}
	}

	events, err := h.store.List(c.Request.Context(), opts)
	if err != nil {
		logging.L(c.Request.Context()).Error("failed to list risk events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to retrieve risk events",
		})
		return
	}

	if events == nil {
		events = []*Event{}
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
