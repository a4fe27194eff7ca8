package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TiltTrack/tilt-track-backend/services"
)

// ActivityHandler exposes the unified activity feed.
type ActivityHandler struct {
	tracking *services.TrackingService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(tracking *services.TrackingService) *ActivityHandler {
	return &ActivityHandler{tracking: tracking}
}

// ListActivity handles GET /activity. The feed can be narrowed with the
// type query parameter and capped with limit.
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := 0
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		limit = v
	}

	entries, err := h.tracking.Activity(c.Request.Context(), userID, c.Query("type"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
