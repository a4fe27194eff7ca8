package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TiltTrack/tilt-track-backend/services"
)

// DashboardHandler exposes the aggregated chart data.
type DashboardHandler struct {
	tracking *services.TrackingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(tracking *services.TrackingService) *DashboardHandler {
	return &DashboardHandler{tracking: tracking}
}

// Summary handles GET /dashboard/summary. The trailing window defaults to
// seven days.
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	days := 7
	if v, err := strconv.Atoi(c.DefaultQuery("days", "7")); err == nil {
		days = v
	}

	summary, err := h.tracking.Dashboard(c.Request.Context(), userID, days)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
