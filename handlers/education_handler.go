package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiltTrack/tilt-track-backend/services"
)

// EducationHandler serves the patient education library.
type EducationHandler struct {
	education *services.EducationService
}

// NewEducationHandler creates a new EducationHandler.
func NewEducationHandler(education *services.EducationService) *EducationHandler {
	return &EducationHandler{education: education}
}

// ListSections handles GET /education.
func (h *EducationHandler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, h.education.Sections())
}

// GetSection handles GET /education/:slug.
func (h *EducationHandler) GetSection(c *gin.Context) {
	section, err := h.education.Section(c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, section)
}
