package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiltTrack/tilt-track-backend/middleware"
	"github.com/TiltTrack/tilt-track-backend/services"
	"github.com/TiltTrack/tilt-track-backend/types"
)

// UserHandler exposes the authenticated user's profile surface.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe handles GET /users/me. The profile row is created on first contact
// from the token's identity.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetOrCreateProfile(c.Request.Context(), userID, middleware.GetUserEmail(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe handles PATCH /users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.UserProfileUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteMe handles DELETE /users/me. It removes all application data for
// the user; the identity itself is deleted on the Supabase side.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccountData(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.StatusResponse{Status: "deleted"})
}
