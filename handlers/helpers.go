package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
	"github.com/TiltTrack/tilt-track-backend/middleware"
	"github.com/TiltTrack/tilt-track-backend/types"
)

// bindJSONOrError binds the request body and reports a validation error on
// failure. Returns false when the handler should bail out.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload", err.Error()))
		return false
	}
	return true
}

// requireUserID pulls the authenticated user's ID from the context. An
// empty ID means the auth middleware did not run; reject rather than
// proceed unauthenticated.
func requireUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("missing_auth", "Authentication required"))
		return "", false
	}
	return userID, true
}

// listParams parses limit/offset query parameters with sane defaults.
func listParams(c *gin.Context) types.ListParams {
	p := types.ListParams{}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		p.Limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		p.Offset = v
	}
	return p
}
