package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
	"github.com/TiltTrack/tilt-track-backend/logger"
)

// AuthMiddleware validates the Bearer token on every request and stores the
// caller's identity in the gin context under UserIDKey and UserEmailKey.
func AuthMiddleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			_ = c.Error(apperrors.Unauthorized("missing_token", "Authentication required"))
			c.Abort()
			return
		}

		claims, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				_ = c.Error(apperrors.Unauthorized("token_expired", "Your session has expired"))
			} else {
				log.Debugw("Token validation failed", "error", err)
				_ = c.Error(apperrors.Unauthorized("invalid_token", "Invalid authentication token"))
			}
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin context,
// or "" when the request is unauthenticated.
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}

// GetUserEmail returns the authenticated user's email from the gin context.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(string(UserEmailKey))
}
