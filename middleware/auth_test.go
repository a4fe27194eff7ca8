package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type staticValidator struct {
	claims Claims
	err    error
}

func (v *staticValidator) Validate(ctx context.Context, tokenString string) (Claims, error) {
	if v.err != nil {
		return Claims{}, v.err
	}
	return v.claims, nil
}

func authRouter(v Validator) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(AuthMiddleware(v))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"email":   GetUserEmail(c),
		})
	})
	return r
}

func getWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	r := authRouter(&staticValidator{claims: Claims{UserID: "user-1", Email: "a@example.com"}})

	w := getWithAuth(r, "Bearer sometoken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "a@example.com")
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := authRouter(&staticValidator{claims: Claims{UserID: "user-1"}})

	for _, header := range []string{"", "Bearer ", "Basic abc"} {
		w := getWithAuth(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	r := authRouter(&staticValidator{err: ErrTokenExpired})

	w := getWithAuth(r, "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := authRouter(&staticValidator{err: ErrTokenInvalid})

	w := getWithAuth(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
