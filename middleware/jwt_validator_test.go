package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiltTrack/tilt-track-backend/config"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func signTestToken(t *testing.T, secret string, sub string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewBuilder().
		Subject(sub).
		Claim("email", "a@example.com").
		IssuedAt(time.Now().Add(-time.Minute)).
		Expiration(exp).
		Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte(secret)))
	require.NoError(t, err)
	return string(signed)
}

func newHS256Validator(t *testing.T) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(context.Background(), &config.SupabaseConfig{JWTSecret: testJWTSecret})
	require.NoError(t, err)
	return v
}

func TestJWTValidatorAcceptsValidToken(t *testing.T) {
	v := newHS256Validator(t)
	token := signTestToken(t, testJWTSecret, "user-1", time.Now().Add(time.Hour))

	claims, err := v.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestJWTValidatorRejectsExpiredToken(t *testing.T) {
	v := newHS256Validator(t)
	token := signTestToken(t, testJWTSecret, "user-1", time.Now().Add(-time.Hour))

	_, err := v.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTValidatorRejectsWrongSecret(t *testing.T) {
	v := newHS256Validator(t)
	token := signTestToken(t, "another-secret-another-secret-32", "user-1", time.Now().Add(time.Hour))

	_, err := v.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTValidatorRejectsGarbage(t *testing.T) {
	v := newHS256Validator(t)

	_, err := v.Validate(context.Background(), "not.a.token")
	assert.Error(t, err)
}

func TestJWTValidatorRequiresConfiguration(t *testing.T) {
	_, err := NewJWTValidator(context.Background(), &config.SupabaseConfig{})
	assert.Error(t, err)
}
