package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/TiltTrack/tilt-track-backend/config"
	"github.com/TiltTrack/tilt-track-backend/logger"
)

var (
	// ErrTokenExpired is returned when JWT validation fails due to expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for general token validation failures.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenMissingClaim is returned when the subject claim is absent.
	ErrTokenMissingClaim = errors.New("token missing required claim")
)

// Claims carries the identity extracted from a validated token.
type Claims struct {
	UserID string
	Email  string
}

// Validator validates bearer tokens and extracts the caller's identity.
type Validator interface {
	Validate(ctx context.Context, tokenString string) (Claims, error)
}

// JWTValidator validates Supabase-issued JWTs. HS256 with the project JWT
// secret is tried first; tokens signed with a rotating key fall back to the
// project's JWKS endpoint, fetched through a refreshing cache.
type JWTValidator struct {
	staticSecret []byte
	jwksCache    *jwk.Cache
	jwksURL      string
}

var _ Validator = (*JWTValidator)(nil)

// anonKeyTransport attaches the Supabase anon key to JWKS fetches.
type anonKeyTransport struct {
	anonKey string
	base    http.RoundTripper
}

func (t *anonKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("apikey", t.anonKey)
	return t.base.RoundTrip(req)
}

// NewJWTValidator creates a validator from the Supabase configuration. At
// least one of the static secret or the JWKS endpoint must be configured.
func NewJWTValidator(ctx context.Context, cfg *config.SupabaseConfig) (*JWTValidator, error) {
	log := logger.GetLogger()
	v := &JWTValidator{}

	if cfg.JWTSecret != "" {
		v.staticSecret = []byte(cfg.JWTSecret)
		log.Info("JWT validator: HS256 validation enabled")
	}

	if cfg.URL != "" && cfg.AnonKey != "" {
		v.jwksURL = fmt.Sprintf("%s/auth/v1/jwks", cfg.URL)
		v.jwksCache = jwk.NewCache(ctx)
		client := &http.Client{
			Timeout:   10 * time.Second,
			Transport: &anonKeyTransport{anonKey: cfg.AnonKey, base: http.DefaultTransport},
		}
		if err := v.jwksCache.Register(v.jwksURL,
			jwk.WithHTTPClient(client),
			jwk.WithMinRefreshInterval(15*time.Minute),
		); err != nil {
			return nil, fmt.Errorf("failed to register JWKS endpoint: %w", err)
		}
		log.Infow("JWT validator: JWKS validation enabled", "url", v.jwksURL)
	}

	if v.staticSecret == nil && v.jwksCache == nil {
		return nil, fmt.Errorf("no JWT validation method configured: set the JWT secret or URL and anon key")
	}

	return v, nil
}

// Validate parses and validates the token, trying HS256 first and JWKS
// second.
func (v *JWTValidator) Validate(ctx context.Context, tokenString string) (Claims, error) {
	var hsErr error
	if len(v.staticSecret) > 0 {
		token, err := jwt.Parse([]byte(tokenString),
			jwt.WithKey(jwa.HS256, v.staticSecret),
			jwt.WithValidate(true),
		)
		if err == nil {
			return claimsFromToken(token)
		}
		hsErr = err
	}

	if v.jwksCache != nil {
		keySet, err := v.jwksCache.Get(ctx, v.jwksURL)
		if err != nil {
			return Claims{}, fmt.Errorf("failed to fetch JWKS: %w", err)
		}
		token, err := jwt.Parse([]byte(tokenString),
			jwt.WithKeySet(keySet),
			jwt.WithValidate(true),
		)
		if err == nil {
			return claimsFromToken(token)
		}
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if errors.Is(hsErr, jwt.ErrTokenExpired()) {
		return Claims{}, ErrTokenExpired
	}
	return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, hsErr)
}

func claimsFromToken(token jwt.Token) (Claims, error) {
	sub := token.Subject()
	if sub == "" {
		return Claims{}, ErrTokenMissingClaim
	}
	claims := Claims{UserID: sub}
	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			claims.Email = s
		}
	}
	return claims, nil
}
