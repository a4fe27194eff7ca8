package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiltTrack/tilt-track-backend/logger"
)

func init() {
	logger.IsTest = true
	logger.InitLogger()
}

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_JWT_SECRET", testSecret)
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Email.DailyLimit)
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerMinute)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEmailBindings(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FEEDBACK_EMAIL_TO", "team@tilttrack.app")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("FEEDBACK_DAILY_LIMIT", "25")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "team@tilttrack.app", cfg.Email.FeedbackRecipient)
	assert.Equal(t, "re_test_key", cfg.Email.ResendAPIKey)
	assert.Equal(t, 25, cfg.Email.DailyLimit)
}

func TestLoadConfigMissingMailerIsNotFatal(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Email.FeedbackRecipient)
	assert.Empty(t, cfg.Email.ResendAPIKey)
}

func TestLoadConfigRequiresSupabase(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsShortSecret(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "tooshort")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDatabaseURLEscapesCredentials(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss:word",
		Name:     "tilttrack",
	}

	url := c.URL()
	assert.Contains(t, url, "p%40ss%3Aword")
	assert.Contains(t, url, "sslmode=disable")
}
