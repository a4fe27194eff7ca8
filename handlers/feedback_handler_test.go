package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiltTrack/tilt-track-backend/config"
	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/logger"
	"github.com/TiltTrack/tilt-track-backend/services"
	"github.com/TiltTrack/tilt-track-backend/types"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.IsTest = true
	logger.InitLogger()
}

// stubQuotaStore holds a single counter value behind a mutex.
type stubQuotaStore struct {
	mu        sync.Mutex
	count     int
	resetDate string
}

func (s *stubQuotaStore) Begin(ctx context.Context) (store.QuotaTx, error) {
	s.mu.Lock()
	return &stubQuotaTx{store: s}, nil
}

type stubQuotaTx struct {
	store *stubQuotaStore
	done  bool
}

func (t *stubQuotaTx) EffectiveCount(ctx context.Context, today string) (int, error) {
	if t.store.resetDate != today {
		return 0, nil
	}
	return t.store.count, nil
}

func (t *stubQuotaTx) SetCount(ctx context.Context, today string, count int) error {
	t.store.count = count
	t.store.resetDate = today
	return nil
}

func (t *stubQuotaTx) Commit(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *stubQuotaTx) Rollback(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *stubQuotaTx) finish() {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}
}

type stubMailer struct {
	sent []types.EmailMessage
	err  error
}

func (m *stubMailer) Send(ctx context.Context, msg types.EmailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newFeedbackRouter(quota *stubQuotaStore, mailer *stubMailer, cfg *config.EmailConfig) *gin.Engine {
	svc := services.NewFeedbackService(quota, mailer, cfg)
	h := NewFeedbackHandler(svc)

	r := gin.New()
	r.POST("/v1/feedback", h.SubmitFeedback)
	return r
}

func feedbackConfig() *config.EmailConfig {
	return &config.EmailConfig{
		FromAddress:       "noreply@tilttrack.app",
		FromName:          "TiltTrack Feedback",
		FeedbackRecipient: "team@tilttrack.app",
		ResendAPIKey:      "re_test_key",
		DailyLimit:        100,
	}
}

func postFeedback(t *testing.T, r *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeFeedbackResponse(t *testing.T, w *httptest.ResponseRecorder) types.FeedbackResponse {
	t.Helper()
	var resp types.FeedbackResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSubmitFeedbackSuccess(t *testing.T) {
	quota := &stubQuotaStore{}
	mailer := &stubMailer{}
	r := newFeedbackRouter(quota, mailer, feedbackConfig())

	w := postFeedback(t, r, `{
		"type": "bug",
		"message": "The dashboard chart does not load.",
		"userEmail": "a@example.com"
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeFeedbackResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	// The error field must be present and null, not omitted.
	assert.Contains(t, w.Body.String(), `"error":null`)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "[Bug Report] from a@example.com", mailer.sent[0].Subject)
	assert.Equal(t, 1, quota.count)
}

func TestSubmitFeedbackValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed JSON", `{"type": "bug"`},
		{"missing fields", `{"type": "bug"}`},
		{"unknown category", `{"type": "rant", "message": "This is long enough to pass.", "userEmail": "a@example.com"}`},
		{"short message", `{"type": "bug", "message": "short", "userEmail": "a@example.com"}`},
		{"bad email", `{"type": "bug", "message": "This is long enough to pass.", "userEmail": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quota := &stubQuotaStore{}
			mailer := &stubMailer{}
			r := newFeedbackRouter(quota, mailer, feedbackConfig())

			w := postFeedback(t, r, tt.payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeFeedbackResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.NotEmpty(t, *resp.Error)
			assert.Empty(t, mailer.sent)
			assert.Zero(t, quota.count)
		})
	}
}

func TestSubmitFeedbackQuotaExhausted(t *testing.T) {
	quota := &stubQuotaStore{
		count:     100,
		resetDate: time.Now().Format("2006-01-02"),
	}
	mailer := &stubMailer{}
	r := newFeedbackRouter(quota, mailer, feedbackConfig())

	w := postFeedback(t, r, `{
		"type": "feedback",
		"message": "I have been using the app for a month now.",
		"userEmail": "a@example.com"
	}`)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	resp := decodeFeedbackResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, mailer.sent)
	assert.Equal(t, 100, quota.count)
}

func TestSubmitFeedbackUnconfigured(t *testing.T) {
	cfg := feedbackConfig()
	cfg.FeedbackRecipient = ""

	r := newFeedbackRouter(&stubQuotaStore{}, &stubMailer{}, cfg)

	w := postFeedback(t, r, `{
		"type": "feature",
		"message": "Please add an export to CSV button.",
		"userEmail": "a@example.com"
	}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeFeedbackResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
}
