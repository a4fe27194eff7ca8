package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiltTrack/tilt-track-backend/config"
	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/logger"
	"github.com/TiltTrack/tilt-track-backend/types"
)

func init() {
	logger.IsTest = true
	logger.InitLogger()
}

// memQuotaStore is an in-memory quota store. Begin takes a mutex that is
// held until Commit or Rollback, mirroring the row lock the Postgres
// implementation holds.
type memQuotaStore struct {
	mu        sync.Mutex
	count     int
	resetDate string

	beginErr  error
	countErr  error
	setErr    error
	commitErr error
}

func (s *memQuotaStore) Begin(ctx context.Context) (store.QuotaTx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.mu.Lock()
	return &memQuotaTx{store: s}, nil
}

type memQuotaTx struct {
	store *memQuotaStore

	pendingCount int
	pendingDate  string
	dirty        bool
	done         bool
}

func (t *memQuotaTx) EffectiveCount(ctx context.Context, today string) (int, error) {
	if t.store.countErr != nil {
		return 0, t.store.countErr
	}
	if t.store.resetDate != today {
		return 0, nil
	}
	return t.store.count, nil
}

func (t *memQuotaTx) SetCount(ctx context.Context, today string, count int) error {
	if t.store.setErr != nil {
		return t.store.setErr
	}
	t.pendingCount = count
	t.pendingDate = today
	t.dirty = true
	return nil
}

func (t *memQuotaTx) Commit(ctx context.Context) error {
	if t.store.commitErr != nil {
		return t.store.commitErr
	}
	if t.dirty {
		t.store.count = t.pendingCount
		t.store.resetDate = t.pendingDate
	}
	t.finish()
	return nil
}

func (t *memQuotaTx) Rollback(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *memQuotaTx) finish() {
	if !t.done {
		t.done = true
		t.store.mu.Unlock()
	}
}

// recordingMailer captures sent messages and can be told to fail.
type recordingMailer struct {
	mu      sync.Mutex
	sent    []types.EmailMessage
	sendErr error
}

func (m *recordingMailer) Send(ctx context.Context, msg types.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func testEmailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		FromAddress:       "noreply@tilttrack.app",
		FromName:          "TiltTrack Feedback",
		FeedbackRecipient: "team@tilttrack.app",
		ResendAPIKey:      "re_test_key",
		DailyLimit:        100,
	}
}

func newTestService(quota *memQuotaStore, mailer *recordingMailer, cfg *config.EmailConfig) *FeedbackService {
	svc := NewFeedbackService(quota, mailer, cfg)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func validSubmission() types.FeedbackSubmission {
	return types.FeedbackSubmission{
		Category:  types.FeedbackCategoryBug,
		Message:   "The dashboard chart does not load on my phone.",
		UserEmail: "a@example.com",
	}
}

func assertErrorType(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, want, appErr.Type)
}

func TestSubmitSuccess(t *testing.T) {
	quota := &memQuotaStore{}
	mailer := &recordingMailer{}
	svc := newTestService(quota, mailer, testEmailConfig())

	err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "[Bug Report] from a@example.com", msg.Subject)
	assert.Equal(t, "team@tilttrack.app", msg.To)
	assert.Equal(t, "a@example.com", msg.ReplyTo)

	assert.Equal(t, 1, quota.count)
	assert.Equal(t, "2025-06-15", quota.resetDate)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.FeedbackSubmission)
	}{
		{
			name:   "unknown category",
			mutate: func(s *types.FeedbackSubmission) { s.Category = "complaint" },
		},
		{
			name:   "message too short",
			mutate: func(s *types.FeedbackSubmission) { s.Message = "too short" },
		},
		{
			name:   "message only whitespace padding",
			mutate: func(s *types.FeedbackSubmission) { s.Message = "   short    " },
		},
		{
			name:   "malformed email",
			mutate: func(s *types.FeedbackSubmission) { s.UserEmail = "not-an-email" },
		},
		{
			name:   "empty email",
			mutate: func(s *types.FeedbackSubmission) { s.UserEmail = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quota := &memQuotaStore{}
			mailer := &recordingMailer{}
			svc := newTestService(quota, mailer, testEmailConfig())

			sub := validSubmission()
			tt.mutate(&sub)

			err := svc.Submit(context.Background(), sub)
			assertErrorType(t, err, apperrors.ValidationError)
			assert.Zero(t, mailer.sentCount(), "no email on rejected submission")
			assert.Zero(t, quota.count, "counter unchanged on rejected submission")
		})
	}
}

func TestSubmitRejectionsDoNotConsumeQuota(t *testing.T) {
	quota := &memQuotaStore{}
	mailer := &recordingMailer{}
	svc := newTestService(quota, mailer, testEmailConfig())

	bad := validSubmission()
	bad.Message = "nope"

	for i := 0; i < 10; i++ {
		err := svc.Submit(context.Background(), bad)
		assertErrorType(t, err, apperrors.ValidationError)
	}

	require.NoError(t, svc.Submit(context.Background(), validSubmission()))
	assert.Equal(t, 1, quota.count, "only the accepted submission counts")
}

func TestSubmitUnconfigured(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.EmailConfig)
	}{
		{
			name:   "missing recipient",
			mutate: func(c *config.EmailConfig) { c.FeedbackRecipient = "" },
		},
		{
			name:   "missing API key",
			mutate: func(c *config.EmailConfig) { c.ResendAPIKey = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testEmailConfig()
			tt.mutate(cfg)

			quota := &memQuotaStore{}
			mailer := &recordingMailer{}
			svc := newTestService(quota, mailer, cfg)

			err := svc.Submit(context.Background(), validSubmission())
			assertErrorType(t, err, apperrors.ConfigurationError)
			assert.Zero(t, mailer.sentCount())
			assert.Zero(t, quota.count)
		})
	}
}

func TestSubmitQuotaBoundary(t *testing.T) {
	quota := &memQuotaStore{count: 99, resetDate: "2025-06-15"}
	mailer := &recordingMailer{}
	svc := newTestService(quota, mailer, testEmailConfig())

	// Submission number 100 still goes through.
	require.NoError(t, svc.Submit(context.Background(), validSubmission()))
	assert.Equal(t, 100, quota.count)

	// Submission number 101 is rejected and sends nothing.
	err := svc.Submit(context.Background(), validSubmission())
	assertErrorType(t, err, apperrors.RateLimitError)
	assert.Equal(t, 1, mailer.sentCount())
	assert.Equal(t, 100, quota.count)
}

func TestSubmitDayRollover(t *testing.T) {
	quota := &memQuotaStore{count: 100, resetDate: "2025-06-14"}
	mailer := &recordingMailer{}
	svc := newTestService(quota, mailer, testEmailConfig())

	// Yesterday's exhausted counter reads as zero today.
	require.NoError(t, svc.Submit(context.Background(), validSubmission()))
	assert.Equal(t, 1, quota.count)
	assert.Equal(t, "2025-06-15", quota.resetDate)
}

func TestSubmitMailFailureLeavesCounterUnchanged(t *testing.T) {
	quota := &memQuotaStore{count: 5, resetDate: "2025-06-15"}
	mailer := &recordingMailer{sendErr: errors.New("provider unavailable")}
	svc := newTestService(quota, mailer, testEmailConfig())

	err := svc.Submit(context.Background(), validSubmission())
	assertErrorType(t, err, apperrors.DeliveryError)
	assert.Equal(t, 5, quota.count, "failed send must not consume quota")
}

func TestSubmitCommitFailureAfterSendReturnsSuccess(t *testing.T) {
	quota := &memQuotaStore{commitErr: errors.New("connection reset")}
	mailer := &recordingMailer{}
	svc := newTestService(quota, mailer, testEmailConfig())

	// The email went out, so the caller sees success; the counter is left
	// behind (undercount) rather than risking a double send on retry.
	err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, 1, mailer.sentCount())
	assert.Zero(t, quota.count)
}

func TestSubmitStoreErrors(t *testing.T) {
	t.Run("begin fails", func(t *testing.T) {
		quota := &memQuotaStore{beginErr: errors.New("pool exhausted")}
		svc := newTestService(quota, &recordingMailer{}, testEmailConfig())
		err := svc.Submit(context.Background(), validSubmission())
		assertErrorType(t, err, apperrors.DatabaseError)
	})

	t.Run("count read fails", func(t *testing.T) {
		quota := &memQuotaStore{countErr: errors.New("connection reset")}
		mailer := &recordingMailer{}
		svc := newTestService(quota, mailer, testEmailConfig())
		err := svc.Submit(context.Background(), validSubmission())
		assertErrorType(t, err, apperrors.DatabaseError)
		assert.Zero(t, mailer.sentCount())
	})
}

func TestSubmitConcurrentNearLimit(t *testing.T) {
	const (
		limit   = 5
		workers = 20
	)

	cfg := testEmailConfig()
	cfg.DailyLimit = limit

	quota := &memQuotaStore{}
	mailer := &recordingMailer{}
	svc := newTestService(quota, mailer, cfg)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sub := validSubmission()
			sub.UserEmail = fmt.Sprintf("user%d@example.com", i)
			errs[i] = svc.Submit(context.Background(), sub)
		}(i)
	}
	wg.Wait()

	var accepted, limited int
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assertErrorType(t, err, apperrors.RateLimitError)
		limited++
	}

	assert.Equal(t, limit, accepted, "exactly limit submissions accepted")
	assert.Equal(t, workers-limit, limited)
	assert.Equal(t, limit, mailer.sentCount(), "one email per accepted submission")
	assert.Equal(t, limit, quota.count, "counter never exceeds the limit")
}
