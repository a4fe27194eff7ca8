package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/TiltTrack/tilt-track-backend/config"
	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/logger"
	"github.com/TiltTrack/tilt-track-backend/types"
)

const minMessageLength = 10

// FeedbackService accepts feedback submissions, enforces the global daily
// email quota, and forwards accepted submissions to the operator by email.
//
// The quota check and increment run inside one storage transaction that
// holds the counter row locked, so concurrent submissions serialize on it.
// The email send is ordered strictly before the counter commit: a failed
// send never consumes quota, and a failed commit after a successful send
// undercounts rather than double-charging a resubmission.
type FeedbackService struct {
	quota  store.FeedbackQuotaStore
	mailer Mailer
	cfg    *config.EmailConfig
	now    func() time.Time
}

// NewFeedbackService creates a feedback service.
func NewFeedbackService(quota store.FeedbackQuotaStore, mailer Mailer, cfg *config.EmailConfig) *FeedbackService {
	return &FeedbackService{
		quota:  quota,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Submit processes one feedback submission end to end. A nil return means
// the email was accepted by the provider. All failure modes map to AppError
// kinds: validation, configuration, rate-limit, delivery, database.
func (s *FeedbackService) Submit(ctx context.Context, sub types.FeedbackSubmission) error {
	log := logger.GetLogger()

	sub.Message = strings.TrimSpace(sub.Message)
	sub.UserEmail = strings.TrimSpace(sub.UserEmail)

	if err := validateSubmission(sub); err != nil {
		return err
	}

	// Fail closed before any side effect when the mailer is unconfigured.
	if s.cfg.FeedbackRecipient == "" {
		return apperrors.ServiceMisconfigured("feedback recipient address is not set")
	}
	if s.cfg.ResendAPIKey == "" {
		return apperrors.ServiceMisconfigured("mail provider API key is not set")
	}

	today := s.now().Format("2006-01-02")

	tx, err := s.quota.Begin(ctx)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	count, err := tx.EffectiveCount(ctx, today)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if count >= s.cfg.DailyLimit {
		log.Warnw("Feedback daily limit reached",
			"count", count,
			"limit", s.cfg.DailyLimit)
		return apperrors.RateLimitExceeded(
			"The daily feedback limit has been reached, please try again tomorrow",
			secondsUntilTomorrow(s.now()),
		)
	}

	msg, err := ComposeFeedbackEmail(sub.Category, sub.Message, sub.UserEmail, s.cfg.FeedbackRecipient)
	if err != nil {
		return apperrors.InternalServerError("Failed to compose feedback email")
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return apperrors.DeliveryFailed(err)
	}

	// The send succeeded; from here on the worst case is undercounting.
	if err := tx.SetCount(ctx, today, count+1); err != nil {
		log.Warnw("Feedback email sent but counter update failed; quota undercounts",
			"error", err)
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		log.Warnw("Feedback email sent but counter commit failed; quota undercounts",
			"error", err)
		return nil
	}
	committed = true

	log.Infow("Feedback accepted",
		"category", sub.Category,
		"reporter", logger.MaskEmail(sub.UserEmail),
		"count", count+1)
	return nil
}

// validateSubmission checks the submission against the schema. The returned
// validation error lists every failing field.
func validateSubmission(sub types.FeedbackSubmission) error {
	var problems []string

	if !sub.Category.Valid() {
		problems = append(problems, "type must be one of: bug, feature, feedback")
	}
	if len(sub.Message) < minMessageLength {
		problems = append(problems, fmt.Sprintf("message must be at least %d characters long", minMessageLength))
	}
	if _, err := mail.ParseAddress(sub.UserEmail); err != nil || sub.UserEmail == "" {
		problems = append(problems, "userEmail must be a valid email address")
	}

	if len(problems) > 0 {
		return apperrors.ValidationFailed("Invalid form data", strings.Join(problems, "; "))
	}
	return nil
}

func secondsUntilTomorrow(now time.Time) int {
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return int(tomorrow.Sub(now).Seconds())
}
