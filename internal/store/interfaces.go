// Package store defines the persistence interfaces consumed by services and
// handlers. Implementations live in the postgres subpackage.
package store

import (
	"context"

	"github.com/TiltTrack/tilt-track-backend/types"
)

// QuotaTx is an open transaction against the feedback quota counter. The
// counter row stays locked until Commit or Rollback, which is what makes the
// read-check-increment sequence race-free across concurrent submissions.
type QuotaTx interface {
	// EffectiveCount returns the counter's value for today: the stored count
	// when the stored reset date equals today, zero otherwise (missing row or
	// stale date).
	EffectiveCount(ctx context.Context, today string) (int, error)
	// SetCount writes the counter and stamps it with today's date.
	SetCount(ctx context.Context, today string, count int) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// FeedbackQuotaStore opens transactions against the shared daily counter.
type FeedbackQuotaStore interface {
	Begin(ctx context.Context) (QuotaTx, error)
}

// LogStore persists the per-user observation collections. Every collection
// is an append-and-list surface keyed by user id.
type LogStore interface {
	CreateSymptomLog(ctx context.Context, log *types.SymptomLog) (string, error)
	ListSymptomLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.SymptomLog, error)

	CreateExerciseLog(ctx context.Context, log *types.ExerciseLog) (string, error)
	ListExerciseLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.ExerciseLog, error)

	CreateIntakeLog(ctx context.Context, log *types.IntakeLog) (string, error)
	ListIntakeLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.IntakeLog, error)

	CreateSleepLog(ctx context.Context, log *types.SleepLog) (string, error)
	ListSleepLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.SleepLog, error)

	CreateCompressionLog(ctx context.Context, log *types.CompressionLog) (string, error)
	ListCompressionLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.CompressionLog, error)

	CreateCountermeasureLog(ctx context.Context, log *types.CountermeasureLog) (string, error)
	ListCountermeasureLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.CountermeasureLog, error)

	CreateCoolingLog(ctx context.Context, log *types.CoolingLog) (string, error)
	ListCoolingLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.CoolingLog, error)

	DashboardSummary(ctx context.Context, userID string, days int) (*types.DashboardSummary, error)
}

// ActivityStore persists the unified activity feed.
type ActivityStore interface {
	AppendActivity(ctx context.Context, entry *types.ActivityEntry) (string, error)
	ListActivity(ctx context.Context, userID string, activityType string, limit int) ([]*types.ActivityEntry, error)
}

// UserStore persists application-side profile rows for Supabase identities.
type UserStore interface {
	UpsertProfile(ctx context.Context, profile *types.UserProfile) (*types.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)
	UpdateDisplayName(ctx context.Context, userID, displayName string) (*types.UserProfile, error)
	// DeleteUserData removes the profile and every log row belonging to the
	// user in a single transaction. The Supabase identity itself is not ours
	// to delete.
	DeleteUserData(ctx context.Context, userID string) error
}
