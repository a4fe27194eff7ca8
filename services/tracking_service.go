package services

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/logger"
	"github.com/TiltTrack/tilt-track-backend/types"
)

// TrackingService owns the observation log collections and the activity
// feed. Every accepted log write also appends a feed entry; a feed append
// failure is logged and swallowed so the primary write still succeeds.
type TrackingService struct {
	logs     store.LogStore
	activity store.ActivityStore
	now      func() time.Time
}

// NewTrackingService creates a tracking service.
func NewTrackingService(logs store.LogStore, activity store.ActivityStore) *TrackingService {
	return &TrackingService{
		logs:     logs,
		activity: activity,
		now:      time.Now,
	}
}

func (s *TrackingService) appendActivity(ctx context.Context, userID, activityType, description string, at time.Time) {
	entry := &types.ActivityEntry{
		UserID:      userID,
		Type:        activityType,
		Description: description,
		Timestamp:   at,
	}
	if _, err := s.activity.AppendActivity(ctx, entry); err != nil {
		logger.GetLogger().Warnw("Failed to append activity feed entry",
			"type", activityType,
			"userID", userID,
			"error", err)
	}
}

// LogSymptom records a symptom observation.
func (s *TrackingService) LogSymptom(ctx context.Context, userID string, req types.SymptomLogCreate) (*types.SymptomLog, error) {
	entry := &types.SymptomLog{
		UserID:   userID,
		Symptom:  req.Symptom,
		Severity: req.Severity,
		Notes:    req.Notes,
		LoggedAt: s.now(),
	}
	id, err := s.logs.CreateSymptomLog(ctx, entry)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id
	s.appendActivity(ctx, userID, types.ActivityTypeSymptom,
		fmt.Sprintf("Logged %s (severity %d/10)", entry.Symptom, entry.Severity), entry.LoggedAt)
	return entry, nil
}

// ListSymptoms returns the user's symptom log, newest first.
func (s *TrackingService) ListSymptoms(ctx context.Context, userID string, p types.ListParams) ([]*types.SymptomLog, error) {
	out, err := s.logs.ListSymptomLogs(ctx, userID, p)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// LogExercise records an exercise session.
func (s *TrackingService) LogExercise(ctx context.Context, userID string, req types.ExerciseLogCreate) (*types.ExerciseLog, error) {
	entry := &types.ExerciseLog{
		UserID:          userID,
		ExerciseType:    req.ExerciseType,
		DurationMinutes: req.DurationMinutes,
		RPE:             req.RPE,
		LoggedAt:        s.now(),
	}
	id, err := s.logs.CreateExerciseLog(ctx, entry)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id
	s.appendActivity(ctx, userID, types.ActivityTypeExercise,
		fmt.Sprintf("Completed %d min of %s exercise", entry.DurationMinutes, entry.ExerciseType), entry.LoggedAt)
	return entry, nil
}

// ListExercises returns the user's exercise log, newest first.
func (s *TrackingService) ListExercises(ctx context.Context, userID string, p types.ListParams) ([]*types.ExerciseLog, error) {
	out, err := s.logs.ListExerciseLogs(ctx, userID, p)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// LogIntake records fluid and salt intake.
func (s *TrackingService) LogIntake(ctx context.Context, userID string, req types.IntakeLogCreate) (*types.IntakeLog, error) {
	entry := &types.IntakeLog{
		UserID:    userID,
		SaltGrams: req.SaltGrams,
		FluidML:   req.FluidML,
		LoggedAt:  s.now(),
	}
	id, err := s.logs.CreateIntakeLog(ctx, entry)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id
	s.appendActivity(ctx, userID, types.ActivityTypeIntake,
		fmt.Sprintf("Logged %d ml fluid and %.1f g salt", entry.FluidML, entry.SaltGrams), entry.LoggedAt)
	return entry, nil
}

// ListIntake returns the user's intake log, newest first.
func (s *TrackingService) ListIntake(ctx context.Context, userID string, p types.ListParams) ([]*types.IntakeLog, error) {
	out, err := s.logs.ListIntakeLogs(ctx, userID, p)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// LogSleep records the sleep position for a night.
func (s *TrackingService) LogSleep(ctx context.Context, userID string, req types.SleepLogCreate) (*types.SleepLog, error) {
	entry := &types.SleepLog{
		UserID:       userID,
		HeadElevated: req.HeadElevated != nil && *req.HeadElevated,
		LoggedAt:     s.now(),
	}
	id, err := s.logs.CreateSleepLog(ctx, entry)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id
	desc := "Slept with head of bed flat"
	if entry.HeadElevated {
		desc = "Slept with head of bed elevated"
	}
	s.appendActivity(ctx, userID, types.ActivityTypeSleep, desc, entry.LoggedAt)
	return entry, nil
}

// ListSleep returns the user's sleep-position log, newest first.
func (s *TrackingService) ListSleep(ctx context.Context, userID string, p types.ListParams) ([]*types.SleepLog, error) {
	out, err := s.logs.ListSleepLogs(ctx, userID, p)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// LogCompression records a period of compression-garment use.
func (s *TrackingService) LogCompression(ctx context.Context, userID string, req types.CompressionLogCreate) (*types.CompressionLog, error) {
	entry := &types.CompressionLog{
		UserID:        userID,
		GarmentType:   req.GarmentType,
		DurationHours: req.DurationHours,
		LoggedAt:      s.now(),
	}
	id, err := s.logs.CreateCompressionLog(ctx, entry)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id
	s.appendActivity(ctx, userID, types.ActivityTypeCompression,
		fmt.Sprintf("Wore %s compression for %.1f h", entry.GarmentType, entry.DurationHours), entry.LoggedAt)
	return entry, nil
}

// ListCompression returns the user's compression log, newest first.
func (s *TrackingService) ListCompression(ctx context.Context, userID string, p types.ListParams) ([]*types.CompressionLog, error) {
	out, err := s.logs.ListCompressionLogs(ctx, userID, p)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// LogCountermeasure records a physical countermeasure maneuver.
func (s *TrackingService) LogCountermeasure(ctx context.Context, userID string, req types.CountermeasureLogCreate) (*types.CountermeasureLog, error) {
	entry := &types.CountermeasureLog{
		UserID:          userID,
		Countermeasure:  req.Countermeasure,
		DurationMinutes: req.DurationMinutes,
		LoggedAt:        s.now(),
	}
	id, err := s.logs.CreateCountermeasureLog(ctx, entry)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id
	s.appendActivity(ctx, userID, types.ActivityTypeCountermeasure,
		fmt.Sprintf("Performed %s maneuver", entry.Countermeasure), entry.LoggedAt)
	return entry, nil
}

// ListCountermeasures returns the user's countermeasure log, newest first.
func (s *TrackingService) ListCountermeasures(ctx context.Context, userID string, p types.ListParams) ([]*types.CountermeasureLog, error) {
	out, err := s.logs.ListCountermeasureLogs(ctx, userID, p)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// LogCooling records a skin-cooling intervention.
func (s *TrackingService) LogCooling(ctx context.Context, userID string, req types.CoolingLogCreate) (*types.CoolingLog, error) {
	entry := &types.CoolingLog{
		UserID:        userID,
		CoolingMethod: req.CoolingMethod,
		Conditions:    req.Conditions,
		LoggedAt:      s.now(),
	}
	id, err := s.logs.CreateCoolingLog(ctx, entry)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id
	s.appendActivity(ctx, userID, types.ActivityTypeCooling,
		fmt.Sprintf("Used %s cooling", entry.CoolingMethod), entry.LoggedAt)
	return entry, nil
}

// ListCooling returns the user's skin-cooling log, newest first.
func (s *TrackingService) ListCooling(ctx context.Context, userID string, p types.ListParams) ([]*types.CoolingLog, error) {
	out, err := s.logs.ListCoolingLogs(ctx, userID, p)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// Activity returns the user's activity feed, optionally filtered by type.
func (s *TrackingService) Activity(ctx context.Context, userID, activityType string, limit int) ([]*types.ActivityEntry, error) {
	out, err := s.activity.ListActivity(ctx, userID, activityType, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}

// Dashboard computes the summary aggregates over the trailing window.
func (s *TrackingService) Dashboard(ctx context.Context, userID string, days int) (*types.DashboardSummary, error) {
	if days <= 0 || days > 90 {
		days = 7
	}
	out, err := s.logs.DashboardSummary(ctx, userID, days)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return out, nil
}
