package postgres

import (
	"context"
	"fmt"

	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 50

// LogStore implements store.LogStore using PostgreSQL. One table per
// observation collection, all keyed by the Supabase user id.
type LogStore struct {
	pool *pgxpool.Pool
}

var _ store.LogStore = (*LogStore)(nil)

// NewLogStore creates a new LogStore backed by pgxpool.
func NewLogStore(pool *pgxpool.Pool) *LogStore {
	return &LogStore{pool: pool}
}

func clampParams(p types.ListParams) (int, int) {
	limit := p.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *LogStore) CreateSymptomLog(ctx context.Context, log *types.SymptomLog) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO symptom_logs (user_id, symptom, severity, notes, logged_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		log.UserID, log.Symptom, log.Severity, log.Notes, log.LoggedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create symptom log: %w", err)
	}
	return id, nil
}

func (s *LogStore) ListSymptomLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.SymptomLog, error) {
	limit, offset := clampParams(p)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, symptom, severity, notes, logged_at
		 FROM symptom_logs WHERE user_id = $1
		 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list symptom logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.SymptomLog
	for rows.Next() {
		l := &types.SymptomLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.Symptom, &l.Severity, &l.Notes, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *LogStore) CreateExerciseLog(ctx context.Context, log *types.ExerciseLog) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO exercise_logs (user_id, exercise_type, duration_minutes, rpe, logged_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		log.UserID, log.ExerciseType, log.DurationMinutes, log.RPE, log.LoggedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create exercise log: %w", err)
	}
	return id, nil
}

func (s *LogStore) ListExerciseLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.ExerciseLog, error) {
	limit, offset := clampParams(p)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, exercise_type, duration_minutes, rpe, logged_at
		 FROM exercise_logs WHERE user_id = $1
		 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.ExerciseLog
	for rows.Next() {
		l := &types.ExerciseLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.ExerciseType, &l.DurationMinutes, &l.RPE, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *LogStore) CreateIntakeLog(ctx context.Context, log *types.IntakeLog) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO volume_expansion_logs (user_id, salt_grams, fluid_ml, logged_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		log.UserID, log.SaltGrams, log.FluidML, log.LoggedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create intake log: %w", err)
	}
	return id, nil
}

func (s *LogStore) ListIntakeLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.IntakeLog, error) {
	limit, offset := clampParams(p)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, salt_grams, fluid_ml, logged_at
		 FROM volume_expansion_logs WHERE user_id = $1
		 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list intake logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.IntakeLog
	for rows.Next() {
		l := &types.IntakeLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.SaltGrams, &l.FluidML, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *LogStore) CreateSleepLog(ctx context.Context, log *types.SleepLog) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO sleep_position_logs (user_id, head_elevated, logged_at)
		 VALUES ($1, $2, $3) RETURNING id`,
		log.UserID, log.HeadElevated, log.LoggedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create sleep log: %w", err)
	}
	return id, nil
}

func (s *LogStore) ListSleepLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.SleepLog, error) {
	limit, offset := clampParams(p)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, head_elevated, logged_at
		 FROM sleep_position_logs WHERE user_id = $1
		 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sleep logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.SleepLog
	for rows.Next() {
		l := &types.SleepLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.HeadElevated, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *LogStore) CreateCompressionLog(ctx context.Context, log *types.CompressionLog) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO compression_logs (user_id, garment_type, duration_hours, logged_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		log.UserID, log.GarmentType, log.DurationHours, log.LoggedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create compression log: %w", err)
	}
	return id, nil
}

func (s *LogStore) ListCompressionLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.CompressionLog, error) {
	limit, offset := clampParams(p)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, garment_type, duration_hours, logged_at
		 FROM compression_logs WHERE user_id = $1
		 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list compression logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.CompressionLog
	for rows.Next() {
		l := &types.CompressionLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.GarmentType, &l.DurationHours, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *LogStore) CreateCountermeasureLog(ctx context.Context, log *types.CountermeasureLog) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO countermeasure_logs (user_id, countermeasure, duration_minutes, logged_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		log.UserID, log.Countermeasure, log.DurationMinutes, log.LoggedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create countermeasure log: %w", err)
	}
	return id, nil
}

func (s *LogStore) ListCountermeasureLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.CountermeasureLog, error) {
	limit, offset := clampParams(p)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, countermeasure, duration_minutes, logged_at
		 FROM countermeasure_logs WHERE user_id = $1
		 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list countermeasure logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.CountermeasureLog
	for rows.Next() {
		l := &types.CountermeasureLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.Countermeasure, &l.DurationMinutes, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *LogStore) CreateCoolingLog(ctx context.Context, log *types.CoolingLog) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO skin_cooling_logs (user_id, cooling_method, conditions, logged_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		log.UserID, log.CoolingMethod, log.Conditions, log.LoggedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create cooling log: %w", err)
	}
	return id, nil
}

func (s *LogStore) ListCoolingLogs(ctx context.Context, userID string, p types.ListParams) ([]*types.CoolingLog, error) {
	limit, offset := clampParams(p)
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, cooling_method, conditions, logged_at
		 FROM skin_cooling_logs WHERE user_id = $1
		 ORDER BY logged_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list cooling logs: %w", err)
	}
	defer rows.Close()

	var logs []*types.CoolingLog
	for rows.Next() {
		l := &types.CoolingLog{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.CoolingMethod, &l.Conditions, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// DashboardSummary aggregates the user's recent logs for the chart surfaces.
func (s *LogStore) DashboardSummary(ctx context.Context, userID string, days int) (*types.DashboardSummary, error) {
	if days <= 0 || days > 90 {
		days = 7
	}
	summary := &types.DashboardSummary{Days: days}
	window := fmt.Sprintf("%d days", days)

	rows, err := s.pool.Query(ctx,
		`SELECT to_char(logged_at, 'YYYY-MM-DD') AS day, symptom, AVG(severity)::float8
		 FROM symptom_logs
		 WHERE user_id = $1 AND logged_at >= NOW() - $2::interval
		 GROUP BY day, symptom ORDER BY day, symptom`,
		userID, window,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate symptom severity: %w", err)
	}
	for rows.Next() {
		var p types.SymptomSeverityPoint
		if err := rows.Scan(&p.Day, &p.Symptom, &p.AvgSeverity); err != nil {
			rows.Close()
			return nil, err
		}
		summary.SymptomSeverity = append(summary.SymptomSeverity, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT to_char(logged_at, 'YYYY-MM-DD') AS day,
		        COALESCE(SUM(fluid_ml), 0)::int, COALESCE(SUM(salt_grams), 0)::float8
		 FROM volume_expansion_logs
		 WHERE user_id = $1 AND logged_at >= NOW() - $2::interval
		 GROUP BY day ORDER BY day`,
		userID, window,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate intake: %w", err)
	}
	for rows.Next() {
		d := types.IntakeDay{FluidGoal: types.FluidGoalML, SodiumGoal: types.SodiumGoalGram}
		if err := rows.Scan(&d.Day, &d.FluidML, &d.SaltGrams); err != nil {
			rows.Close()
			return nil, err
		}
		summary.Intake = append(summary.Intake, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT exercise_type, COALESCE(SUM(duration_minutes), 0)::int
		 FROM exercise_logs
		 WHERE user_id = $1 AND logged_at >= NOW() - $2::interval
		 GROUP BY exercise_type ORDER BY exercise_type`,
		userID, window,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate exercise: %w", err)
	}
	for rows.Next() {
		var e types.ExerciseSplit
		if err := rows.Scan(&e.ExerciseType, &e.TotalMinutes); err != nil {
			rows.Close()
			return nil, err
		}
		summary.Exercise = append(summary.Exercise, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.pool.Query(ctx,
		`SELECT countermeasure, COUNT(*)::int
		 FROM countermeasure_logs
		 WHERE user_id = $1 AND logged_at >= NOW() - $2::interval
		 GROUP BY countermeasure ORDER BY countermeasure`,
		userID, window,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate countermeasures: %w", err)
	}
	for rows.Next() {
		var c types.CountermeasureCount
		if err := rows.Scan(&c.Countermeasure, &c.Count); err != nil {
			rows.Close()
			return nil, err
		}
		summary.Countermeasures = append(summary.Countermeasures, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}
