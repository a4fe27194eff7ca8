package postgres

import (
	"context"
	"fmt"

	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityStore implements store.ActivityStore using PostgreSQL.
type ActivityStore struct {
	pool *pgxpool.Pool
}

var _ store.ActivityStore = (*ActivityStore)(nil)

// NewActivityStore creates a new ActivityStore backed by pgxpool.
func NewActivityStore(pool *pgxpool.Pool) *ActivityStore {
	return &ActivityStore{pool: pool}
}

// AppendActivity inserts one feed entry and returns the generated id.
func (s *ActivityStore) AppendActivity(ctx context.Context, entry *types.ActivityEntry) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO activity_logs (user_id, type, description, logged_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		entry.UserID, entry.Type, entry.Description, entry.Timestamp,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("append activity: %w", err)
	}
	return id, nil
}

// ListActivity returns the newest entries first, optionally filtered by type.
func (s *ActivityStore) ListActivity(ctx context.Context, userID string, activityType string, limit int) ([]*types.ActivityEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	query := `SELECT id, user_id, type, description, logged_at
	          FROM activity_logs WHERE user_id = $1`
	args := []interface{}{userID}
	if activityType != "" {
		query += ` AND type = $2`
		args = append(args, activityType)
	}
	query += fmt.Sprintf(` ORDER BY logged_at DESC LIMIT %d`, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var entries []*types.ActivityEntry
	for rows.Next() {
		e := &types.ActivityEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Description, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
