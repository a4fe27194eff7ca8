package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStore implements store.UserStore using PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a new UserStore backed by pgxpool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// UpsertProfile creates the profile row on first touch and refreshes the
// email on subsequent logins. The display name is never overwritten here.
func (s *UserStore) UpsertProfile(ctx context.Context, profile *types.UserProfile) (*types.UserProfile, error) {
	out := &types.UserProfile{}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (id, email, display_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, updated_at = NOW()
		 RETURNING id, email, COALESCE(display_name, ''), created_at, updated_at`,
		profile.ID, profile.Email, nullable(profile.DisplayName),
	).Scan(&out.ID, &out.Email, &out.DisplayName, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return out, nil
}

func (s *UserStore) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	out := &types.UserProfile{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, COALESCE(display_name, ''), created_at, updated_at
		 FROM user_profiles WHERE id = $1`,
		userID,
	).Scan(&out.ID, &out.Email, &out.DisplayName, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return out, nil
}

func (s *UserStore) UpdateDisplayName(ctx context.Context, userID, displayName string) (*types.UserProfile, error) {
	out := &types.UserProfile{}
	err := s.pool.QueryRow(ctx,
		`UPDATE user_profiles SET display_name = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING id, email, COALESCE(display_name, ''), created_at, updated_at`,
		displayName, userID,
	).Scan(&out.ID, &out.Email, &out.DisplayName, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("update display name: %w", err)
	}
	return out, nil
}

// DeleteUserData removes every row belonging to the user in one transaction.
func (s *UserStore) DeleteUserData(ctx context.Context, userID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tables := []string{
		"symptom_logs",
		"exercise_logs",
		"volume_expansion_logs",
		"sleep_position_logs",
		"compression_logs",
		"countermeasure_logs",
		"skin_cooling_logs",
		"activity_logs",
		"user_profiles",
	}
	for _, table := range tables {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE `, table)+userColumn(table)+` = $1`,
			userID,
		); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func userColumn(table string) string {
	if table == "user_profiles" {
		return "id"
	}
	return "user_id"
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
