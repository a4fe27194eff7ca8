package services

import (
	"context"
	"errors"

	apperrors "github.com/TiltTrack/tilt-track-backend/errors"
	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/TiltTrack/tilt-track-backend/logger"
	"github.com/TiltTrack/tilt-track-backend/types"
)

// UserService manages the application-side profile rows that shadow
// Supabase identities.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// GetOrCreateProfile returns the profile for the authenticated identity,
// creating the row on first contact. The id and email come from the
// verified token, never from the request body.
func (s *UserService) GetOrCreateProfile(ctx context.Context, userID, email string) (*types.UserProfile, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewDatabaseError(err)
	}

	profile, err = s.users.UpsertProfile(ctx, &types.UserProfile{ID: userID, Email: email})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	logger.GetLogger().Infow("Created profile row", "userID", userID)
	return profile, nil
}

// UpdateProfile applies a display-name change.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update types.UserProfileUpdate) (*types.UserProfile, error) {
	profile, err := s.users.UpdateDisplayName(ctx, userID, update.DisplayName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", userID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return profile, nil
}

// DeleteAccountData removes the profile and every log row belonging to the
// user. The Supabase identity is deleted separately by the client.
func (s *UserService) DeleteAccountData(ctx context.Context, userID string) error {
	if err := s.users.DeleteUserData(ctx, userID); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	logger.GetLogger().Infow("Deleted account data", "userID", userID)
	return nil
}
