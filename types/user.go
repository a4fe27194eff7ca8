package types

import "time"

// UserProfile is the application-side profile row for a Supabase identity.
// Authentication itself (passwords, email verification) lives in Supabase;
// this record only carries what the app displays and joins against.
type UserProfile struct {
	ID          string    `json:"id"` // Supabase user UUID
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserProfileUpdate is the request body for profile updates.
type UserProfileUpdate struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
}
