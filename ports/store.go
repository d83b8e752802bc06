package ports

import (
	"context"

	"github.com/wealthpath/onboard/core"
)

// UserStore is the credential store: user identity, password hash and
// the single current refresh token per user.
type UserStore interface {
	// CreateUser persists a new user, enforcing email uniqueness.
	// Returns core.ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, user *core.User) error

	// UserByEmail looks a user up by normalized email.
	// Returns core.ErrUserNotFound when absent.
	UserByEmail(ctx context.Context, email string) (*core.User, error)

	// UserByID looks a user up by identifier.
	// Returns core.ErrUserNotFound when absent.
	UserByID(ctx context.Context, id string) (*core.User, error)

	// SetRefreshToken unconditionally replaces the stored refresh token.
	// Last write wins; a login always starts a fresh single session.
	SetRefreshToken(ctx context.Context, userID, token string) error

	// SwapRefreshToken replaces the stored refresh token only when the
	// stored value equals current. Returns core.ErrStaleRefreshToken on
	// mismatch, so of two racing refreshes only one rotates.
	SwapRefreshToken(ctx context.Context, userID, current, next string) error

	// ClearRefreshToken removes the stored refresh token, ending the
	// user's session for refresh purposes.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// ProfileStore persists submitted onboarding forms.
type ProfileStore interface {
	// SaveProfile upserts a profile record by its ID.
	SaveProfile(ctx context.Context, rec *core.ProfileRecord) error

	// ProfilesByUser returns every profile record submitted by a user.
	ProfilesByUser(ctx context.Context, userID string) ([]*core.ProfileRecord, error)
}
