package core

import (
	"strings"
	"time"
)

// User is the credential-store record for a registered account.
// PasswordHash and RefreshToken never cross the service boundary;
// anything returned to a client goes through Sanitized.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SanitizedUser is the outward projection of a User, with the secret
// fields removed.
type SanitizedUser struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized returns the projection of the user safe to leave the system.
func (u *User) Sanitized() *SanitizedUser {
	return &SanitizedUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NormalizeEmail lowercases and trims an email so lookups and the
// uniqueness index agree on a single form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
