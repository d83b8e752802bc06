package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingToken       = errors.New("unauthorized request")
	ErrStaleRefreshToken  = errors.New("refresh token is expired or used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrNotificationFailed = errors.New("registration notification could not be sent")
)

// ValidationError names the required fields that were blank in a request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "all fields are required"
	}
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Fields, ", "))
}
