package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wealthpath/onboard/core"
	"github.com/wealthpath/onboard/ports"
)

const bcryptCost = 12

// AuthService owns the session lifecycle: registration, login, refresh
// rotation and logout. The single stored refresh token per user is the
// only cross-request state; everything else is pure token arithmetic.
type AuthService struct {
	users     ports.UserStore
	tokenizer ports.Tokenizer
	notifier  ports.Notifier
}

// NewAuthService creates a new authentication service.
func NewAuthService(users ports.UserStore, tokenizer ports.Tokenizer, notifier ports.Notifier) *AuthService {
	return &AuthService{
		users:     users,
		tokenizer: tokenizer,
		notifier:  notifier,
	}
}

// LoginResult carries a sanitized user plus the freshly issued pair.
type LoginResult struct {
	User         *core.SanitizedUser
	AccessToken  string
	RefreshToken string
}

// TokenPair is the result of a successful refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a user, starts an initial session for it and asks
// the notifier to send a welcome message. A notification failure is
// reported as core.ErrNotificationFailed even though the user record
// is already durable at that point.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*core.SanitizedUser, error) {
	if err := requireAll(
		requiredField{"fullName", fullName},
		requiredField{"email", email},
		requiredField{"password", password},
	); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &core.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(fullName),
		Email:        core.NormalizeEmail(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Login-on-register: the new account starts with a live session.
	refreshToken, err := s.tokenizer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	if err := s.notifier.SendWelcome(ctx, user.Email, user.FullName); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNotificationFailed, err)
	}

	return user.Sanitized(), nil
}

// Login verifies credentials and issues a fresh access/refresh pair,
// replacing whatever refresh token was stored before. One live refresh
// token per user: overwrite, never append.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := requireAll(
		requiredField{"email", email},
		requiredField{"password", password},
	); err != nil {
		return nil, err
	}

	user, err := s.users.UserByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	// bcrypt comparison is constant-time on the digest.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, core.ErrInvalidCredentials
	}

	accessToken, err := s.tokenizer.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokenizer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &LoginResult{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair and rotates
// the stored value, which makes every previously issued refresh token
// for the user worthless even before its expiry.
func (s *AuthService) Refresh(ctx context.Context, incoming string) (*TokenPair, error) {
	if incoming == "" {
		return nil, core.ErrMissingToken
	}

	userID, err := s.tokenizer.ParseRefreshToken(incoming)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Anti-replay: a rotated or logged-out token no longer matches the
	// stored value even while its signature still verifies.
	if user.RefreshToken != incoming {
		return nil, core.ErrStaleRefreshToken
	}

	accessToken, err := s.tokenizer.IssueAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokenizer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	// Conditional swap: of two refreshes racing on the same token only
	// the first write wins, the loser fails the equality check.
	if err := s.users.SwapRefreshToken(ctx, user.ID, incoming, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh token. Already-issued access tokens
// stay valid until their own expiry; there is no access revocation.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.users.ClearRefreshToken(ctx, userID)
}
