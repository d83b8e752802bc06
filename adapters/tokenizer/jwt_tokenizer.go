package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wealthpath/onboard/core"
	"github.com/wealthpath/onboard/internal/config"
	"github.com/wealthpath/onboard/ports"
)

const AudienceAccess = "onboarding:access"
const AudienceRefresh = "onboarding:refresh"

// JWTTokenizer signs access and refresh tokens with independent HMAC
// secrets and expiries. A compromised refresh secret is the only way
// to forge long-lived sessions, while access tokens stay cheap to
// re-verify on every protected request without a store round-trip.
type JWTTokenizer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTTokenizer creates a tokenizer from the injected token config.
func NewJWTTokenizer(cfg config.Tokens) ports.Tokenizer {
	return &JWTTokenizer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

func (t *JWTTokenizer) IssueAccessToken(userID string) (string, error) {
	return t.issue(userID, AudienceAccess, t.accessTTL, t.accessSecret)
}

func (t *JWTTokenizer) IssueRefreshToken(userID string) (string, error) {
	return t.issue(userID, AudienceRefresh, t.refreshTTL, t.refreshSecret)
}

func (t *JWTTokenizer) issue(userID, audience string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject: userID,
		// jti keeps two tokens issued within the same second distinct
		ID:        uuid.New().String(),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (t *JWTTokenizer) ParseAccessToken(tokenStr string) (string, error) {
	return t.parse(tokenStr, AudienceAccess, t.accessSecret)
}

func (t *JWTTokenizer) ParseRefreshToken(tokenStr string) (string, error) {
	return t.parse(tokenStr, AudienceRefresh, t.refreshSecret)
}

func (t *JWTTokenizer) parse(tokenStr, audience string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithAudience(audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", core.ErrTokenExpired
		}
		return "", core.ErrInvalidToken
	}

	if !token.Valid {
		return "", core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", core.ErrInvalidToken
	}

	return claims.Subject, nil
}
