package ports

// Tokenizer signs and verifies the two bearer token classes. Each
// class has its own secret and expiry; both carry a user identifier.
type Tokenizer interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)

	// ParseAccessToken and ParseRefreshToken verify signature, expiry
	// and token class, returning the embedded user identifier. Failures
	// map to core.ErrTokenExpired or core.ErrInvalidToken.
	ParseAccessToken(token string) (string, error)
	ParseRefreshToken(token string) (string, error)
}
