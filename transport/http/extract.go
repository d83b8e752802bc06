package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenSource yields a candidate token; empty means not present.
type TokenSource func() string

// FirstToken tries sources in order and returns the first non-empty
// result. Carrier priority lives at the call site, not in here.
func FirstToken(sources ...TokenSource) string {
	for _, source := range sources {
		if token := source(); token != "" {
			return token
		}
	}
	return ""
}

// CookieToken reads a token from a request cookie.
func CookieToken(c *gin.Context, name string) TokenSource {
	return func() string {
		token, err := c.Cookie(name)
		if err != nil {
			return ""
		}
		return token
	}
}

// HeaderToken reads a token from a plain request header.
func HeaderToken(c *gin.Context, name string) TokenSource {
	return func() string {
		return c.GetHeader(name)
	}
}

// BearerToken reads the Authorization header, stripping the scheme.
func BearerToken(c *gin.Context) TokenSource {
	return func() string {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
}

// BodyToken wraps a value already bound from the request body.
func BodyToken(value string) TokenSource {
	return func() string {
		return value
	}
}
