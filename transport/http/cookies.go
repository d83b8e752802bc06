package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// CookieOptions is the shared hardening applied to both auth cookies:
// HTTP-only always, Secure and SameSite per deployment.
type CookieOptions struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// NewCookieOptions builds the options used for both auth cookies.
func NewCookieOptions(domain string, secure bool, maxAge int) CookieOptions {
	return CookieOptions{
		Domain:   domain,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
}

func setAuthCookies(c *gin.Context, opts CookieOptions, access, refresh string) {
	c.SetSameSite(opts.SameSite)
	c.SetCookie(accessCookie, access, opts.MaxAge, "/", opts.Domain, opts.Secure, true)
	c.SetCookie(refreshCookie, refresh, opts.MaxAge, "/", opts.Domain, opts.Secure, true)
}

func clearAuthCookies(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(opts.SameSite)
	c.SetCookie(accessCookie, "", -1, "/", opts.Domain, opts.Secure, true)
	c.SetCookie(refreshCookie, "", -1, "/", opts.Domain, opts.Secure, true)
}
