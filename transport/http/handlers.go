package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wealthpath/onboard/core"
	"github.com/wealthpath/onboard/service"
)

// AuthHandlers contains HTTP handlers for the session endpoints.
type AuthHandlers struct {
	auth    *service.AuthService
	cookies CookieOptions
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(auth *service.AuthService, cookies CookieOptions) *AuthHandlers {
	return &AuthHandlers{
		auth:    auth,
		cookies: cookies,
	}
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles user registration.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login handles the login request and sets both auth cookies.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &core.ValidationError{})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookies(c, h.cookies, result.AccessToken, result.RefreshToken)
	respond(c, http.StatusOK, gin.H{
		"user":         result.User,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	}, "User logged in successfully")
}

// Refresh handles token rotation. The refresh token itself is the
// credential; carriers are tried in order: cookie, body, header.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req refreshRequest
	// The body is only one of three optional carriers.
	_ = c.ShouldBindJSON(&req)

	incoming := FirstToken(
		CookieToken(c, refreshCookie),
		BodyToken(req.RefreshToken),
		HeaderToken(c, "x-refresh-token"),
	)

	pair, err := h.auth.Refresh(c.Request.Context(), incoming)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookies(c, h.cookies, pair.AccessToken, pair.RefreshToken)
	respond(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "Token refreshed successfully")
}

// Logout clears the stored refresh token and both cookies.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), userIDFrom(c)); err != nil {
		respondError(c, err)
		return
	}

	clearAuthCookies(c, h.cookies)
	respond(c, http.StatusOK, gin.H{}, "User logged out successfully")
}
