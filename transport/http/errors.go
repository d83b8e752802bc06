package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wealthpath/onboard/core"
)

// respondError is the single boundary converting domain errors into
// the response envelope. Nothing reaches the client unconverted, and
// password or hash details never appear in a message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong"

	var validationErr *core.ValidationError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = "All fields are required"
	case errors.Is(err, core.ErrMissingToken):
		status = http.StatusUnauthorized
		message = "Unauthorized request"
	case errors.Is(err, core.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"
	case errors.Is(err, core.ErrStaleRefreshToken):
		status = http.StatusUnauthorized
		message = "Refresh token is expired or used"
	case errors.Is(err, core.ErrTokenExpired), errors.Is(err, core.ErrInvalidToken):
		status = http.StatusUnauthorized
		message = "Invalid or expired token"
	case errors.Is(err, core.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, core.ErrEmailTaken):
		status = http.StatusConflict
		message = "User with this email already exists"
	case errors.Is(err, core.ErrNotificationFailed):
		status = http.StatusInternalServerError
		message = "Registration email could not be sent"
	}

	c.AbortWithStatusJSON(status, Response{
		StatusCode: status,
		Message:    message,
		Success:    false,
	})
}
