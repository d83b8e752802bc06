package http

import (
	"github.com/gin-gonic/gin"

	"github.com/wealthpath/onboard/core"
	"github.com/wealthpath/onboard/ports"
)

const ctxUserID = "userID"

// AuthMiddleware validates the access token on protected routes and
// resolves it to a user identifier before any handler runs. Stateless:
// validity is signature plus expiry, no store round-trip.
func AuthMiddleware(tokenizer ports.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := FirstToken(
			CookieToken(c, accessCookie),
			BearerToken(c),
		)
		if token == "" {
			respondError(c, core.ErrMissingToken)
			return
		}

		userID, err := tokenizer.ParseAccessToken(token)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func userIDFrom(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
