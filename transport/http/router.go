package http

import (
	"github.com/gin-gonic/gin"

	"github.com/wealthpath/onboard/ports"
	"github.com/wealthpath/onboard/service"
)

// SetupRouter wires the public session routes and the protected
// onboarding routes.
func SetupRouter(auth *service.AuthService, profiles *service.ProfileService, tokenizer ports.Tokenizer, cookies CookieOptions) *gin.Engine {
	router := gin.Default()

	authHandlers := NewAuthHandlers(auth, cookies)
	profileHandlers := NewProfileHandlers(profiles)

	// Public session routes; for refresh the token itself is the credential.
	router.POST("/register", authHandlers.Register)
	router.POST("/login", authHandlers.Login)
	router.POST("/refresh-token", authHandlers.Refresh)

	protected := router.Group("")
	protected.Use(AuthMiddleware(tokenizer))
	{
		protected.POST("/logout", authHandlers.Logout)
		protected.GET("/profile", profileHandlers.Records)
		protected.POST("/family-background", profileHandlers.FamilyBackground)
		protected.POST("/career-info", profileHandlers.CareerInfo)
		protected.POST("/expenses", profileHandlers.Expenses)
		protected.POST("/risk-appetite", profileHandlers.RiskAppetite)
		protected.POST("/financial-goals", profileHandlers.FinancialGoals)
		protected.POST("/existing-debt", profileHandlers.ExistingDebt)
	}

	return router
}
