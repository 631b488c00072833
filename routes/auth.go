package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/junaidrashid-git/teazen/controllers/user"
	"github.com/junaidrashid-git/teazen/middleware"
)

// SetupAuthRoutes registers login, registration, logout and password reset.
// Credential POSTs share one per-IP limiter.
func SetupAuthRoutes(g *gin.RouterGroup, d *Deps) {
	limit := middleware.NewRateLimiter(d.Config.AuthRatePerMinute).Handler()
	identity := d.Services.Identity

	g.GET("/login/", userControllers.Login(identity))
	g.POST("/login/", limit, userControllers.Login(identity))
	g.GET("/register/", userControllers.Register(identity))
	g.POST("/register/", limit, userControllers.Register(identity))
	g.GET("/logout/", userControllers.Logout())
	g.POST("/logout/", userControllers.Logout())

	g.GET("/password-reset/", userControllers.PasswordReset(identity))
	g.POST("/password-reset/", limit, userControllers.PasswordReset(identity))
	g.GET("/reset/done/", userControllers.PasswordResetComplete())
	g.GET("/reset/:uid/:token/", userControllers.PasswordResetConfirm(identity))
	g.POST("/reset/:uid/:token/", userControllers.PasswordResetConfirm(identity))
}
