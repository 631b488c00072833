package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/junaidrashid-git/teazen/controllers/user"
	"github.com/junaidrashid-git/teazen/middleware"
)

// SetupUserRoutes registers the signed-in customer's pages.
func SetupUserRoutes(g *gin.RouterGroup, d *Deps) {
	user := g.Group("/", middleware.RequireLogin())
	{
		// ──────────────── Profile ────────────────
		user.GET("/profile/", userControllers.GetProfile(d.Services.Identity))
		user.GET("/profile/edit/", userControllers.UpdateProfile(d.Services.Identity, d.Uploads))
		user.POST("/profile/edit/", userControllers.UpdateProfile(d.Services.Identity, d.Uploads))

		// ──────────────── Wishlist ────────────────
		user.GET("/wishlist/add/:id/", userControllers.AddToWishlist(d.Services.Wishlist))
		user.POST("/wishlist/add/:id/", userControllers.AddToWishlist(d.Services.Wishlist))
		user.GET("/wishlist/remove/:id/", userControllers.RemoveFromWishlist(d.Services.Wishlist))
		user.POST("/wishlist/remove/:id/", userControllers.RemoveFromWishlist(d.Services.Wishlist))
	}
}
