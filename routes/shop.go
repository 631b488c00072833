package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/teazen/controllers/cart"
	productcontroller "github.com/junaidrashid-git/teazen/controllers/product"
)

// SetupShopRoutes registers the public catalog and the cart.
func SetupShopRoutes(g *gin.RouterGroup, d *Deps) {
	g.GET("/", productcontroller.Home(d.Services.Catalog))
	g.GET("/product/:slug/", productcontroller.GetProductBySlug(d.Services.Catalog))

	cart := g.Group("/cart")
	{
		cart.GET("/", cartControllers.ViewCart(d.Services.Cart))
		cart.GET("/add/:id/", cartControllers.AddToCart(d.Services.Cart))
		cart.POST("/add/:id/", cartControllers.AddToCart(d.Services.Cart))
		cart.GET("/remove/:id/", cartControllers.RemoveFromCart(d.Services.Cart))
		cart.POST("/remove/:id/", cartControllers.RemoveFromCart(d.Services.Cart))
		cart.GET("/update/:id/", cartControllers.UpdateCartItem(d.Services.Cart))
		cart.POST("/update/:id/", cartControllers.UpdateCartItem(d.Services.Cart))
	}
}
