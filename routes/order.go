package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/teazen/controllers/order"
)

// SetupOrderRoutes registers order handling for the back-office.
func SetupOrderRoutes(manage *gin.RouterGroup, d *Deps) {
	orders := manage.Group("/orders")
	{
		// Fetch all orders
		orders.GET("/", orderControllers.GetAllOrders(d.Services.Orders))

		// Update order status (e.g. shipping, cancelled)
		orders.POST("/:id/status/", orderControllers.UpdateOrderStatus(d.Services.Orders))
	}
}
