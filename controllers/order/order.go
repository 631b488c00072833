package orderControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

// adminOrdersLimit caps the back-office order list.
const adminOrdersLimit = 200

// GET /manage/orders/
func GetAllOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListAll(c.Request.Context(), adminOrdersLimit)
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Render(c, http.StatusOK, "admin/orders", "Orders", gin.H{"orders": list})
	}
}

// POST /manage/orders/:id/status/
func UpdateOrderStatus(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := views.ParamID(c, "id")
		if !ok {
			return
		}
		status, err := services.ParseOrderStatus(c.PostForm("status"))
		if err != nil {
			views.Fail(c, err)
			return
		}
		order, err := orders.SetStatus(c.Request.Context(), id, status)
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Flash(c, "success", fmt.Sprintf("Order %s is now %s.", order.OrderNumber, order.Status.Label()))
		c.Redirect(http.StatusFound, "/manage/orders/")
	}
}
