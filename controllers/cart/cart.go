package cartControllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

// currentCart resolves the cart for the signed-in user or the visitor's
// session and renders the failure page itself.
func currentCart(c *gin.Context, carts *services.CartService) (*models.Cart, bool) {
	cart, err := carts.Resolve(c.Request.Context(), views.CurrentUserID(c), views.Session(c).Key())
	if err != nil {
		views.Fail(c, err)
		return nil, false
	}
	return cart, true
}

// GET /cart/
func ViewCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, ok := currentCart(c, carts)
		if !ok {
			return
		}
		summary, err := carts.Lines(c.Request.Context(), cart)
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Render(c, http.StatusOK, "cart", "Cart", gin.H{"cart": summary})
	}
}

// GET|POST /cart/add/:id/
// Script callers (X-Requested-With: XMLHttpRequest) get JSON back.
func AddToCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ajax := views.IsAjax(c)
		id, ok := productID(c, ajax)
		if !ok {
			return
		}
		cart, err := carts.Resolve(c.Request.Context(), views.CurrentUserID(c), views.Session(c).Key())
		if err != nil {
			addFailed(c, ajax, err)
			return
		}
		res, err := carts.Add(c.Request.Context(), cart, id)
		if err != nil {
			addFailed(c, ajax, err)
			return
		}

		added := fmt.Sprintf("Added \"%s\" to your cart!", res.Product.Title)
		if ajax {
			total, err := carts.TotalItems(c.Request.Context(), cart)
			if err != nil {
				addFailed(c, ajax, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success":    true,
				"message":    added,
				"cart_total": total,
			})
			return
		}
		if res.Created {
			views.Flash(c, "success", added)
		} else {
			views.Flash(c, "success", fmt.Sprintf("Increased the quantity of \"%s\" in your cart!", res.Product.Title))
		}
		views.RedirectBack(c, "/")
	}
}

func productID(c *gin.Context, ajax bool) (uint, bool) {
	if !ajax {
		return views.ParamID(c, "id")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
		return 0, false
	}
	return uint(id), true
}

func addFailed(c *gin.Context, ajax bool, err error) {
	if !ajax {
		views.Fail(c, err)
		return
	}
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"success": false, "message": errs.Message(err)})
}

// GET|POST /cart/remove/:id/
func RemoveFromCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := views.ParamID(c, "id")
		if !ok {
			return
		}
		cart, ok := currentCart(c, carts)
		if !ok {
			return
		}
		product, err := carts.Remove(c.Request.Context(), cart, id)
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Flash(c, "success", fmt.Sprintf("Removed \"%s\" from your cart.", product.Title))
		c.Redirect(http.StatusFound, "/cart/")
	}
}

// POST /cart/update/:id/
// A quantity of zero or less removes the line; a missing line is ignored.
func UpdateCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Redirect(http.StatusFound, "/cart/")
			return
		}
		id, ok := views.ParamID(c, "id")
		if !ok {
			return
		}
		cart, ok := currentCart(c, carts)
		if !ok {
			return
		}
		qty := services.ParseQuantity(c.PostForm("quantity"))
		res, err := carts.UpdateQuantity(c.Request.Context(), cart, id, qty)
		if err != nil {
			views.Fail(c, err)
			return
		}
		switch {
		case res.Removed:
			views.Flash(c, "success", fmt.Sprintf("Removed \"%s\" from your cart.", res.Product.Title))
		case res.Found:
			views.Flash(c, "success", "Quantity updated.")
		}
		c.Redirect(http.StatusFound, "/cart/")
	}
}
