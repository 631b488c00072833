package userControllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

// GET|POST /wishlist/add/:id/
func AddToWishlist(wishlist *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := views.ParamID(c, "id")
		if !ok {
			return
		}
		product, created, err := wishlist.Add(c.Request.Context(), views.CurrentUserID(c), id)
		if err != nil {
			views.Fail(c, err)
			return
		}
		if created {
			views.Flash(c, "success", fmt.Sprintf("Added \"%s\" to your wishlist!", product.Title))
		} else {
			views.Flash(c, "info", fmt.Sprintf("\"%s\" is already in your wishlist.", product.Title))
		}
		views.RedirectBack(c, "/")
	}
}

// GET|POST /wishlist/remove/:id/
func RemoveFromWishlist(wishlist *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := views.ParamID(c, "id")
		if !ok {
			return
		}
		product, err := wishlist.Remove(c.Request.Context(), views.CurrentUserID(c), id)
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Flash(c, "success", fmt.Sprintf("Removed \"%s\" from your wishlist.", product.Title))
		views.RedirectBack(c, "/profile/")
	}
}
