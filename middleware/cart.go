package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

// CartBadge installs the lazy lookup behind the header's cart count. New
// visitors have no cart yet and show 0.
func CartBadge(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		views.SetCartCounter(c, func() int {
			sess := views.Session(c)
			userID := views.CurrentUserID(c)
			if userID == 0 && sess.Fresh() {
				return 0
			}
			ctx := c.Request.Context()
			cart, err := carts.Resolve(ctx, userID, sess.Key())
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("cart badge")
				return 0
			}
			n, err := carts.TotalItems(ctx, cart)
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("cart badge")
				return 0
			}
			return n
		})
		c.Next()
	}
}
