package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

// GET /
func Home(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		home, err := catalog.Home(c.Request.Context())
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Render(c, http.StatusOK, "index", "", gin.H{"home": home})
	}
}

// GET /product/:slug/
func GetProductBySlug(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Render(c, http.StatusOK, "product_detail", product.Title, gin.H{"product": product})
	}
}
