package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/teazen/controllers/admin"
	productcontroller "github.com/junaidrashid-git/teazen/controllers/product"
)

// SetupAdminRoutes registers the "/manage/*" back-office. The group already
// carries the admin gate.
func SetupAdminRoutes(manage *gin.RouterGroup, d *Deps) {
	svc := d.Services

	manage.GET("/", adminController.Dashboard(svc.Dashboard))
	manage.GET("/live/", d.Hub.Handler())

	// ─────────── Product Management ───────────
	products := manage.Group("/products")
	adminController.Products(svc, d.Uploads).Register(products)
	products.GET("/export/", productcontroller.ExportProductsToExcel(svc.Catalog))
	products.GET("/import/", productcontroller.ImportForm())
	products.POST("/import/", productcontroller.ImportProductsFromExcel(svc))

	// ─────────── Editorial content ───────────
	adminController.Storyboard(svc, d.Uploads).Register(manage.Group("/storyboard"))
	adminController.Raw(svc, d.Uploads).Register(manage.Group("/raw"))
	adminController.Cabinet(svc, d.Uploads).Register(manage.Group("/cabinet"))
}
