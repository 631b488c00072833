package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
)

// GET /manage/
func Dashboard(dashboard *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := dashboard.Load(c.Request.Context())
		if err != nil {
			views.Fail(c, err)
			return
		}
		views.Render(c, http.StatusOK, "admin/dashboard", "Dashboard", gin.H{"dashboard": d})
	}
}
