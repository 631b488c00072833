package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx"
)

// Column order shared by export and import. Import matches by header name,
// so a re-imported export round-trips.
var productColumns = []string{"ID", "Title", "Slug", "Excerpt", "Description", "Price", "Image", "CreatedAt"}

// BuildProductsSheet writes one row per product under a header row.
func BuildProductsSheet(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}
	header := sheet.AddRow()
	for _, h := range productColumns {
		header.AddCell().SetString(h)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Title)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Excerpt)
		row.AddCell().SetString(p.Description)
		price := row.AddCell()
		if p.Price.Valid {
			price.SetInt64(p.Price.Decimal.IntPart())
		}
		row.AddCell().SetString(p.Image)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}

// GET /manage/products/export/
func ExportProductsToExcel(catalog *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListProducts(c.Request.Context(), 0)
		if err != nil {
			views.Fail(c, err)
			return
		}
		file, err := BuildProductsSheet(products)
		if err != nil {
			views.Fail(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Status(http.StatusOK)

		if err := file.Write(c.Writer); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("❌ write products.xlsx")
			_ = c.Error(err)
			return
		}
		zerolog.Ctx(c.Request.Context()).Info().Int("products", len(products)).Msg("📤 products exported")
	}
}
