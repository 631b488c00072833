package productcontroller

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx"
)

// ImportResult summarises one spreadsheet upload.
type ImportResult struct {
	Created int
	Updated int
	Skipped int
	Errors  []string
}

// ImportProducts upserts every data row of the first sheet by slug. Rows
// without a title are skipped; rows failing validation are skipped and
// reported.
func ImportProducts(ctx context.Context, svc *services.Services, file *xlsx.File) (*ImportResult, error) {
	if len(file.Sheets) == 0 || file.Sheets[0].MaxRow < 2 {
		return nil, errs.Field("file", "Excel file is empty or missing header row")
	}
	sheet := file.Sheets[0]

	cols := map[string]int{}
	for i, cell := range sheet.Rows[0].Cells {
		cols[strings.ToLower(strings.TrimSpace(cell.String()))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, errs.Field("file", "The header row needs a Title column.")
	}

	res := &ImportResult{}
	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || row == nil || idx >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[idx].String())
		}

		form := &services.ProductForm{
			Title:       get("title"),
			Slug:        get("slug"),
			Excerpt:     get("excerpt"),
			Description: get("description"),
			Price:       get("price"),
		}
		if form.Title == "" {
			res.Skipped++
			continue
		}
		form.Prepare()

		existing, err := svc.Catalog.GetProductBySlug(ctx, form.Slug)
		switch {
		case err == nil:
			_, err = svc.Products.Update(ctx, existing.ID, form)
			if err == nil {
				res.Updated++
				continue
			}
		case errs.Is(err, errs.KindNotFound):
			_, err = svc.Products.Create(ctx, form)
			if err == nil {
				res.Created++
				continue
			}
		}
		if errs.KindOf(err) == errs.KindInternal {
			return res, err
		}
		res.Skipped++
		res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %s", i+1, rowMessage(err)))
	}
	return res, nil
}

func rowMessage(err error) string {
	var parts []string
	for field, msg := range errs.FieldErrors(err) {
		parts = append(parts, field+": "+msg)
	}
	if len(parts) == 0 {
		return errs.Message(err)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// GET /manage/products/import/
func ImportForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		views.Render(c, http.StatusOK, "admin/import", "Import products", nil)
	}
}

// POST /manage/products/import/
func ImportProductsFromExcel(svc *services.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			views.Flash(c, "error", "Excel file is required")
			c.Redirect(http.StatusFound, "/manage/products/import/")
			return
		}
		file, err := excelFileHeader.Open()
		if err != nil {
			views.Fail(c, fmt.Errorf("open upload: %w", err))
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			views.Flash(c, "error", "Failed to parse Excel file")
			c.Redirect(http.StatusFound, "/manage/products/import/")
			return
		}

		res, err := ImportProducts(c.Request.Context(), svc, xlFile)
		if err != nil {
			if errs.Is(err, errs.KindValidation) {
				views.Flash(c, "error", errs.Message(err))
				c.Redirect(http.StatusFound, "/manage/products/import/")
				return
			}
			views.Fail(c, err)
			return
		}
		zerolog.Ctx(c.Request.Context()).Info().
			Int("created", res.Created).
			Int("updated", res.Updated).
			Int("skipped", res.Skipped).
			Msg("📥 products imported")
		views.Render(c, http.StatusOK, "admin/import", "Import products", gin.H{"result": res})
	}
}
