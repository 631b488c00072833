package productcontroller

import (
	"bytes"
	"context"
	"testing"

	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/services"
	"github.com/junaidrashid-git/teazen/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"golang.org/x/crypto/bcrypt"
)

func newServices() *services.Services {
	return services.New(memory.New(), services.Options{
		Reset:    auth.NewResetTokens("secret", 0),
		Identity: services.IdentityOptions{BcryptCost: bcrypt.MinCost},
	})
}

func sheetWith(t *testing.T, rows ...[]string) *xlsx.File {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	return file
}

func TestImportProductsUpsertsBySlug(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	_, err := svc.Products.Create(ctx, &services.ProductForm{Title: "Trà Sen", Slug: "tra-sen", Price: "100000"})
	require.NoError(t, err)

	file := sheetWith(t,
		[]string{"Title", "Slug", "Excerpt", "Price"},
		[]string{"Trà Sen Tây Hồ", "tra-sen", "Ướp sen", "450000"},
		[]string{"Trà Ô Long", "", "", ""},
		[]string{"", "no-title", "", ""},
		[]string{"Bad price", "bad-price", "", "abc"},
	)

	res, err := ImportProducts(ctx, svc, file)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Row 5")

	updated, err := svc.Catalog.GetProductBySlug(ctx, "tra-sen")
	require.NoError(t, err)
	assert.Equal(t, "Trà Sen Tây Hồ", updated.Title)
	assert.Equal(t, "450000", updated.Price.Decimal.String())

	created, err := svc.Catalog.GetProductBySlug(ctx, "tra-o-long")
	require.NoError(t, err)
	assert.False(t, created.Price.Valid)
}

func TestImportRequiresTitleColumn(t *testing.T) {
	_, err := ImportProducts(context.Background(), newServices(), sheetWith(t,
		[]string{"Name"},
		[]string{"Trà"},
	))
	require.Error(t, err)
}

func TestExportRoundTrips(t *testing.T) {
	ctx := context.Background()
	svc := newServices()
	_, err := svc.Products.Create(ctx, &services.ProductForm{Title: "Trà Shan Tuyết", Slug: "shan-tuyet", Price: "350000"})
	require.NoError(t, err)
	products, err := svc.Catalog.ListProducts(ctx, 0)
	require.NoError(t, err)

	file, err := BuildProductsSheet(products)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	parsed, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.Sheets[0].Rows, 2)
	assert.Equal(t, "shan-tuyet", parsed.Sheets[0].Rows[1].Cells[2].String())

	other := newServices()
	res, err := ImportProducts(ctx, other, parsed)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	got, err := other.Catalog.GetProductBySlug(ctx, "shan-tuyet")
	require.NoError(t, err)
	assert.Equal(t, "Trà Shan Tuyết", got.Title)
	assert.Empty(t, got.Image)
}
