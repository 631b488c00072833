package services

import (
	"context"

	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
)

// Home page section sizes.
const (
	HomeProducts      = 8
	HomeStoryboard    = 6
	StoryboardColumns = 3
	HomeRaw           = 12
	HomeCabinet       = 6
)

type CatalogService struct {
	store store.Store
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{store: s}
}

func (c *CatalogService) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return c.store.Products().List(ctx, limit)
}

func (c *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return c.store.Products().GetBySlug(ctx, slug)
}

func (c *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return c.store.Products().Get(ctx, id)
}

func (c *CatalogService) ListStoryboard(ctx context.Context, limit int) ([]models.StoryboardItem, error) {
	return c.store.Storyboard().List(ctx, limit)
}

func (c *CatalogService) ListRaw(ctx context.Context, limit int) ([]models.RawItem, error) {
	return c.store.Raw().List(ctx, limit)
}

func (c *CatalogService) ListCabinet(ctx context.Context, limit int) ([]models.CabinetItem, error) {
	return c.store.Cabinet().List(ctx, limit)
}

type HomePage struct {
	Products          []models.Product
	Storyboard        []models.StoryboardItem
	StoryboardColumns [][]models.StoryboardItem
	Raw               []models.RawItem
	Cabinet           []models.CabinetItem
}

func (c *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	var (
		page HomePage
		err  error
	)
	if page.Products, err = c.ListProducts(ctx, HomeProducts); err != nil {
		return nil, err
	}
	if page.Storyboard, err = c.ListStoryboard(ctx, HomeStoryboard); err != nil {
		return nil, err
	}
	if page.Raw, err = c.ListRaw(ctx, HomeRaw); err != nil {
		return nil, err
	}
	if page.Cabinet, err = c.ListCabinet(ctx, HomeCabinet); err != nil {
		return nil, err
	}
	page.StoryboardColumns = SplitColumns(page.Storyboard, StoryboardColumns)
	return &page, nil
}

// SplitColumns deals items round-robin into n columns: item i goes to
// column i mod n.
func SplitColumns[T any](items []T, n int) [][]T {
	cols := make([][]T, n)
	for i := range cols {
		cols[i] = []T{}
	}
	for i, item := range items {
		cols[i%n] = append(cols[i%n], item)
	}
	return cols
}
