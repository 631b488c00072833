package services

import (
	"context"

	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
)

// DashboardLatest is how many recent rows of each type the dashboard shows.
const DashboardLatest = 5

type Dashboard struct {
	ProductsCount   int64
	StoryboardCount int64
	RawCount        int64
	CabinetCount    int64

	Products   []models.Product
	Storyboard []models.StoryboardItem
	Raw        []models.RawItem
	Cabinet    []models.CabinetItem
	Orders     []models.Order
}

type DashboardService struct {
	store store.Store
}

func NewDashboardService(s store.Store) *DashboardService {
	return &DashboardService{store: s}
}

func (d *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	var (
		out Dashboard
		err error
	)
	if out.ProductsCount, err = d.store.Products().Count(ctx); err != nil {
		return nil, err
	}
	if out.StoryboardCount, err = d.store.Storyboard().Count(ctx); err != nil {
		return nil, err
	}
	if out.RawCount, err = d.store.Raw().Count(ctx); err != nil {
		return nil, err
	}
	if out.CabinetCount, err = d.store.Cabinet().Count(ctx); err != nil {
		return nil, err
	}
	if out.Products, err = d.store.Products().List(ctx, DashboardLatest); err != nil {
		return nil, err
	}
	if out.Storyboard, err = d.store.Storyboard().List(ctx, DashboardLatest); err != nil {
		return nil, err
	}
	if out.Raw, err = d.store.Raw().List(ctx, DashboardLatest); err != nil {
		return nil, err
	}
	if out.Cabinet, err = d.store.Cabinet().List(ctx, DashboardLatest); err != nil {
		return nil, err
	}
	if out.Orders, err = d.store.Orders().ListAll(ctx, DashboardLatest); err != nil {
		return nil, err
	}
	return &out, nil
}
