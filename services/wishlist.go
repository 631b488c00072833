package services

import (
	"context"

	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
)

type WishlistService struct {
	store store.Store
}

func NewWishlistService(s store.Store) *WishlistService {
	return &WishlistService{store: s}
}

// Add reports created=false when the product was already on the list.
func (w *WishlistService) Add(ctx context.Context, userID, productID uint) (*models.Product, bool, error) {
	product, err := w.store.Products().Get(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	created, err := w.store.Wishlists().Add(ctx, userID, productID)
	if err != nil {
		return nil, false, err
	}
	return product, created, nil
}

func (w *WishlistService) Remove(ctx context.Context, userID, productID uint) (*models.Product, error) {
	product, err := w.store.Products().Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := w.store.Wishlists().Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return product, nil
}

func (w *WishlistService) List(ctx context.Context, userID uint, limit int) ([]models.Wishlist, error) {
	return w.store.Wishlists().List(ctx, userID, limit)
}
