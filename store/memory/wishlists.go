package memory

import (
	"context"
	"sort"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
)

type wishlistRepo Store

func (r *wishlistRepo) Add(ctx context.Context, userID, productID uint) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products.rows[productID]; !ok {
		return false, errs.NotFound("product not found")
	}
	for _, w := range s.wishlists {
		if w.UserID == userID && w.ProductID == productID {
			return false, nil
		}
	}
	w := &models.Wishlist{ID: s.id(), UserID: userID, ProductID: productID, AddedAt: s.now()}
	s.wishlists[w.ID] = w
	return true, nil
}

func (r *wishlistRepo) Remove(ctx context.Context, userID, productID uint) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, w := range s.wishlists {
		if w.UserID == userID && w.ProductID == productID {
			delete(s.wishlists, key)
		}
	}
	return nil
}

func (r *wishlistRepo) List(ctx context.Context, userID uint, limit int) ([]models.Wishlist, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []models.Wishlist
	for _, w := range s.wishlists {
		if w.UserID == userID {
			cp := *w
			cp.Product = s.product(w.ProductID)
			entries = append(entries, cp)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return newer(entries[i].AddedAt, entries[i].ID, entries[j].AddedAt, entries[j].ID)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
