package memory

import (
	"context"
	"sort"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
)

type cartRepo Store

func (r *cartRepo) GetOrCreateForUser(ctx context.Context, userID uint) (*models.Cart, error) {
	return r.getOrCreate(func(c *models.Cart) bool {
		return c.UserID != nil && *c.UserID == userID
	}, func(c *models.Cart) { c.UserID = &userID })
}

func (r *cartRepo) GetOrCreateForSession(ctx context.Context, sessionKey string) (*models.Cart, error) {
	return r.getOrCreate(func(c *models.Cart) bool {
		return c.SessionKey != nil && *c.SessionKey == sessionKey
	}, func(c *models.Cart) { c.SessionKey = &sessionKey })
}

func (r *cartRepo) getOrCreate(match func(*models.Cart) bool, owner func(*models.Cart)) (*models.Cart, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		if match(c) {
			cp := *c
			return &cp, nil
		}
	}
	now := s.now()
	c := &models.Cart{ID: s.id(), CreatedAt: now, UpdatedAt: now}
	owner(c)
	s.carts[c.ID] = c
	cp := *c
	return &cp, nil
}

// line finds the cart line for the product. Callers hold mu.
func (s *Store) line(cartID, productID uint) *models.CartItem {
	for _, item := range s.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			return item
		}
	}
	return nil
}

func (r *cartRepo) AddItem(ctx context.Context, cartID, productID uint) (*models.CartItem, bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cartID]; !ok {
		return nil, false, errs.NotFound("cart not found")
	}
	if _, ok := s.products.rows[productID]; !ok {
		return nil, false, errs.NotFound("product not found")
	}
	now := s.now()
	item := s.line(cartID, productID)
	if item == nil {
		item = &models.CartItem{ID: s.id(), CartID: cartID, ProductID: productID, AddedAt: now}
		s.cartItems[item.ID] = item
	}
	item.Quantity++
	item.UpdatedAt = now

	cp := *item
	cp.Product = s.product(productID)
	return &cp, cp.Quantity == 1, nil
}

func (r *cartRepo) RemoveItem(ctx context.Context, cartID, productID uint) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.line(cartID, productID)
	if item == nil {
		return false, nil
	}
	delete(s.cartItems, item.ID)
	return true, nil
}

func (r *cartRepo) SetQuantity(ctx context.Context, cartID, productID uint, quantity int) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.line(cartID, productID)
	if item == nil {
		return false, nil
	}
	if quantity < 1 {
		return false, errs.Validation("quantity must be at least 1", nil)
	}
	item.Quantity = quantity
	item.UpdatedAt = s.now()
	return true, nil
}

func (r *cartRepo) Items(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []models.CartItem
	for _, item := range s.cartItems {
		if item.CartID == cartID {
			cp := *item
			cp.Product = s.product(item.ProductID)
			items = append(items, cp)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].AddedAt.Before(items[j].AddedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *cartRepo) TotalQuantity(ctx context.Context, cartID uint) (int, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.cartItems {
		if item.CartID == cartID {
			total += item.Quantity
		}
	}
	return total, nil
}
