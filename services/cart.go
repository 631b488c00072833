package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CartEvents receives cart mutations, e.g. for metrics.
type CartEvents interface {
	CartItemAdded(created bool)
}

type CartService struct {
	store  store.Store
	events CartEvents
}

func NewCartService(s store.Store, events CartEvents) *CartService {
	return &CartService{store: s, events: events}
}

// Resolve returns the signed-in user's cart, or the session's cart for
// visitors. A guest cart is never merged into the user's cart on login.
func (c *CartService) Resolve(ctx context.Context, userID uint, sessionKey string) (*models.Cart, error) {
	if userID != 0 {
		return c.store.Carts().GetOrCreateForUser(ctx, userID)
	}
	return c.store.Carts().GetOrCreateForSession(ctx, sessionKey)
}

type AddResult struct {
	Product *models.Product
	Item    *models.CartItem
	// Created is false when an existing line was incremented.
	Created bool
}

func (c *CartService) Add(ctx context.Context, cart *models.Cart, productID uint) (*AddResult, error) {
	product, err := c.store.Products().Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	item, created, err := c.store.Carts().AddItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if c.events != nil {
		c.events.CartItemAdded(created)
	}
	zerolog.Ctx(ctx).Debug().
		Uint("cart_id", cart.ID).
		Uint("product_id", productID).
		Int("quantity", item.Quantity).
		Msg("cart item added")
	return &AddResult{Product: product, Item: item, Created: created}, nil
}

// Remove deletes the product's line. Removing an absent line is a no-op but
// the product itself must exist.
func (c *CartService) Remove(ctx context.Context, cart *models.Cart, productID uint) (*models.Product, error) {
	product, err := c.store.Products().Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := c.store.Carts().RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return product, nil
}

type QuantityResult struct {
	Product *models.Product
	// Removed is true when a quantity <= 0 deleted the line.
	Removed bool
	// Found is false when the cart had no line for the product.
	Found bool
}

// UpdateQuantity sets the line's quantity; zero or less removes the line.
func (c *CartService) UpdateQuantity(ctx context.Context, cart *models.Cart, productID uint, quantity int) (*QuantityResult, error) {
	product, err := c.store.Products().Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	res := &QuantityResult{Product: product}
	if quantity <= 0 {
		removed, err := c.store.Carts().RemoveItem(ctx, cart.ID, productID)
		if err != nil {
			return nil, err
		}
		res.Found, res.Removed = removed, removed
		return res, nil
	}
	res.Found, err = c.store.Carts().SetQuantity(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ParseQuantity reads the posted quantity; anything non-numeric counts as 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

func (c *CartService) TotalItems(ctx context.Context, cart *models.Cart) (int, error) {
	return c.store.Carts().TotalQuantity(ctx, cart.ID)
}

type CartLine struct {
	Item     models.CartItem
	Subtotal decimal.Decimal
}

type CartSummary struct {
	Cart       *models.Cart
	Lines      []CartLine
	TotalItems int
	TotalPrice decimal.Decimal
}

// Lines returns the cart contents with per-line subtotals. Unpriced products
// contribute zero.
func (c *CartService) Lines(ctx context.Context, cart *models.Cart) (*CartSummary, error) {
	items, err := c.store.Carts().Items(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	sum := &CartSummary{Cart: cart, TotalPrice: decimal.Zero}
	for _, item := range items {
		line := CartLine{Item: item, Subtotal: item.Subtotal()}
		sum.Lines = append(sum.Lines, line)
		sum.TotalItems += item.Quantity
		sum.TotalPrice = sum.TotalPrice.Add(line.Subtotal)
	}
	return sum, nil
}
