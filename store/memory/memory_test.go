package memory

import (
	"context"
	"testing"
	"time"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(title, slug string, price int64) *models.Product {
	return &models.Product{
		Title: title,
		Slug:  slug,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(price)),
	}
}

func TestProducts_SlugLookupUntilDeleted(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := product("Trà Sen", "tra-sen", 250000)
	require.NoError(t, s.Products().Create(ctx, p))
	require.NotZero(t, p.ID)
	require.False(t, p.CreatedAt.IsZero())

	got, err := s.Products().GetBySlug(ctx, "tra-sen")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Trà Sen", got.Title)

	require.NoError(t, s.Products().Delete(ctx, p.ID))
	_, err = s.Products().GetBySlug(ctx, "tra-sen")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestProducts_DuplicateSlugConflicts(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := product("Trà Sen", "tra-sen", 250000)
	require.NoError(t, s.Products().Create(ctx, first))

	err := s.Products().Create(ctx, product("Another", "tra-sen", 1))
	assert.True(t, errs.Is(err, errs.KindConflict))

	got, err := s.Products().GetBySlug(ctx, "tra-sen")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Trà Sen", got.Title)

	n, err := s.Products().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestProducts_UpdateKeepsOwnSlug(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := product("Trà Sen", "tra-sen", 250000)
	require.NoError(t, s.Products().Create(ctx, p))
	other := product("Trà Lài", "tra-lai", 180000)
	require.NoError(t, s.Products().Create(ctx, other))

	p.Title = "Trà Sen Tây Hồ"
	require.NoError(t, s.Products().Update(ctx, p))

	other.Slug = "tra-sen"
	assert.True(t, errs.Is(s.Products().Update(ctx, other), errs.KindConflict))

	missing := product("x", "x", 1)
	missing.ID = 999
	assert.True(t, errs.Is(s.Products().Update(ctx, missing), errs.KindNotFound))
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, s.Raw().Create(ctx, &models.RawItem{Title: title}))
	}

	items, err := s.Raw().List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].Title)
	assert.Equal(t, "b", items[1].Title)

	all, err := s.Raw().List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCarts_AddMergesQuantity(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := product("Trà Sen", "tra-sen", 250000)
	require.NoError(t, s.Products().Create(ctx, p))

	cart, err := s.Carts().GetOrCreateForSession(ctx, "guest-1")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		item, created, err := s.Carts().AddItem(ctx, cart.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, i == 1, created)
		assert.Equal(t, i, item.Quantity)
		assert.Equal(t, "Trà Sen", item.Product.Title)
	}

	items, err := s.Carts().Items(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	total, err := s.Carts().TotalQuantity(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestCarts_OnePerOwner(t *testing.T) {
	ctx := context.Background()
	s := New()

	a, err := s.Carts().GetOrCreateForSession(ctx, "guest-1")
	require.NoError(t, err)
	b, err := s.Carts().GetOrCreateForSession(ctx, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.True(t, a.IsGuest())

	u, err := s.Carts().GetOrCreateForUser(ctx, 42)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, u.ID)
	assert.False(t, u.IsGuest())
}

func TestCarts_SetQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := product("Trà Sen", "tra-sen", 250000)
	require.NoError(t, s.Products().Create(ctx, p))
	cart, err := s.Carts().GetOrCreateForSession(ctx, "guest-1")
	require.NoError(t, err)

	found, err := s.Carts().SetQuantity(ctx, cart.ID, p.ID, 5)
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = s.Carts().AddItem(ctx, cart.ID, p.ID)
	require.NoError(t, err)
	found, err = s.Carts().SetQuantity(ctx, cart.ID, p.ID, 5)
	require.NoError(t, err)
	assert.True(t, found)

	total, err := s.Carts().TotalQuantity(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	removed, err := s.Carts().RemoveItem(ctx, cart.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.Carts().RemoveItem(ctx, cart.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	items, err := s.Carts().Items(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlists_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := product("Trà Sen", "tra-sen", 250000)
	require.NoError(t, s.Products().Create(ctx, p))

	created, err := s.Wishlists().Add(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Wishlists().Add(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.False(t, created)

	entries, err := s.Wishlists().List(ctx, 7, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tra-sen", entries[0].Product.Slug)

	_, err = s.Wishlists().Add(ctx, 7, 999)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestDeleteProduct_Cascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := product("Trà Sen", "tra-sen", 250000)
	require.NoError(t, s.Products().Create(ctx, p))

	cart, err := s.Carts().GetOrCreateForUser(ctx, 1)
	require.NoError(t, err)
	_, _, err = s.Carts().AddItem(ctx, cart.ID, p.ID)
	require.NoError(t, err)
	_, err = s.Wishlists().Add(ctx, 1, p.ID)
	require.NoError(t, err)

	pid := p.ID
	order := &models.Order{
		UserID:      1,
		OrderNumber: "ORD-2024-123",
		TotalAmount: decimal.NewFromInt(250000),
		Items: []models.OrderItem{{
			ProductID:    &pid,
			ProductTitle: p.Title,
			Quantity:     1,
			Price:        decimal.NewFromInt(250000),
		}},
	}
	require.NoError(t, s.Orders().Create(ctx, order))

	require.NoError(t, s.Products().Delete(ctx, p.ID))

	items, err := s.Carts().Items(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	entries, err := s.Wishlists().List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	got, err := s.Orders().Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].ProductID)
	assert.Equal(t, "Trà Sen", got.Items[0].ProductTitle)
}

func TestUsers_CreateWithProfile(t *testing.T) {
	ctx := context.Background()
	s := New()

	u := &models.User{Username: "lan", Email: "Lan@example.com", IsActive: true}
	profile := models.NewProfile(time.Now(), func(int) int { return 1 })
	require.NoError(t, s.Users().CreateWithProfile(ctx, u, &profile))
	require.NotZero(t, u.ID)

	got, err := s.Users().GetByEmail(ctx, "lan@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	assert.Equal(t, u.ID, got.Profile.UserID)
	assert.Equal(t, models.MembershipBronze, got.Profile.MembershipLevel)
	assert.Equal(t, "1001 1001 1001 1001", got.Profile.MembershipNumber)

	dup := &models.User{Username: "lan"}
	p2 := models.NewProfile(time.Now(), func(int) int { return 0 })
	assert.True(t, errs.Is(s.Users().CreateWithProfile(ctx, dup, &p2), errs.KindConflict))

	sameEmail := &models.User{Username: "lan2", Email: "LAN@example.com"}
	p3 := models.NewProfile(time.Now(), func(int) int { return 0 })
	assert.True(t, errs.Is(s.Users().CreateWithProfile(ctx, sameEmail, &p3), errs.KindConflict))
	assert.Zero(t, sameEmail.ID)

	ok, err := s.Users().UsernameExists(ctx, "lan")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Users().EmailExists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrders_DuplicateNumberConflicts(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Orders().Create(ctx, &models.Order{UserID: 1, OrderNumber: "ORD-2024-100"}))
	err := s.Orders().Create(ctx, &models.Order{UserID: 1, OrderNumber: "ORD-2024-100"})
	assert.True(t, errs.Is(err, errs.KindConflict))

	n, err := s.Orders().CountForUser(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
