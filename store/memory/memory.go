// Package memory is an in-process store.Store. It backs the test suites and
// STORE_DRIVER=memory, and mirrors the constraints the PostgreSQL schema
// enforces: unique slugs, one cart per owner, one line per product, and the
// cascades on product deletion.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
)

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	products   *table[models.Product, *models.Product]
	storyboard *table[models.StoryboardItem, *models.StoryboardItem]
	raw        *table[models.RawItem, *models.RawItem]
	cabinet    *table[models.CabinetItem, *models.CabinetItem]

	users     map[uint]*models.User
	profiles  map[uint]*models.UserProfile // by user id
	carts     map[uint]*models.Cart
	cartItems map[uint]*models.CartItem
	wishlists map[uint]*models.Wishlist
	orders    map[uint]*models.Order

	nextID uint
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	s := &Store{
		now:       time.Now,
		users:     map[uint]*models.User{},
		profiles:  map[uint]*models.UserProfile{},
		carts:     map[uint]*models.Cart{},
		cartItems: map[uint]*models.CartItem{},
		wishlists: map[uint]*models.Wishlist{},
		orders:    map[uint]*models.Order{},
	}
	s.products = newTable[models.Product](s, "product")
	s.products.onDelete = s.cascadeProduct
	s.storyboard = newTable[models.StoryboardItem](s, "storyboard item")
	s.raw = newTable[models.RawItem](s, "raw item")
	s.cabinet = newTable[models.CabinetItem](s, "cabinet item")
	return s
}

// SetClock replaces the time source used for created_at stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Products() store.SlugRepository[models.Product]          { return s.products }
func (s *Store) Storyboard() store.SlugRepository[models.StoryboardItem] { return s.storyboard }
func (s *Store) Raw() store.ContentRepository[models.RawItem]             { return s.raw }
func (s *Store) Cabinet() store.ContentRepository[models.CabinetItem]     { return s.cabinet }
func (s *Store) Users() store.UserRepository                              { return (*userRepo)(s) }
func (s *Store) Carts() store.CartRepository                              { return (*cartRepo)(s) }
func (s *Store) Wishlists() store.WishlistRepository                      { return (*wishlistRepo)(s) }
func (s *Store) Orders() store.OrderRepository                            { return (*orderRepo)(s) }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// id hands out keys from one sequence shared by every table. Callers hold mu.
func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// cascadeProduct drops cart lines and wishlist entries for the product and
// detaches order lines from it. Callers hold mu.
func (s *Store) cascadeProduct(id uint) {
	for key, item := range s.cartItems {
		if item.ProductID == id {
			delete(s.cartItems, key)
		}
	}
	for key, w := range s.wishlists {
		if w.ProductID == id {
			delete(s.wishlists, key)
		}
	}
	for _, o := range s.orders {
		for i := range o.Items {
			if pid := o.Items[i].ProductID; pid != nil && *pid == id {
				o.Items[i].ProductID = nil
			}
		}
	}
}

type record interface {
	Key() uint
	Created() time.Time
	Stamp(id uint, at time.Time)
}

// table stores one content type. P is the pointer type carrying the Base
// methods, so values can be copied in and out.
type table[T any, P interface {
	*T
	record
}] struct {
	s        *Store
	name     string
	rows     map[uint]*T
	onDelete func(id uint)
}

func newTable[T any, P interface {
	*T
	record
}](s *Store, name string) *table[T, P] {
	return &table[T, P]{s: s, name: name, rows: map[uint]*T{}}
}

type slugged interface{ SlugValue() string }

func slugOf(v any) (string, bool) {
	if sv, ok := v.(slugged); ok {
		return sv.SlugValue(), true
	}
	return "", false
}

// slugTaken reports whether another row already uses the slug. Callers hold mu.
func (t *table[T, P]) slugTaken(item *T) bool {
	slug, ok := slugOf(P(item))
	if !ok {
		return false
	}
	self := P(item).Key()
	for id, row := range t.rows {
		if other, _ := slugOf(P(row)); other == slug && id != self {
			return true
		}
	}
	return false
}

func (t *table[T, P]) List(ctx context.Context, limit int) ([]T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	rows := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return newer(P(rows[i]).Created(), P(rows[i]).Key(), P(rows[j]).Created(), P(rows[j]).Key())
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = *row
	}
	return out, nil
}

func (t *table[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, errs.NotFound("%s not found", t.name)
	}
	cp := *row
	return &cp, nil
}

func (t *table[T, P]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, row := range t.rows {
		if s, ok := slugOf(P(row)); ok && s == slug {
			cp := *row
			return &cp, nil
		}
	}
	return nil, errs.NotFound("%s not found", t.name)
}

func (t *table[T, P]) Create(ctx context.Context, item *T) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	P(item).Stamp(0, time.Time{})
	if t.slugTaken(item) {
		return errs.Conflict(t.name+" already exists", nil)
	}
	P(item).Stamp(t.s.id(), t.s.now())
	cp := *item
	t.rows[P(item).Key()] = &cp
	return nil
}

func (t *table[T, P]) Update(ctx context.Context, item *T) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	id := P(item).Key()
	existing, ok := t.rows[id]
	if !ok {
		return errs.NotFound("%s not found", t.name)
	}
	if t.slugTaken(item) {
		return errs.Conflict(t.name+" already exists", nil)
	}
	cp := *item
	P(&cp).Stamp(id, P(existing).Created())
	t.rows[id] = &cp
	return nil
}

func (t *table[T, P]) Delete(ctx context.Context, id uint) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return errs.NotFound("%s not found", t.name)
	}
	delete(t.rows, id)
	if t.onDelete != nil {
		t.onDelete(id)
	}
	return nil
}

func (t *table[T, P]) Count(ctx context.Context) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return int64(len(t.rows)), nil
}

func newer(a time.Time, aID uint, b time.Time, bID uint) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID > bID
}

// product returns a copy of the product row, zero when missing. Callers hold mu.
func (s *Store) product(id uint) models.Product {
	if p, ok := s.products.rows[id]; ok {
		return *p
	}
	return models.Product{}
}
