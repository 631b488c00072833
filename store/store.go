// Package store declares the persistence interfaces the services depend on.
// Implementations live in store/gormstore (PostgreSQL) and store/memory.
package store

import (
	"context"

	"github.com/junaidrashid-git/teazen/models"
)

// ContentRepository is the shape shared by the four admin-managed tables.
// List returns newest first; limit <= 0 means no limit.
type ContentRepository[T any] interface {
	List(ctx context.Context, limit int) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// SlugRepository adds lookup by the unique slug.
type SlugRepository[T any] interface {
	ContentRepository[T]
	GetBySlug(ctx context.Context, slug string) (*T, error)
}

type UserRepository interface {
	// CreateWithProfile inserts the user and its profile in one transaction.
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error
	Get(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	TouchLastLogin(ctx context.Context, id uint) error
	// SaveProfile persists name changes on the user and the profile row.
	SaveProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error
}

type CartRepository interface {
	GetOrCreateForUser(ctx context.Context, userID uint) (*models.Cart, error)
	GetOrCreateForSession(ctx context.Context, sessionKey string) (*models.Cart, error)
	// AddItem inserts the line with quantity 1 or increments an existing one
	// in a single statement. created is true when the line is new.
	AddItem(ctx context.Context, cartID, productID uint) (item *models.CartItem, created bool, err error)
	// RemoveItem deletes the line; removed is false when there was none.
	RemoveItem(ctx context.Context, cartID, productID uint) (removed bool, err error)
	// SetQuantity updates an existing line; found is false when there is none.
	SetQuantity(ctx context.Context, cartID, productID uint, quantity int) (found bool, err error)
	Items(ctx context.Context, cartID uint) ([]models.CartItem, error)
	TotalQuantity(ctx context.Context, cartID uint) (int, error)
}

type WishlistRepository interface {
	// Add is an insert-if-absent; created is false when the pair existed.
	Add(ctx context.Context, userID, productID uint) (created bool, err error)
	Remove(ctx context.Context, userID, productID uint) error
	List(ctx context.Context, userID uint, limit int) ([]models.Wishlist, error)
}

type OrderRepository interface {
	// Create inserts the order and its items in one transaction. A duplicate
	// order number is reported as an errs.KindConflict error.
	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id uint) (*models.Order, error)
	ListForUser(ctx context.Context, userID uint, limit int) ([]models.Order, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
	ListAll(ctx context.Context, limit int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
}

// Store groups every repository behind one handle.
type Store interface {
	Products() SlugRepository[models.Product]
	Storyboard() SlugRepository[models.StoryboardItem]
	Raw() ContentRepository[models.RawItem]
	Cabinet() ContentRepository[models.CabinetItem]
	Users() UserRepository
	Carts() CartRepository
	Wishlists() WishlistRepository
	Orders() OrderRepository
	Ping(ctx context.Context) error
}
