// Package gormstore implements store.Store on PostgreSQL through gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/teazen/errs"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/store"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an opened connection. The connection should be opened with
// gorm.Config{TranslateError: true} so unique violations map to conflicts.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Products() store.SlugRepository[models.Product] {
	return &slugRepo[models.Product]{contentRepo[models.Product]{db: s.db, name: "product"}}
}

func (s *Store) Storyboard() store.SlugRepository[models.StoryboardItem] {
	return &slugRepo[models.StoryboardItem]{contentRepo[models.StoryboardItem]{db: s.db, name: "storyboard item"}}
}

func (s *Store) Raw() store.ContentRepository[models.RawItem] {
	return &contentRepo[models.RawItem]{db: s.db, name: "raw item"}
}

func (s *Store) Cabinet() store.ContentRepository[models.CabinetItem] {
	return &contentRepo[models.CabinetItem]{db: s.db, name: "cabinet item"}
}

func (s *Store) Users() store.UserRepository { return &userRepo{db: s.db} }

func (s *Store) Carts() store.CartRepository { return &cartRepo{db: s.db} }

func (s *Store) Wishlists() store.WishlistRepository { return &wishlistRepo{db: s.db} }

func (s *Store) Orders() store.OrderRepository { return &orderRepo{db: s.db} }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps gorm errors onto the errs taxonomy.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Conflict(what+" already exists", err)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
