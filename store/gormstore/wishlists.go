package gormstore

import (
	"context"

	"github.com/junaidrashid-git/teazen/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type wishlistRepo struct {
	db *gorm.DB
}

func (r *wishlistRepo) Add(ctx context.Context, userID, productID uint) (bool, error) {
	entry := models.Wishlist{UserID: userID, ProductID: productID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Product").
		Create(&entry)
	if result.Error != nil {
		return false, translate(result.Error, "wishlist entry")
	}
	return result.RowsAffected == 1, nil
}

func (r *wishlistRepo) Remove(ctx context.Context, userID, productID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{}).Error
	return translate(err, "wishlist entry")
}

func (r *wishlistRepo) List(ctx context.Context, userID uint, limit int) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	q := r.db.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).
		Order("added_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, translate(err, "wishlist entry")
	}
	return entries, nil
}
