package gormstore

import (
	"context"

	"github.com/junaidrashid-git/teazen/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

// GetOrCreateForUser inserts the cart when missing and reads it back, so two
// concurrent first requests still end up with one row.
func (r *cartRepo) GetOrCreateForUser(ctx context.Context, userID uint) (*models.Cart, error) {
	return r.getOrCreate(ctx, &models.Cart{UserID: &userID}, "user_id = ?", userID)
}

func (r *cartRepo) GetOrCreateForSession(ctx context.Context, sessionKey string) (*models.Cart, error) {
	return r.getOrCreate(ctx, &models.Cart{SessionKey: &sessionKey}, "session_key = ?", sessionKey)
}

func (r *cartRepo) getOrCreate(ctx context.Context, seed *models.Cart, query string, arg any) (*models.Cart, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return nil, translate(err, "cart")
	}
	var cart models.Cart
	if err := db.Where(query, arg).First(&cart).Error; err != nil {
		return nil, translate(err, "cart")
	}
	return &cart, nil
}

func (r *cartRepo) AddItem(ctx context.Context, cartID, productID uint) (*models.CartItem, bool, error) {
	db := r.db.WithContext(ctx)
	item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + 1"),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Omit("Product").Create(&item).Error
	if err != nil {
		return nil, false, translate(err, "cart item")
	}

	var stored models.CartItem
	err = db.Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&stored).Error
	if err != nil {
		return nil, false, translate(err, "cart item")
	}
	return &stored, stored.Quantity == 1, nil
}

func (r *cartRepo) RemoveItem(ctx context.Context, cartID, productID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return false, translate(result.Error, "cart item")
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepo) SetQuantity(ctx context.Context, cartID, productID uint, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return false, translate(result.Error, "cart item")
	}
	return result.RowsAffected > 0, nil
}

func (r *cartRepo) Items(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").
		Where("cart_id = ?", cartID).
		Order("added_at ASC").Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "cart item")
	}
	return items, nil
}

func (r *cartRepo) TotalQuantity(ctx context.Context, cartID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, translate(err, "cart item")
	}
	return total, nil
}
