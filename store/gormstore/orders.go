package gormstore

import (
	"context"

	"github.com/junaidrashid-git/teazen/models"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil
		if err := tx.Omit("User").Create(order).Error; err != nil {
			order.Items = items
			return translate(err, "order")
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Omit("Product").Create(&items).Error; err != nil {
				order.Items = items
				return translate(err, "order item")
			}
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepo) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Preload("User").First(&order, id).Error; err != nil {
		return nil, translate(err, "order")
	}
	return &order, nil
}

func (r *orderRepo) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Order, error) {
	return r.list(ctx, r.db.Where("user_id = ?", userID), limit)
}

func (r *orderRepo) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&n).Error
	if err != nil {
		return 0, translate(err, "order")
	}
	return n, nil
}

func (r *orderRepo) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	return r.list(ctx, r.db.Preload("User"), limit)
}

func (r *orderRepo) list(ctx context.Context, q *gorm.DB, limit int) ([]models.Order, error) {
	var orders []models.Order
	q = q.WithContext(ctx).Preload("Items").Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, translate(err, "order")
	}
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return translate(result.Error, "order")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "order")
	}
	return nil
}
