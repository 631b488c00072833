package gormstore

import (
	"context"

	"gorm.io/gorm"
)

type contentRepo[T any] struct {
	db   *gorm.DB
	name string
}

func (r *contentRepo[T]) List(ctx context.Context, limit int) ([]T, error) {
	var items []T
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, translate(err, r.name)
	}
	return items, nil
}

func (r *contentRepo[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err, r.name)
	}
	return &item, nil
}

func (r *contentRepo[T]) Create(ctx context.Context, item *T) error {
	return translate(r.db.WithContext(ctx).Create(item).Error, r.name)
}

func (r *contentRepo[T]) Update(ctx context.Context, item *T) error {
	return translate(r.db.WithContext(ctx).Save(item).Error, r.name)
}

func (r *contentRepo[T]) Delete(ctx context.Context, id uint) error {
	var item T
	result := r.db.WithContext(ctx).Delete(&item, id)
	if result.Error != nil {
		return translate(result.Error, r.name)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, r.name)
	}
	return nil
}

func (r *contentRepo[T]) Count(ctx context.Context) (int64, error) {
	var item T
	var n int64
	if err := r.db.WithContext(ctx).Model(&item).Count(&n).Error; err != nil {
		return 0, translate(err, r.name)
	}
	return n, nil
}

type slugRepo[T any] struct {
	contentRepo[T]
}

func (r *slugRepo[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, translate(err, r.name)
	}
	return &item, nil
}
