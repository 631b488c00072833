package gormstore

import (
	"context"
	"time"

	"github.com/junaidrashid-git/teazen/models"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) CreateWithProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			return translate(err, "user")
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return translate(err, "profile")
		}
		user.Profile = profile
		return nil
	})
}

func (r *userRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *userRepo) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Profile").Where(query, arg).First(&user).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *userRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *userRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&n).Error; err != nil {
		return false, translate(err, "user")
	}
	return n > 0, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.update(ctx, id, "password_hash", hash)
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id uint) error {
	return r.update(ctx, id, "last_login", time.Now())
}

func (r *userRepo) update(ctx context.Context, id uint, column string, value any) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return translate(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user")
	}
	return nil
}

func (r *userRepo) SaveProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]any{"first_name": user.FirstName, "last_name": user.LastName}).Error
		if err != nil {
			return translate(err, "user")
		}
		profile.UserID = user.ID
		return translate(tx.Save(profile).Error, "profile")
	})
}
