package user

import (
	"context"

	"github.com/changhyeonkim/sales-crm/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) IsExist(ctx context.Context, db *gorm.DB, loginID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.User{}).
		Where("login_id = ?", loginID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByLoginID(ctx context.Context, db *gorm.DB, loginID string) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Where("login_id = ?", loginID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountCustomers returns the size of the user's customer book
func (r *UserRepository) CountCustomers(ctx context.Context, db *gorm.DB, id uint32) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("owner_id = ?", id).
		Count(&count).Error
	return count, err
}
