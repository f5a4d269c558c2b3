package user

import (
	"context"
	"errors"
	"time"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		Create(ctx context.Context, u *entities.User) error
		GetByID(ctx context.Context, id uint) (*entities.User, error)
		GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error)
		Update(ctx context.Context, u *entities.User) error
		AssignRole(ctx context.Context, userID uint, role entities.UserRole, assignedBy uint) error
		RemoveRole(ctx context.Context, userID uint, role entities.UserRole) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *entities.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var u entities.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error) {
	var u entities.User
	err := r.db.WithContext(ctx).Preload("Roles").
		First(&u, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *entities.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) AssignRole(ctx context.Context, userID uint, role entities.UserRole, assignedBy uint) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.UserRoleAssignment{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrRoleAlreadyGranted
	}
	return r.db.WithContext(ctx).Create(&entities.UserRoleAssignment{
		UserID:     userID,
		Role:       role,
		AssignedAt: time.Now(),
		AssignedBy: &assignedBy,
	}).Error
}

func (r *userRepository) RemoveRole(ctx context.Context, userID uint, role entities.UserRole) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&entities.UserRoleAssignment{}).Error
}
