package repository

import (
	"context"
	"errors"

	"health-booking-api/internal/domain/entity"
	domainRepo "health-booking-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindDoctors(ctx context.Context) ([]entity.User, error) {
	var doctors []entity.User
	err := r.db.WithContext(ctx).
		Where("role = ?", entity.RoleDoctor).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
