package repository

import (
	"context"

	"health-booking-api/internal/domain/entity"
)

type UserRepository interface {
	// Upsert persists the user, replacing an existing record with the
	// same identifier (re-confirmation flows rewrite the row).
	Upsert(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, userID string) (*entity.User, error)
	FindDoctors(ctx context.Context) ([]entity.User, error)
}
