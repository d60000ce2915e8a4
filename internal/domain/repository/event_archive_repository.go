package repository

import (
	"context"

	"health-booking-api/internal/domain/entity"
)

type EventArchiveRepository interface {
	Create(ctx context.Context, archive *entity.EventArchive) error
}
