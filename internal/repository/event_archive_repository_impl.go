package repository

import (
	"context"

	"health-booking-api/internal/domain/entity"
	domainRepo "health-booking-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type eventArchiveRepository struct {
	db *gorm.DB
}

func NewEventArchiveRepository(db *gorm.DB) domainRepo.EventArchiveRepository {
	return &eventArchiveRepository{db: db}
}

// Create is idempotent on the stream entry ID so a replayed delivery
// (at-least-once bus) does not duplicate the archive row.
func (r *eventArchiveRepository) Create(ctx context.Context, archive *entity.EventArchive) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stream_id"}},
			DoNothing: true,
		}).
		Create(archive).Error
}
