package repository

import (
	"context"
	"errors"

	"health-booking-api/internal/domain/entity"
	domainRepo "health-booking-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type healthIndexRepository struct {
	db *gorm.DB
}

func NewHealthIndexRepository(db *gorm.DB) domainRepo.HealthIndexRepository {
	return &healthIndexRepository{db: db}
}

func (r *healthIndexRepository) Put(ctx context.Context, record *entity.HealthIndexRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "patient_id"}, {Name: "record_id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

func (r *healthIndexRepository) Find(ctx context.Context, patientID, recordID string) (*entity.HealthIndexRecord, error) {
	var record entity.HealthIndexRecord
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND record_id = ?", patientID, recordID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *healthIndexRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.HealthIndexRecord, error) {
	var records []entity.HealthIndexRecord
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("updated_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *healthIndexRepository) Delete(ctx context.Context, patientID, recordID string) error {
	return r.db.WithContext(ctx).
		Where("patient_id = ? AND record_id = ?", patientID, recordID).
		Delete(&entity.HealthIndexRecord{}).Error
}
