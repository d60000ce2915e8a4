package repository

import (
	"context"

	"health-booking-api/internal/domain/entity"
)

type HealthIndexRepository interface {
	Put(ctx context.Context, record *entity.HealthIndexRecord) error
	Find(ctx context.Context, patientID, recordID string) (*entity.HealthIndexRecord, error)
	FindByPatientID(ctx context.Context, patientID string) ([]entity.HealthIndexRecord, error)
	Delete(ctx context.Context, patientID, recordID string) error
}
