package usecase

import (
	"context"
	"time"

	"health-booking-api/internal/converter"
	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/domain/entity"
	"health-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// HealthIndexUsecase keeps the per-patient "latest record" pointer
// consistent as appointments are created and cancelled, and serves the
// patient index and doctor summary reads.
type HealthIndexUsecase interface {
	RecordSnapshot(ctx context.Context, appointment *entity.Appointment) error
	CleanupAfterCancel(ctx context.Context, patientID, appointmentID string, createdAt time.Time)
	GetPatientIndex(ctx context.Context, patientID string) ([]dto.HealthIndexRecordResponse, error)
	GetSummaryForDoctor(ctx context.Context, doctorID, patientID, appointmentID string) ([]dto.HealthIndexRecordResponse, error)
}

type healthIndexUsecase struct {
	log             *logrus.Logger
	healthIndexRepo repository.HealthIndexRepository
	appointmentRepo repository.AppointmentRepository
}

func NewHealthIndexUsecase(
	log *logrus.Logger,
	healthIndexRepo repository.HealthIndexRepository,
	appointmentRepo repository.AppointmentRepository,
) HealthIndexUsecase {
	return &healthIndexUsecase{
		log:             log,
		healthIndexRepo: healthIndexRepo,
		appointmentRepo: appointmentRepo,
	}
}

// RecordSnapshot writes the historical per-appointment record and the
// "latest" sentinel, both carrying the same metrics and reason code.
func (u *healthIndexUsecase) RecordSnapshot(ctx context.Context, appointment *entity.Appointment) error {
	record := &entity.HealthIndexRecord{
		PatientID:  appointment.PatientID,
		RecordID:   appointment.AppointmentID,
		ReasonCode: appointment.ReasonCode,
		Metrics:    appointment.VitalsSummary,
		UpdatedAt:  appointment.CreatedAt,
	}
	if err := u.healthIndexRepo.Put(ctx, record); err != nil {
		return err
	}

	latest := &entity.HealthIndexRecord{
		PatientID:  appointment.PatientID,
		RecordID:   entity.LatestRecordID,
		ReasonCode: appointment.ReasonCode,
		Metrics:    appointment.VitalsSummary,
		UpdatedAt:  appointment.CreatedAt,
	}
	return u.healthIndexRepo.Put(ctx, latest)
}

// CleanupAfterCancel removes the cancelled appointment's record and, when
// the "latest" pointer was mirroring it, recomputes the pointer from the
// remaining records (or removes it when none remain). Best-effort: every
// failure is logged and swallowed — the cancellation already succeeded.
func (u *healthIndexUsecase) CleanupAfterCancel(ctx context.Context, patientID, appointmentID string, createdAt time.Time) {
	if err := u.healthIndexRepo.Delete(ctx, patientID, appointmentID); err != nil {
		u.log.Warnf("Failed to delete health record %s/%s: %+v", patientID, appointmentID, err)
		return
	}

	latest, err := u.healthIndexRepo.Find(ctx, patientID, entity.LatestRecordID)
	if err != nil {
		u.log.Warnf("Failed to load latest pointer for %s: %+v", patientID, err)
		return
	}
	if latest == nil || !latest.UpdatedAt.Equal(createdAt) {
		// The pointer was not mirroring the removed record.
		return
	}

	records, err := u.healthIndexRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list health records for %s: %+v", patientID, err)
		return
	}

	var newest *entity.HealthIndexRecord
	for i := range records {
		record := &records[i]
		if record.RecordID == entity.LatestRecordID || record.RecordID == appointmentID {
			continue
		}
		if newest == nil || record.UpdatedAt.After(newest.UpdatedAt) {
			newest = record
		}
	}

	if newest == nil {
		if err := u.healthIndexRepo.Delete(ctx, patientID, entity.LatestRecordID); err != nil {
			u.log.Warnf("Failed to clear latest pointer for %s: %+v", patientID, err)
		}
		return
	}

	rewritten := &entity.HealthIndexRecord{
		PatientID:  patientID,
		RecordID:   entity.LatestRecordID,
		ReasonCode: newest.ReasonCode,
		Metrics:    newest.Metrics,
		UpdatedAt:  newest.UpdatedAt,
	}
	if err := u.healthIndexRepo.Put(ctx, rewritten); err != nil {
		u.log.Warnf("Failed to rewrite latest pointer for %s: %+v", patientID, err)
	}
}

// GetPatientIndex returns all of a patient's health index records.
func (u *healthIndexUsecase) GetPatientIndex(ctx context.Context, patientID string) ([]dto.HealthIndexRecordResponse, error) {
	records, err := u.healthIndexRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to load health index for %s: %+v", patientID, err)
		return nil, err
	}
	return converter.HealthIndexRecordsToResponses(records), nil
}

// GetSummaryForDoctor returns a patient's records to a doctor who holds
// an active appointment with that patient for the given identifier.
func (u *healthIndexUsecase) GetSummaryForDoctor(ctx context.Context, doctorID, patientID, appointmentID string) ([]dto.HealthIndexRecordResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil ||
		appointment.DoctorID != doctorID ||
		appointment.PatientID != patientID ||
		!appointment.IsActionable() {
		return nil, ErrSummaryForbidden
	}

	records, err := u.healthIndexRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.HealthIndexRecordsToResponses(records), nil
}
