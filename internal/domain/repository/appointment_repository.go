package repository

import (
	"context"

	"health-booking-api/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, appointmentID string) error

	// ExistsByDoctorAndSlot is the limit-1 existence probe against the
	// doctor+slot secondary index used for the conflict check.
	ExistsByDoctorAndSlot(ctx context.Context, doctorID, slotISO string) (bool, error)

	// FindByDoctorID returns the doctor's appointments ordered by slot,
	// optionally restricted to slots at or after sinceSlot.
	FindByDoctorID(ctx context.Context, doctorID, sinceSlot string) ([]entity.Appointment, error)

	// FindByPatientID returns the patient's appointments ordered by slot.
	FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error)
}
