package repository

import (
	"context"
	"errors"

	"health-booking-api/internal/domain/entity"
	domainRepo "health-booking-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, appointmentID string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, appointmentID string) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&entity.Appointment{}).Error
}

// ExistsByDoctorAndSlot probes the doctor+slot index for an exact match.
// A LIMIT 1 read suffices; the caller only needs existence.
func (r *appointmentRepository) ExistsByDoctorAndSlot(ctx context.Context, doctorID, slotISO string) (bool, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND slot_iso = ?", doctorID, slotISO).
		Limit(1).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID, sinceSlot string) ([]entity.Appointment, error) {
	query := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if sinceSlot != "" {
		query = query.Where("slot_iso >= ?", sinceSlot)
	}

	var appointments []entity.Appointment
	err := query.Order("slot_iso ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("slot_iso ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
