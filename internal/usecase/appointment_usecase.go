package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"health-booking-api/internal/converter"
	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/domain/entity"
	"health-booking-api/internal/domain/event"
	"health-booking-api/internal/domain/repository"
	"health-booking-api/pkg/timeslot"
	"health-booking-api/pkg/vitals"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// retentionLimit caps a patient's appointment history; rows beyond the
// limit are pruned oldest-first after a successful create.
const retentionLimit = 3

type AppointmentUsecase interface {
	Create(ctx context.Context, patientID string, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, error)
	Confirm(ctx context.Context, doctorID, appointmentID string) (*dto.StatusResponse, error)
	Decline(ctx context.Context, doctorID, appointmentID string) (*dto.StatusResponse, error)
	Cancel(ctx context.Context, patientID, appointmentID string) (*dto.StatusResponse, error)
	ListForDoctor(ctx context.Context, doctorID, since string) ([]dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	healthIndex     HealthIndexUsecase
	publisher       event.Publisher
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	healthIndex HealthIndexUsecase,
	publisher event.Publisher,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		healthIndex:     healthIndex,
		publisher:       publisher,
	}
}

// Create books a PENDING appointment for the patient.
//
// Flow:
// 1. Sanitize vitals (mandatory fields, derived BMI)
// 2. Normalize the slot and reject past slots
// 3. Validate the doctor exists and publishes the slot (empty set = open)
// 4. Conflict probe against the doctor+slot index
// 5. Insert, write health index snapshot, emit BOOKED
// 6. Prune the patient's history to the retention limit (best-effort)
//
// The probe-then-insert sequence is not atomic; two concurrent creates
// for the same doctor+slot can race, and the loser surfaces as a
// conflict on the next read. Accepted at current contention levels.
func (u *appointmentUsecase) Create(ctx context.Context, patientID string, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, error) {
	summary, err := vitals.Sanitize(req.Vitals)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	normalizedSlot, err := timeslot.Normalize(req.SlotISO)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	slotTime, _ := timeslot.Parse(normalizedSlot)
	if !slotTime.After(time.Now().UTC()) {
		return nil, ErrSlotInPast
	}

	doctor, err := u.userRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to load doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	if !slotPublished(doctor.DoctorProfile, normalizedSlot) {
		return nil, ErrSlotUnpublished
	}

	taken, err := u.appointmentRepo.ExistsByDoctorAndSlot(ctx, req.DoctorID, normalizedSlot)
	if err != nil {
		u.log.Warnf("Doctor availability lookup failed: %+v", err)
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	reasonCode := req.ReasonCode
	if reasonCode == "" {
		reasonCode = entity.DefaultReasonCode
	}

	now := time.Now().UTC()
	appointment := &entity.Appointment{
		AppointmentID: newAppointmentID(),
		DoctorID:      req.DoctorID,
		PatientID:     patientID,
		PatientEmail:  patientID,
		SlotISO:       normalizedSlot,
		Status:        entity.AppointmentStatusPending,
		ReasonCode:    reasonCode,
		Vitals:        entity.JSONMap(summary),
		VitalsSummary: entity.JSONMap(summary),
		DoctorProfile: doctor.DoctorProfile,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Errorf("Failed to persist appointment: %+v", err)
		return nil, err
	}

	if err := u.healthIndex.RecordSnapshot(ctx, appointment); err != nil {
		u.log.Errorf("Failed to persist health index for %s: %+v", appointment.AppointmentID, err)
		return nil, err
	}

	u.emit(ctx, event.TypeBooked, appointment)
	u.pruneHistory(ctx, patientID)

	u.log.Infof("Appointment created: id=%s, doctor=%s, slot=%s", appointment.AppointmentID, req.DoctorID, normalizedSlot)
	return &dto.CreateAppointmentResponse{
		AppointmentID: appointment.AppointmentID,
		Status:        string(appointment.Status),
	}, nil
}

// Confirm marks a pending or already-confirmed appointment CONFIRMED.
func (u *appointmentUsecase) Confirm(ctx context.Context, doctorID, appointmentID string) (*dto.StatusResponse, error) {
	appointment, err := u.loadOwnedByDoctor(ctx, doctorID, appointmentID)
	if err != nil {
		return nil, err
	}

	appointment.Confirm(time.Now().UTC())
	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Errorf("Failed to confirm appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.emit(ctx, event.TypeConfirmed, appointment)
	return &dto.StatusResponse{Status: string(appointment.Status)}, nil
}

// Decline marks a pending or confirmed appointment DECLINED.
func (u *appointmentUsecase) Decline(ctx context.Context, doctorID, appointmentID string) (*dto.StatusResponse, error) {
	appointment, err := u.loadOwnedByDoctor(ctx, doctorID, appointmentID)
	if err != nil {
		return nil, err
	}

	appointment.Decline(time.Now().UTC())
	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Errorf("Failed to decline appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.emit(ctx, event.TypeDeclined, appointment)
	return &dto.StatusResponse{Status: string(appointment.Status)}, nil
}

// Cancel deletes the patient's appointment outright to free the slot,
// then rewires the health index. The removal and the pointer recompute
// are separate store operations; the recompute is best-effort.
func (u *appointmentUsecase) Cancel(ctx context.Context, patientID, appointmentID string) (*dto.StatusResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotOwner
	}
	if !appointment.IsActionable() {
		return nil, ErrInvalidState
	}

	if err := u.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		u.log.Errorf("Failed to delete appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	appointment.Status = entity.AppointmentStatusCancelled
	u.emit(ctx, event.TypeCancelled, appointment)
	u.healthIndex.CleanupAfterCancel(ctx, patientID, appointmentID, appointment.CreatedAt)

	u.log.Infof("Appointment cancelled: id=%s, patient=%s", appointmentID, patientID)
	return &dto.StatusResponse{Status: string(entity.AppointmentStatusCancelled)}, nil
}

// ListForDoctor returns the doctor's appointments ordered by slot,
// optionally restricted to slots at or after the since timestamp.
func (u *appointmentUsecase) ListForDoctor(ctx context.Context, doctorID, since string) ([]dto.AppointmentResponse, error) {
	sinceSlot := ""
	if since != "" {
		if normalized, err := timeslot.Normalize(since); err == nil {
			sinceSlot = normalized
		}
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctorID, sinceSlot)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

// ListForPatient returns the patient's appointments ordered by slot. The
// doctor display fields are enriched best-effort from the user store.
func (u *appointmentUsecase) ListForPatient(ctx context.Context, patientID string) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)
	u.enrichDoctorDetails(ctx, responses)
	return responses, nil
}

// enrichDoctorDetails attaches doctor display name and email to the
// responses. Lookup failures are logged and leave the fields empty.
func (u *appointmentUsecase) enrichDoctorDetails(ctx context.Context, responses []dto.AppointmentResponse) {
	doctors := map[string]*entity.User{}
	for i := range responses {
		doctorID := responses[i].DoctorID
		doctor, seen := doctors[doctorID]
		if !seen {
			var err error
			doctor, err = u.userRepo.FindByID(ctx, doctorID)
			if err != nil {
				u.log.Warnf("Doctor enrichment failed for %s (non-fatal): %+v", doctorID, err)
			}
			doctors[doctorID] = doctor
		}
		if doctor == nil {
			continue
		}
		responses[i].DoctorEmail = doctor.Email
		responses[i].DoctorName = strings.TrimSpace(doctor.FirstName + " " + doctor.LastName)
	}
}

func (u *appointmentUsecase) loadOwnedByDoctor(ctx context.Context, doctorID, appointmentID string) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrNotOwner
	}
	if !appointment.IsActionable() {
		return nil, ErrInvalidState
	}
	return appointment, nil
}

// slotPublished applies the availability rule: a doctor with published
// slots only accepts members of that set; no published slots means open
// availability.
func slotPublished(profile *entity.DoctorProfile, normalizedSlot string) bool {
	if profile == nil || len(profile.AvailSlots) == 0 {
		return true
	}
	for _, slot := range profile.AvailSlots {
		if slot == normalizedSlot {
			return true
		}
	}
	return false
}

// emit publishes a transition event; delivery failures are logged and
// never fail the request.
func (u *appointmentUsecase) emit(ctx context.Context, t event.Type, appointment *entity.Appointment) {
	if err := u.publisher.Publish(ctx, event.FromAppointment(t, appointment)); err != nil {
		u.log.Warnf("Failed to emit %s event for %s (non-fatal): %+v", t, appointment.AppointmentID, err)
	}
}

// pruneHistory keeps the patient's most recent rows by creation time,
// ties broken by slot. Failures are logged and swallowed.
func (u *appointmentUsecase) pruneHistory(ctx context.Context, patientID string) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Retention pruning skipped for %s: %+v", patientID, err)
		return
	}
	if len(appointments) <= retentionLimit {
		return
	}

	sort.Slice(appointments, func(i, j int) bool {
		if !appointments[i].CreatedAt.Equal(appointments[j].CreatedAt) {
			return appointments[i].CreatedAt.Before(appointments[j].CreatedAt)
		}
		return appointments[i].SlotISO < appointments[j].SlotISO
	})

	for _, old := range appointments[:len(appointments)-retentionLimit] {
		if err := u.appointmentRepo.Delete(ctx, old.AppointmentID); err != nil {
			u.log.Warnf("Failed to prune old appointment %s: %+v", old.AppointmentID, err)
		}
	}
}

// newAppointmentID returns a time-sortable unique identifier.
func newAppointmentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
