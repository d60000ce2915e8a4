package converter

import (
	"time"

	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/domain/entity"
	"health-booking-api/pkg/vitals"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		AppointmentID: appointment.AppointmentID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		PatientEmail:  appointment.PatientEmail,
		SlotISO:       appointment.SlotISO,
		Status:        string(appointment.Status),
		ReasonCode:    appointment.ReasonCode,
		Vitals:        vitals.Metrics(appointment.Vitals),
		VitalsSummary: vitals.Metrics(appointment.VitalsSummary),
		DoctorProfile: DoctorProfileToResponse(appointment.DoctorProfile),
		CreatedAt:     formatTimestamp(appointment.CreatedAt),
		UpdatedAt:     formatTimestamp(appointment.UpdatedAt),
	}
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		if resp := AppointmentToResponse(&appointments[i]); resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
