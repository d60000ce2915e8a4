package event

import (
	"context"
	"time"

	"health-booking-api/internal/domain/entity"
)

// Type identifies a lifecycle transition on the event bus.
type Type string

const (
	TypeBooked    Type = "BOOKED"
	TypeConfirmed Type = "CONFIRMED"
	TypeDeclined  Type = "DECLINED"
	TypeCancelled Type = "CANCELLED"
)

// AppointmentEvent is the payload emitted for every mutating transition.
type AppointmentEvent struct {
	EventType     Type      `json:"eventType"`
	AppointmentID string    `json:"appointmentId"`
	PatientID     string    `json:"patientId"`
	DoctorID      string    `json:"doctorId"`
	SlotISO       string    `json:"slotISO"`
	Status        string    `json:"status"`
	ReasonCode    string    `json:"reasonCode"`
	Timestamp     time.Time `json:"ts"`
}

// Publisher delivers appointment events to the external bus with
// at-least-once semantics. Implementations must never make delivery a
// prerequisite for the primary mutation.
type Publisher interface {
	Publish(ctx context.Context, ev AppointmentEvent) error
}

// FromAppointment builds the event payload for a transition.
func FromAppointment(t Type, a *entity.Appointment) AppointmentEvent {
	return AppointmentEvent{
		EventType:     t,
		AppointmentID: a.AppointmentID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		SlotISO:       a.SlotISO,
		Status:        string(a.Status),
		ReasonCode:    a.ReasonCode,
		Timestamp:     time.Now().UTC(),
	}
}
