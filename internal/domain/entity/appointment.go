package entity

import (
	"time"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusDeclined  AppointmentStatus = "DECLINED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// DefaultReasonCode tags appointments whose triage category was not supplied.
const DefaultReasonCode = "GENERAL"

// Appointment represents a booked doctor slot. SlotISO is the canonical
// normalized slot key; at most one non-terminal appointment may exist per
// (doctor, slot) pair. Vitals and VitalsSummary carry the same metrics
// snapshot under two columns for legacy compatibility.
type Appointment struct {
	AppointmentID string            `gorm:"column:appointment_id;type:varchar(64);primaryKey" json:"appointmentId"`
	DoctorID      string            `gorm:"type:varchar(255);not null;index:idx_appointments_doctor_slot" json:"doctorId"`
	PatientID     string            `gorm:"type:varchar(255);not null;index" json:"patientId"`
	PatientEmail  string            `gorm:"type:varchar(255)" json:"patientEmail,omitempty"`
	SlotISO       string            `gorm:"column:slot_iso;type:varchar(32);not null;index:idx_appointments_doctor_slot" json:"slotISO"`
	Status        AppointmentStatus `gorm:"type:varchar(20);not null" json:"status"`
	ReasonCode    string            `gorm:"type:varchar(64)" json:"reasonCode"`
	Vitals        JSONMap           `gorm:"type:jsonb" json:"vitals,omitempty"`
	VitalsSummary JSONMap           `gorm:"type:jsonb" json:"vitalsSummary,omitempty"`
	DoctorProfile *DoctorProfile    `gorm:"type:jsonb" json:"doctorProfile,omitempty"`
	CreatedAt     time.Time         `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is awaiting doctor action
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsActionable reports whether the appointment may still transition;
// DECLINED and CANCELLED are terminal.
func (a *Appointment) IsActionable() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// Confirm moves the appointment to CONFIRMED
func (a *Appointment) Confirm(now time.Time) {
	a.Status = AppointmentStatusConfirmed
	a.UpdatedAt = now
}

// Decline moves the appointment to DECLINED
func (a *Appointment) Decline(now time.Time) {
	a.Status = AppointmentStatusDeclined
	a.UpdatedAt = now
}
