package dto

import (
	"health-booking-api/pkg/vitals"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID   string                 `json:"doctorId" validate:"required"`
	SlotISO    string                 `json:"slotISO" validate:"required"`
	ReasonCode string                 `json:"reasonCode" validate:"omitempty,max=64"`
	Vitals     map[string]interface{} `json:"vitals"`
}

// Response DTOs

type CreateAppointmentResponse struct {
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type DoctorProfileResponse struct {
	Specialty  string   `json:"specialty,omitempty"`
	City       string   `json:"city,omitempty"`
	AvailSlots []string `json:"availSlots"`
}

type AppointmentResponse struct {
	AppointmentID string                 `json:"appointmentId"`
	DoctorID      string                 `json:"doctorId"`
	PatientID     string                 `json:"patientId"`
	PatientEmail  string                 `json:"patientEmail,omitempty"`
	SlotISO       string                 `json:"slotISO"`
	Status        string                 `json:"status"`
	ReasonCode    string                 `json:"reasonCode,omitempty"`
	Vitals        vitals.Metrics         `json:"vitals,omitempty"`
	VitalsSummary vitals.Metrics         `json:"vitalsSummary,omitempty"`
	DoctorProfile *DoctorProfileResponse `json:"doctorProfile,omitempty"`
	DoctorName    string                 `json:"doctorName,omitempty"`
	DoctorEmail   string                 `json:"doctorEmail,omitempty"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
}
