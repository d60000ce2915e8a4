package dto

import (
	"health-booking-api/pkg/vitals"
)

type HealthIndexRecordResponse struct {
	PatientID  string         `json:"patientId"`
	RecordID   string         `json:"recordId"`
	ReasonCode string         `json:"reasonCode,omitempty"`
	Metrics    vitals.Metrics `json:"metrics"`
	UpdatedAt  string         `json:"updatedAt"`
}
