package converter

import (
	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/domain/entity"
	"health-booking-api/pkg/vitals"
)

// HealthIndexRecordToResponse converts a health index record. Records
// written by older snapshots kept their metrics under a "summary" key;
// those are unwrapped so clients always see "metrics".
func HealthIndexRecordToResponse(record *entity.HealthIndexRecord) *dto.HealthIndexRecordResponse {
	if record == nil {
		return nil
	}

	metrics := map[string]interface{}(record.Metrics)
	if legacy, ok := metrics["summary"].(map[string]interface{}); ok && len(metrics) == 1 {
		metrics = legacy
	}
	if metrics == nil {
		metrics = map[string]interface{}{}
	}

	return &dto.HealthIndexRecordResponse{
		PatientID:  record.PatientID,
		RecordID:   record.RecordID,
		ReasonCode: record.ReasonCode,
		Metrics:    vitals.Metrics(metrics),
		UpdatedAt:  formatTimestamp(record.UpdatedAt),
	}
}

// HealthIndexRecordsToResponses converts a slice of records
func HealthIndexRecordsToResponses(records []entity.HealthIndexRecord) []dto.HealthIndexRecordResponse {
	responses := make([]dto.HealthIndexRecordResponse, 0, len(records))
	for i := range records {
		if resp := HealthIndexRecordToResponse(&records[i]); resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses
}
