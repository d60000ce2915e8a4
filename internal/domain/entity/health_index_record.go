package entity

import "time"

// LatestRecordID is the sentinel record mirroring the most recently
// updated vitals snapshot for a patient.
const LatestRecordID = "latest"

// HealthIndexRecord is keyed by (patient, record) where the record
// identifier is an appointment identifier or the "latest" sentinel.
type HealthIndexRecord struct {
	PatientID  string    `gorm:"type:varchar(255);primaryKey" json:"patientId"`
	RecordID   string    `gorm:"type:varchar(64);primaryKey" json:"recordId"`
	ReasonCode string    `gorm:"type:varchar(64)" json:"reasonCode"`
	Metrics    JSONMap   `gorm:"type:jsonb" json:"metrics"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (HealthIndexRecord) TableName() string {
	return "health_index_records"
}

// IsLatest checks if this is the sentinel record
func (r *HealthIndexRecord) IsLatest() bool {
	return r.RecordID == LatestRecordID
}
