package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role is derived from identity-provider group membership, not a local table.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

// DoctorProfile holds doctor-specific attributes. AvailSlots contains
// normalized slot strings; an empty set means open availability.
type DoctorProfile struct {
	Specialty  string   `json:"specialty,omitempty"`
	City       string   `json:"city,omitempty"`
	AvailSlots []string `json:"availSlots"`
}

func (p DoctorProfile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *DoctorProfile) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported type for DoctorProfile")
	}
}

// User mirrors the identity-provider record persisted on confirmation.
// The identifier is email-shaped and owned by the provider; users are
// never deleted by this system.
type User struct {
	UserID        string         `gorm:"column:user_id;type:varchar(255);primaryKey" json:"userId"`
	Email         string         `gorm:"type:varchar(255);not null;index" json:"email"`
	Role          Role           `gorm:"type:varchar(20);not null;index" json:"role"`
	FirstName     string         `gorm:"type:varchar(255)" json:"firstName"`
	LastName      string         `gorm:"type:varchar(255)" json:"lastName"`
	DoctorProfile *DoctorProfile `gorm:"type:jsonb" json:"doctorProfile,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// IsDoctor checks if the user carries the doctor role
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}
