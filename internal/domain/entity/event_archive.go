package entity

import "time"

// EventArchive is a durable copy of a domain event consumed from the
// appointment event stream by the archiver worker.
type EventArchive struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StreamID   string    `gorm:"type:varchar(64);uniqueIndex" json:"streamId"`
	EventType  string    `gorm:"type:varchar(32);index" json:"eventType"`
	Payload    JSONMap   `gorm:"type:jsonb" json:"payload"`
	ArchivedAt time.Time `gorm:"autoCreateTime" json:"archivedAt"`
}

func (EventArchive) TableName() string {
	return "appointment_event_archive"
}
