package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingEvent is an append-only status update keyed by tracking id. The
// parcel reference is optional and stored unset when the submitted id does
// not parse as a UUID.
type TrackingEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TrackingID string     `gorm:"column:tracking_id;not null;index"`
	ParcelID   *uuid.UUID `gorm:"column:parcel_id;type:uuid"`
	Status     string     `gorm:"column:status;not null"`
	Message    *string    `gorm:"column:message"`
	Author     *string    `gorm:"column:author"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the collection name the clients already depend on.
func (TrackingEvent) TableName() string {
	return "trackings"
}
