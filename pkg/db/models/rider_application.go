package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// RiderApplication is a pending request from a user to become a delivery
// rider. At most one application exists per email.
type RiderApplication struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email      string            `gorm:"type:text;not null;uniqueIndex"`
	Details    json.RawMessage   `gorm:"column:details;type:jsonb"`
	Status     enums.RiderStatus `gorm:"column:status;not null;default:'pending'"`
	ApprovedAt *time.Time        `gorm:"column:approved_at"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the collection name the clients already depend on.
func (RiderApplication) TableName() string {
	return "riders"
}
