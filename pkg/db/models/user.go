package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// User represents the canonical identity entity. Email is the idempotency
// key for creation.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email       string         `gorm:"type:text;not null;uniqueIndex"`
	UID         *string        `gorm:"column:uid;index"`
	DisplayName *string        `gorm:"column:display_name"`
	Role        enums.UserRole `gorm:"column:role;not null;default:'user'"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
