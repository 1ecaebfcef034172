package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// UserDTO is the transport shape for directory entries.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	UID         *string        `json:"uid,omitempty"`
	DisplayName *string        `json:"display_name,omitempty"`
	Role        enums.UserRole `json:"role"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// SearchResult is the fixed public projection returned by the directory search.
type SearchResult struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	UID       *string        `json:"uid,omitempty"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email       string
	UID         *string
	DisplayName *string
	Role        *enums.UserRole
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		UID:         u.UID,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := enums.UserRoleUser
	if c.Role != nil {
		role = *c.Role
	}

	return &models.User{
		ID:          uuid.New(),
		Email:       c.Email,
		UID:         c.UID,
		DisplayName: c.DisplayName,
		Role:        role,
	}
}
