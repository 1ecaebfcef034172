package riders

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// ApplicationDTO is the transport shape for rider applications.
type ApplicationDTO struct {
	ID         uuid.UUID         `json:"id"`
	Email      string            `json:"email"`
	Details    json.RawMessage   `json:"details,omitempty"`
	Status     enums.RiderStatus `json:"status"`
	ApprovedAt *time.Time        `json:"approved_at,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func FromModel(a *models.RiderApplication) *ApplicationDTO {
	if a == nil {
		return nil
	}

	return &ApplicationDTO{
		ID:         a.ID,
		Email:      a.Email,
		Details:    a.Details,
		Status:     a.Status,
		ApprovedAt: a.ApprovedAt,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func FromModels(rows []models.RiderApplication) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
