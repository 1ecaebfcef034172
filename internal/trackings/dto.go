package trackings

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
)

// EventDTO is the transport shape for tracking log entries.
type EventDTO struct {
	ID         uuid.UUID  `json:"id"`
	TrackingID string     `json:"tracking_id"`
	ParcelID   *uuid.UUID `json:"parcel_id,omitempty"`
	Status     string     `json:"status"`
	Message    *string    `json:"message,omitempty"`
	Author     *string    `json:"author,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func FromModel(e *models.TrackingEvent) *EventDTO {
	if e == nil {
		return nil
	}

	return &EventDTO{
		ID:         e.ID,
		TrackingID: e.TrackingID,
		ParcelID:   e.ParcelID,
		Status:     e.Status,
		Message:    e.Message,
		Author:     e.Author,
		CreatedAt:  e.CreatedAt,
	}
}

func FromModels(rows []models.TrackingEvent) []EventDTO {
	out := make([]EventDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
