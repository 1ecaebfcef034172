package trackings

import (
	"context"

	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
)

// Repository exposes tracking log persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a trackings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a new tracking event. Events are never updated or deleted.
func (r *Repository) Append(ctx context.Context, event *models.TrackingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByTrackingID returns the log for a tracking number, oldest first.
func (r *Repository) ListByTrackingID(ctx context.Context, trackingID string) ([]models.TrackingEvent, error) {
	var rows []models.TrackingEvent
	err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
