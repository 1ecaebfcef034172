package riders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// Repository exposes rider application persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a riders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new application.
func (r *Repository) Create(ctx context.Context, app *models.RiderApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// FindByEmail retrieves the application matching the provided email, any status.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.RiderApplication, error) {
	var app models.RiderApplication
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByID loads an application by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RiderApplication, error) {
	var app models.RiderApplication
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ApprovePending flips a pending application to approved and reports how many
// rows matched. Zero means the application is missing or already approved.
func (r *Repository) ApprovePending(ctx context.Context, id uuid.UUID, approvedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.RiderApplication{}).
		Where("id = ? AND status = ?", id, enums.RiderStatusPending).
		Updates(map[string]any{
			"status":      enums.RiderStatusApproved,
			"approved_at": approvedAt,
		})
	return res.RowsAffected, res.Error
}

// Exists reports whether an application row with the given id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var app models.RiderApplication
	err := r.db.WithContext(ctx).Select("id").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns applications newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status *enums.RiderStatus) ([]models.RiderApplication, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var rows []models.RiderApplication
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
