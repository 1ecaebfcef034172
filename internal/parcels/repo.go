package parcels

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
)

// Repository exposes parcel persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a parcels repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new parcel and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateParcelDTO) (*models.Parcel, error) {
	parcel := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(parcel).Error; err != nil {
		return nil, err
	}
	return parcel, nil
}

// FindByID loads a parcel by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := r.db.WithContext(ctx).First(&parcel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &parcel, nil
}

// List returns parcels newest first, optionally scoped to an owner email.
func (r *Repository) List(ctx context.Context, ownerEmail string) ([]models.Parcel, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if ownerEmail != "" {
		q = q.Where("owner_email = ?", ownerEmail)
	}
	var rows []models.Parcel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the parcel and reports how many rows matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Parcel{})
	return res.RowsAffected, res.Error
}
