package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRole sets the user's role and reports how many rows matched.
func (r *Repository) UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("role", role)
	return res.RowsAffected, res.Error
}

// UpdateRoleByEmail promotes the user matching the email. Used by the rider
// approval transaction.
func (r *Repository) UpdateRoleByEmail(ctx context.Context, email string, role enums.UserRole) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		UpdateColumn("role", role)
	return res.RowsAffected, res.Error
}

// UpdateProfile applies the provided column updates to a user row.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// UpdateLastLogin refreshes the user's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// Search finds users whose email or uid contains the term, case-insensitive.
func (r *Repository) Search(ctx context.Context, term string, limit int) ([]models.User, error) {
	pattern := "%" + term + "%"
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) LIKE LOWER(?) OR LOWER(COALESCE(uid, '')) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
