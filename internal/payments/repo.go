package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// Repository exposes ledger persistence operations. The parcel flip and the
// payment insert are expected to run on the same transaction handle.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// MarkParcelPaid flips an unpaid parcel to paid and reports how many rows
// matched. Zero means the parcel is missing or already paid; the caller
// disambiguates inside the same transaction.
func (r *Repository) MarkParcelPaid(ctx context.Context, parcelID uuid.UUID, transactionID string, paidAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Parcel{}).
		Where("id = ? AND payment_status <> ?", parcelID, enums.PaymentStatusPaid).
		Updates(map[string]any{
			"payment_status": enums.PaymentStatusPaid,
			"transaction_id": transactionID,
			"paid_at":        paidAt,
		})
	return res.RowsAffected, res.Error
}

// ParcelExists reports whether a parcel row with the given id is present.
func (r *Repository) ParcelExists(ctx context.Context, parcelID uuid.UUID) (bool, error) {
	var parcel models.Parcel
	err := r.db.WithContext(ctx).Select("id").First(&parcel, "id = ?", parcelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreatePayment inserts an immutable ledger row.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// ListByPayer returns ledger rows newest first, optionally scoped to a payer.
func (r *Repository) ListByPayer(ctx context.Context, payerEmail string) ([]models.Payment, error) {
	q := r.db.WithContext(ctx).Order("paid_at DESC")
	if payerEmail != "" {
		q = q.Where("payer_email = ?", payerEmail)
	}
	var rows []models.Payment
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
