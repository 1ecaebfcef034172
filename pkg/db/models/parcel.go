package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// Parcel is a shipment record owned by the submitting customer. The
// payment_status flag and the transaction_id/paid_at pair are written
// exclusively by the payment ledger.
type Parcel struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerEmail      string              `gorm:"column:owner_email;not null;index"`
	RecipientName   *string             `gorm:"column:recipient_name"`
	DeliveryAddress *string             `gorm:"column:delivery_address"`
	Weight          *string             `gorm:"column:weight"`
	PriceCents      int64               `gorm:"column:price_cents;not null;default:0"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;not null;default:'unpaid'"`
	TransactionID   *string             `gorm:"column:transaction_id"`
	PaidAt          *time.Time          `gorm:"column:paid_at"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
