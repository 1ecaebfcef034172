package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the immutable record of funds received against one parcel.
// Rows are only ever inserted, and only inside the ledger transaction that
// flips the parcel to paid.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ParcelID      uuid.UUID `gorm:"column:parcel_id;type:uuid;not null;index"`
	PayerEmail    string    `gorm:"column:payer_email;not null;index"`
	AmountCents   int64     `gorm:"column:amount_cents;not null"`
	Method        string    `gorm:"column:method;not null"`
	TransactionID string    `gorm:"column:transaction_id;not null"`
	PaidAt        time.Time `gorm:"column:paid_at;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
