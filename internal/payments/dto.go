package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
)

// PaymentDTO is the transport shape for ledger reads.
type PaymentDTO struct {
	ID            uuid.UUID `json:"id"`
	ParcelID      uuid.UUID `json:"parcel_id"`
	PayerEmail    string    `json:"payer_email"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromModel(p *models.Payment) *PaymentDTO {
	if p == nil {
		return nil
	}

	return &PaymentDTO{
		ID:            p.ID,
		ParcelID:      p.ParcelID,
		PayerEmail:    p.PayerEmail,
		AmountCents:   p.AmountCents,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

func FromModels(rows []models.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
