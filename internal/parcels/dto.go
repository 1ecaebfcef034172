package parcels

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
)

// ParcelDTO is the transport shape for parcel reads.
type ParcelDTO struct {
	ID              uuid.UUID           `json:"id"`
	OwnerEmail      string              `json:"owner_email"`
	RecipientName   *string             `json:"recipient_name,omitempty"`
	DeliveryAddress *string             `json:"delivery_address,omitempty"`
	Weight          *string             `json:"weight,omitempty"`
	PriceCents      int64               `json:"price_cents"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	TransactionID   *string             `json:"transaction_id,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// CreateParcelDTO holds the data required by the repo to persist a new parcel.
type CreateParcelDTO struct {
	OwnerEmail      string
	RecipientName   *string
	DeliveryAddress *string
	Weight          *string
	PriceCents      int64
}

func FromModel(p *models.Parcel) *ParcelDTO {
	if p == nil {
		return nil
	}

	return &ParcelDTO{
		ID:              p.ID,
		OwnerEmail:      p.OwnerEmail,
		RecipientName:   p.RecipientName,
		DeliveryAddress: p.DeliveryAddress,
		Weight:          p.Weight,
		PriceCents:      p.PriceCents,
		PaymentStatus:   p.PaymentStatus,
		TransactionID:   p.TransactionID,
		PaidAt:          p.PaidAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromModels(rows []models.Parcel) []ParcelDTO {
	out := make([]ParcelDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (c CreateParcelDTO) ToModel() *models.Parcel {
	return &models.Parcel{
		ID:              uuid.New(),
		OwnerEmail:      c.OwnerEmail,
		RecipientName:   c.RecipientName,
		DeliveryAddress: c.DeliveryAddress,
		Weight:          c.Weight,
		PriceCents:      c.PriceCents,
		PaymentStatus:   enums.PaymentStatusUnpaid,
	}
}
