package parcels

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

// CreateRequest contains the payload accepted by parcel creation.
type CreateRequest struct {
	OwnerEmail      string  `json:"owner_email" validate:"required,email"`
	RecipientName   *string `json:"recipient_name,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
	Weight          *string `json:"weight,omitempty"`
	PriceCents      int64   `json:"price_cents" validate:"gte=0"`
}

// Service defines the behavior needed by the parcels controller.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ParcelDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ParcelDTO, error)
	List(ctx context.Context, ownerEmail string) ([]ParcelDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, dto CreateParcelDTO) (*models.Parcel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Parcel, error)
	List(ctx context.Context, ownerEmail string) ([]models.Parcel, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a parcels service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a parcel service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("parcels repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ParcelDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.OwnerEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner_email is required")
	}
	if req.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_cents must not be negative")
	}

	parcel, err := s.repo.Create(ctx, CreateParcelDTO{
		OwnerEmail:      email,
		RecipientName:   req.RecipientName,
		DeliveryAddress: req.DeliveryAddress,
		Weight:          req.Weight,
		PriceCents:      req.PriceCents,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create parcel")
	}
	return FromModel(parcel), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ParcelDTO, error) {
	parcel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "parcel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load parcel")
	}
	return FromModel(parcel), nil
}

func (s *service) List(ctx context.Context, ownerEmail string) ([]ParcelDTO, error) {
	rows, err := s.repo.List(ctx, strings.ToLower(strings.TrimSpace(ownerEmail)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list parcels")
	}
	return FromModels(rows), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete parcel")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "parcel not found")
	}
	return nil
}
