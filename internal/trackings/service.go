package trackings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

// AppendRequest contains the payload accepted by the tracking log.
type AppendRequest struct {
	TrackingID string  `json:"tracking_id" validate:"required"`
	ParcelID   *string `json:"parcel_id,omitempty"`
	Status     string  `json:"status" validate:"required"`
	Message    *string `json:"message,omitempty"`
	Author     *string `json:"author,omitempty"`
}

// Service defines the behavior needed by the trackings controller.
type Service interface {
	Append(ctx context.Context, req AppendRequest) (*EventDTO, error)
	ListByTrackingID(ctx context.Context, trackingID string) ([]EventDTO, error)
}

type repository interface {
	Append(ctx context.Context, event *models.TrackingEvent) error
	ListByTrackingID(ctx context.Context, trackingID string) ([]models.TrackingEvent, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a trackings service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a tracking log service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("trackings repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// Append records a status update. The parcel reference is attached only when
// the submitted id parses as a UUID; anything else is stored unset rather
// than rejected.
func (s *service) Append(ctx context.Context, req AppendRequest) (*EventDTO, error) {
	trackingID := strings.TrimSpace(req.TrackingID)
	if trackingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking_id is required")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}

	var parcelRef *uuid.UUID
	if req.ParcelID != nil {
		if parsed, err := uuid.Parse(strings.TrimSpace(*req.ParcelID)); err == nil {
			parcelRef = &parsed
		}
	}

	event := &models.TrackingEvent{
		ID:         uuid.New(),
		TrackingID: trackingID,
		ParcelID:   parcelRef,
		Status:     status,
		Message:    req.Message,
		Author:     req.Author,
	}
	if err := s.repo.Append(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append tracking event")
	}
	return FromModel(event), nil
}

func (s *service) ListByTrackingID(ctx context.Context, trackingID string) ([]EventDTO, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking_id is required")
	}

	rows, err := s.repo.ListByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tracking events")
	}
	return FromModels(rows), nil
}
