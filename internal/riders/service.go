package riders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/internal/users"
	"github.com/jcastellanos/parcelflow-backend/pkg/db"
	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

// ApplyRequest contains the payload accepted by the rider application intake.
type ApplyRequest struct {
	Email   string          `json:"email" validate:"required,email"`
	Details json.RawMessage `json:"details,omitempty"`
}

// ApplyResult reports whether the intake inserted a new application.
type ApplyResult struct {
	Application *ApplicationDTO
	Created     bool
}

// ApproveRequest carries the optional promotion target. When the email is
// present the matching user is promoted to rider inside the approval
// transaction.
type ApproveRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// Service defines the behavior needed by the riders controller.
type Service interface {
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)
	Approve(ctx context.Context, id uuid.UUID, req ApproveRequest) (*ApplicationDTO, error)
	List(ctx context.Context, status string) ([]ApplicationDTO, error)
}

// ServiceParams packages the dependencies for the rider workflow.
type ServiceParams struct {
	DB  *db.Client
	Now func() time.Time
}

type service struct {
	db  *db.Client
	now func() time.Time
}

// NewService builds a rider workflow service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{db: params.DB, now: now}, nil
}

// Apply registers the application once per email. A repeat submission, in any
// status, acknowledges the existing row without writing.
func (s *service) Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	repo := NewRepository(s.db.DB())

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return &ApplyResult{Application: FromModel(existing), Created: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check rider application")
	}

	app := &models.RiderApplication{
		ID:      uuid.New(),
		Email:   email,
		Details: req.Details,
		Status:  enums.RiderStatusPending,
	}
	if err := repo.Create(ctx, app); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create rider application")
	}
	return &ApplyResult{Application: FromModel(app), Created: true}, nil
}

// Approve flips a pending application to approved. When a promotion email is
// supplied the role change rides the same transaction, so a failed promotion
// leaves the application pending.
func (s *service) Approve(ctx context.Context, id uuid.UUID, req ApproveRequest) (*ApplicationDTO, error) {
	approvedAt := s.now().UTC()

	var approved *models.RiderApplication
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		affected, err := repo.ApprovePending(ctx, id, approvedAt)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve application")
		}
		if affected == 0 {
			exists, err := repo.Exists(ctx, id)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check application")
			}
			if exists {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "application already approved")
			}
			return pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}

		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "email must not be blank")
			}
			userRepo := users.NewRepository(tx)
			promoted, err := userRepo.UpdateRoleByEmail(ctx, email, enums.UserRoleRider)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "promote user")
			}
			if promoted == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found for promotion")
			}
		}

		approved, err = repo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload application")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(approved), nil
}

func (s *service) List(ctx context.Context, status string) ([]ApplicationDTO, error) {
	var filter *enums.RiderStatus
	if trimmed := strings.TrimSpace(status); trimmed != "" {
		parsed, err := enums.ParseRiderStatus(trimmed)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
		filter = &parsed
	}

	repo := NewRepository(s.db.DB())
	rows, err := repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list applications")
	}
	return FromModels(rows), nil
}
