package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

const searchLimit = 10

// UpsertRequest contains the payload accepted by the directory upsert.
type UpsertRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	UID         *string `json:"uid,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

// UpsertResult reports whether the upsert inserted a new row.
type UpsertResult struct {
	User    *UserDTO
	Created bool
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	UID         *string `json:"uid,omitempty"`
	TouchLogin  bool    `json:"touch_login,omitempty"`
}

// Service defines the behavior needed by the users controller.
type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*UpsertResult, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*UserDTO, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	Search(ctx context.Context, term string) ([]SearchResult, error)
}

type repository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (int64, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	Search(ctx context.Context, term string, limit int) ([]models.User, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo repository
	Now  func() time.Time
}

// NewService constructs a directory service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

// Upsert registers the email once; repeat calls acknowledge the existing row
// without writing.
func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*UpsertResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return &UpsertResult{User: FromModel(existing), Created: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Email:       email,
		UID:         req.UID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return &UpsertResult{User: FromModel(user), Created: true}, nil
}

func (s *service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*UserDTO, error) {
	parsed, err := enums.ParseUserRole(role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	affected, err := s.repo.UpdateRole(ctx, id, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update role")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	updates := map[string]any{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.UID != nil {
		updates["uid"] = *req.UID
	}
	if req.TouchLogin {
		updates["last_login_at"] = s.now().UTC()
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no profile fields supplied")
	}

	affected, err := s.repo.UpdateProfile(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
	}
	return FromModel(user), nil
}

func (s *service) Search(ctx context.Context, term string) ([]SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}

	rows, err := s.repo.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search users")
	}

	results := make([]SearchResult, 0, len(rows))
	for _, u := range rows {
		results = append(results, SearchResult{
			ID:        u.ID,
			Email:     u.Email,
			UID:       u.UID,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return results, nil
}
