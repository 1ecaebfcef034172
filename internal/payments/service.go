package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

const defaultCurrency = "usd"

// RecordRequest contains the payload accepted by the ledger write.
type RecordRequest struct {
	ParcelID      string `json:"parcel_id" validate:"required"`
	PayerEmail    string `json:"payer_email" validate:"required,email"`
	AmountCents   int64  `json:"amount_cents" validate:"required,gt=0"`
	Method        string `json:"method,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// IntentRequest contains the payload for creating a processor payment intent.
type IntentRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency    string `json:"currency,omitempty"`
}

// IntentResponse carries the client secret back to the caller.
type IntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
}

// Service defines the behavior needed by the payments controller.
type Service interface {
	RecordPayment(ctx context.Context, req RecordRequest) (*PaymentDTO, error)
	ListByEmail(ctx context.Context, payerEmail string) ([]PaymentDTO, error)
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*IntentResponse, error)
}

// TxRepository is the storage surface the service needs. A fresh one is
// built from the ambient transaction when recording a payment.
type TxRepository interface {
	MarkParcelPaid(ctx context.Context, parcelID uuid.UUID, transactionID string, paidAt time.Time) (int64, error)
	ParcelExists(ctx context.Context, parcelID uuid.UUID) (bool, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	ListByPayer(ctx context.Context, payerEmail string) ([]models.Payment, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db          txRunner
	repo        TxRepository
	repoFactory func(tx *gorm.DB) TxRepository
	stripe      StripeIntentClient
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build a payments service.
type ServiceParams struct {
	DB          txRunner
	Repo        TxRepository
	RepoFactory func(tx *gorm.DB) TxRepository
	Stripe      StripeIntentClient
	Now         func() time.Time
}

// NewService constructs a ledger service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("payments repository is required")
	}
	if params.RepoFactory == nil {
		return nil, fmt.Errorf("payments repository factory is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:          params.DB,
		repo:        params.Repo,
		repoFactory: params.RepoFactory,
		stripe:      params.Stripe,
		now:         now,
	}, nil
}

// RecordPayment flips the parcel to paid and appends the ledger row in one
// transaction. A parcel that is already paid rejects the resubmission without
// touching either table.
func (s *service) RecordPayment(ctx context.Context, req RecordRequest) (*PaymentDTO, error) {
	parcelID, err := uuid.Parse(strings.TrimSpace(req.ParcelID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "parcel_id must be a valid UUID")
	}
	if req.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount_cents must be greater than zero")
	}
	email := strings.ToLower(strings.TrimSpace(req.PayerEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payer_email is required")
	}

	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = "card"
	}
	transactionID := strings.TrimSpace(req.TransactionID)
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	paidAt := s.now().UTC()
	payment := &models.Payment{
		ID:            uuid.New(),
		ParcelID:      parcelID,
		PayerEmail:    email,
		AmountCents:   req.AmountCents,
		Method:        method,
		TransactionID: transactionID,
		PaidAt:        paidAt,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		affected, err := repo.MarkParcelPaid(ctx, parcelID, transactionID, paidAt)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark parcel paid")
		}
		if affected == 0 {
			exists, err := repo.ParcelExists(ctx, parcelID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check parcel")
			}
			if exists {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "parcel already paid")
			}
			return pkgerrors.New(pkgerrors.CodeNotFound, "parcel not found")
		}

		if err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(payment), nil
}

func (s *service) ListByEmail(ctx context.Context, payerEmail string) ([]PaymentDTO, error) {
	rows, err := s.repo.ListByPayer(ctx, strings.ToLower(strings.TrimSpace(payerEmail)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list payments")
	}
	return FromModels(rows), nil
}

// CreatePaymentIntent asks the processor for a client secret. Processor
// faults surface as dependency errors, never as partial ledger state.
func (s *service) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*IntentResponse, error) {
	if req.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount_cents must be greater than zero")
	}
	if s.stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment processor not configured")
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}

	intent, err := s.stripe.CreateIntent(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent")
	}
	return &IntentResponse{IntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
