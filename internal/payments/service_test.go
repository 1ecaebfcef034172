package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/pkg/db/models"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

type stubLedgerRepo struct {
	markAffected int64
	markErr      error
	exists       bool
	createErr    error
	created      []*models.Payment
	listRows     []models.Payment
	listEmail    string
}

func (s *stubLedgerRepo) MarkParcelPaid(_ context.Context, _ uuid.UUID, _ string, _ time.Time) (int64, error) {
	return s.markAffected, s.markErr
}

func (s *stubLedgerRepo) ParcelExists(_ context.Context, _ uuid.UUID) (bool, error) {
	return s.exists, nil
}

func (s *stubLedgerRepo) CreatePayment(_ context.Context, payment *models.Payment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, payment)
	return nil
}

func (s *stubLedgerRepo) ListByPayer(_ context.Context, email string) ([]models.Payment, error) {
	s.listEmail = email
	return s.listRows, nil
}

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	p.calls++
	return fn(nil)
}

type stubIntentClient struct {
	intent *stripe.PaymentIntent
	err    error
	params *stripe.PaymentIntentParams
}

func (s *stubIntentClient) CreateIntent(_ context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	return s.intent, nil
}

func newStubService(t *testing.T, repo *stubLedgerRepo, tx *passthroughTx, intents StripeIntentClient) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		DB:          tx,
		Repo:        repo,
		RepoFactory: func(_ *gorm.DB) TxRepository { return repo },
		Stripe:      intents,
		Now: func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	require.NoError(t, err)
	return svc
}

func TestRecordPaymentRejectsMalformedParcelID(t *testing.T) {
	repo := &stubLedgerRepo{}
	tx := &passthroughTx{}
	svc := newStubService(t, repo, tx, nil)

	_, err := svc.RecordPayment(context.Background(), RecordRequest{
		ParcelID: "not-a-uuid", PayerEmail: "payer@example.com", AmountCents: 100,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Zero(t, tx.calls, "validation failures must not open a transaction")
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	repo := &stubLedgerRepo{}
	tx := &passthroughTx{}
	svc := newStubService(t, repo, tx, nil)

	for _, amount := range []int64{0, -500} {
		_, err := svc.RecordPayment(context.Background(), RecordRequest{
			ParcelID: uuid.NewString(), PayerEmail: "payer@example.com", AmountCents: amount,
		})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
	assert.Zero(t, tx.calls)
}

func TestRecordPaymentDefaultsMethodAndTransactionID(t *testing.T) {
	repo := &stubLedgerRepo{markAffected: 1}
	tx := &passthroughTx{}
	svc := newStubService(t, repo, tx, nil)

	dto, err := svc.RecordPayment(context.Background(), RecordRequest{
		ParcelID: uuid.NewString(), PayerEmail: "Payer@Example.com", AmountCents: 750,
	})
	require.NoError(t, err)
	assert.Equal(t, "card", dto.Method)
	assert.NotEmpty(t, dto.TransactionID)
	assert.Equal(t, "payer@example.com", dto.PayerEmail)
	require.Len(t, repo.created, 1)
	assert.Equal(t, 1, tx.calls)
}

func TestRecordPaymentAlreadyPaid(t *testing.T) {
	repo := &stubLedgerRepo{markAffected: 0, exists: true}
	tx := &passthroughTx{}
	svc := newStubService(t, repo, tx, nil)

	_, err := svc.RecordPayment(context.Background(), RecordRequest{
		ParcelID: uuid.NewString(), PayerEmail: "payer@example.com", AmountCents: 750,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	assert.Empty(t, repo.created)
}

func TestRecordPaymentParcelMissing(t *testing.T) {
	repo := &stubLedgerRepo{markAffected: 0, exists: false}
	tx := &passthroughTx{}
	svc := newStubService(t, repo, tx, nil)

	_, err := svc.RecordPayment(context.Background(), RecordRequest{
		ParcelID: uuid.NewString(), PayerEmail: "payer@example.com", AmountCents: 750,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRecordPaymentLedgerInsertFault(t *testing.T) {
	repo := &stubLedgerRepo{markAffected: 1, createErr: errors.New("disk full")}
	tx := &passthroughTx{}
	svc := newStubService(t, repo, tx, nil)

	_, err := svc.RecordPayment(context.Background(), RecordRequest{
		ParcelID: uuid.NewString(), PayerEmail: "payer@example.com", AmountCents: 750,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
}

func TestListByEmailNormalizesInput(t *testing.T) {
	repo := &stubLedgerRepo{listRows: []models.Payment{{ID: uuid.New(), PayerEmail: "payer@example.com"}}}
	svc := newStubService(t, repo, &passthroughTx{}, nil)

	rows, err := svc.ListByEmail(context.Background(), " Payer@Example.com ")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "payer@example.com", repo.listEmail)
}

func TestCreatePaymentIntentReturnsClientSecret(t *testing.T) {
	intents := &stubIntentClient{intent: &stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}}
	svc := newStubService(t, &stubLedgerRepo{}, &passthroughTx{}, intents)

	res, err := svc.CreatePaymentIntent(context.Background(), IntentRequest{AmountCents: 2500})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", res.IntentID)
	assert.Equal(t, "pi_123_secret", res.ClientSecret)
	require.NotNil(t, intents.params)
	assert.Equal(t, int64(2500), *intents.params.Amount)
	assert.Equal(t, "usd", *intents.params.Currency)
}

func TestCreatePaymentIntentMapsProcessorFault(t *testing.T) {
	intents := &stubIntentClient{err: errors.New("stripe unavailable")}
	svc := newStubService(t, &stubLedgerRepo{}, &passthroughTx{}, intents)

	_, err := svc.CreatePaymentIntent(context.Background(), IntentRequest{AmountCents: 2500})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := newStubService(t, &stubLedgerRepo{}, &passthroughTx{}, &stubIntentClient{})

	_, err := svc.CreatePaymentIntent(context.Background(), IntentRequest{AmountCents: 0})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
