package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jcastellanos/parcelflow-backend/internal/parcels"
	"github.com/jcastellanos/parcelflow-backend/internal/payments"
	pkgAuth "github.com/jcastellanos/parcelflow-backend/pkg/auth"
	"github.com/jcastellanos/parcelflow-backend/pkg/config"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
	"github.com/jcastellanos/parcelflow-backend/pkg/metrics"
)

type allowAllSessions struct{}

func (allowAllSessions) HasSession(_ context.Context, _ string) (bool, error) { return true, nil }

type fixedParcelService struct{}

func (fixedParcelService) Create(_ context.Context, _ parcels.CreateRequest) (*parcels.ParcelDTO, error) {
	return &parcels.ParcelDTO{ID: uuid.New()}, nil
}

func (fixedParcelService) GetByID(_ context.Context, _ uuid.UUID) (*parcels.ParcelDTO, error) {
	return &parcels.ParcelDTO{ID: uuid.New()}, nil
}

func (fixedParcelService) List(_ context.Context, _ string) ([]parcels.ParcelDTO, error) {
	return nil, nil
}

func (fixedParcelService) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fixedPaymentService struct{}

func (fixedPaymentService) RecordPayment(_ context.Context, _ payments.RecordRequest) (*payments.PaymentDTO, error) {
	return &payments.PaymentDTO{ID: uuid.New()}, nil
}

func (fixedPaymentService) ListByEmail(_ context.Context, _ string) ([]payments.PaymentDTO, error) {
	return nil, nil
}

func (fixedPaymentService) CreatePaymentIntent(_ context.Context, _ payments.IntentRequest) (*payments.IntentResponse, error) {
	return &payments.IntentResponse{IntentID: "pi_1", ClientSecret: "secret"}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

	return NewRouter(RouterParams{
		Config:   cfg,
		Sessions: allowAllSessions{},
		Metrics:  metrics.NewHTTPMetrics(),
		Parcels:  fixedParcelService{},
		Payments: fixedPaymentService{},
	})
}

func TestHealthLiveIsOpen(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestParcelListRequiresAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/parcels", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPaymentListRequiresAuth(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestParcelListAcceptsBearerToken(t *testing.T) {
	router := testRouter(t)

	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "sender@example.com",
		Role:   enums.UserRoleUser,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/parcels", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestParcelCreateIsOpen(t *testing.T) {
	router := testRouter(t)

	body := `{"owner_email":"sender@example.com","price_cents":2500}`
	req := httptest.NewRequest(http.MethodPost, "/parcels", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestPaymentRecordIsOpen(t *testing.T) {
	router := testRouter(t)

	body := `{"parcel_id":"` + uuid.NewString() + `","payer_email":"payer@example.com","amount_cents":100}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
