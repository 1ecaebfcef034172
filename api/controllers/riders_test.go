package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	ridersvc "github.com/jcastellanos/parcelflow-backend/internal/riders"
	"github.com/jcastellanos/parcelflow-backend/pkg/enums"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
)

type stubRiderService struct {
	applyResult *ridersvc.ApplyResult
	approved    *ridersvc.ApplicationDTO
	list        []ridersvc.ApplicationDTO
	err         error
}

func (s stubRiderService) Apply(ctx context.Context, req ridersvc.ApplyRequest) (*ridersvc.ApplyResult, error) {
	return s.applyResult, s.err
}

func (s stubRiderService) Approve(ctx context.Context, id uuid.UUID, req ridersvc.ApproveRequest) (*ridersvc.ApplicationDTO, error) {
	return s.approved, s.err
}

func (s stubRiderService) List(ctx context.Context, status string) ([]ridersvc.ApplicationDTO, error) {
	return s.list, s.err
}

func TestRiderApplyFirstSubmissionReturns201(t *testing.T) {
	result := &ridersvc.ApplyResult{
		Application: &ridersvc.ApplicationDTO{ID: uuid.New(), Status: enums.RiderStatusPending},
		Created:     true,
	}
	handler := RiderApply(stubRiderService{applyResult: result}, nil)

	body := `{"email":"rider@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/riders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestRiderApplyRepeatSubmissionReturns200(t *testing.T) {
	result := &ridersvc.ApplyResult{
		Application: &ridersvc.ApplicationDTO{ID: uuid.New(), Status: enums.RiderStatusPending},
		Created:     false,
	}
	handler := RiderApply(stubRiderService{applyResult: result}, nil)

	body := `{"email":"rider@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/riders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "already_applied") {
		t.Fatalf("expected already_applied marker in %s", resp.Body.String())
	}
}

func TestRiderApproveMalformedID(t *testing.T) {
	handler := RiderApprove(stubRiderService{}, nil)
	req := requestWithParam(http.MethodPatch, "/riders/approve/abc", "applicationId", "abc", "")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRiderApproveRepeatMapsTo422(t *testing.T) {
	handler := RiderApprove(stubRiderService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "application already approved")}, nil)
	id := uuid.NewString()
	req := requestWithParam(http.MethodPatch, "/riders/approve/"+id, "applicationId", id, "")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestRiderListInvalidStatus(t *testing.T) {
	handler := RiderList(stubRiderService{err: pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")}, nil)
	req := httptest.NewRequest(http.MethodGet, "/riders?status=bogus", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
