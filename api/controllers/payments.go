package controllers

import (
	"net/http"

	"github.com/jcastellanos/parcelflow-backend/api/responses"
	"github.com/jcastellanos/parcelflow-backend/api/validators"
	paymentsvc "github.com/jcastellanos/parcelflow-backend/internal/payments"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
	"github.com/jcastellanos/parcelflow-backend/pkg/logger"
)

// PaymentRecord settles a parcel: the status flip and the ledger insert
// commit or roll back together.
func PaymentRecord(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload paymentsvc.RecordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.RecordPayment(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// PaymentList returns ledger rows newest first, optionally scoped by payer.
func PaymentList(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		rows, err := svc.ListByEmail(r.Context(), r.URL.Query().Get("email"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// PaymentIntentCreate asks the processor for a client secret.
func PaymentIntentCreate(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload paymentsvc.IntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		intent, err := svc.CreatePaymentIntent(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, intent)
	}
}
