package controllers

import (
	"net/http"

	"github.com/jcastellanos/parcelflow-backend/api/responses"
	"github.com/jcastellanos/parcelflow-backend/api/validators"
	ridersvc "github.com/jcastellanos/parcelflow-backend/internal/riders"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
	"github.com/jcastellanos/parcelflow-backend/pkg/logger"
)

// RiderApply accepts a rider application; one per email.
func RiderApply(svc ridersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "riders service unavailable"))
			return
		}

		var payload ridersvc.ApplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Apply(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Created {
			responses.WriteSuccessStatus(w, http.StatusCreated, result.Application)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"application":     result.Application,
			"already_applied": true,
		})
	}
}

// RiderList returns applications, optionally filtered by status.
func RiderList(svc ridersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "riders service unavailable"))
			return
		}

		rows, err := svc.List(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// RiderApprove promotes a pending application, and optionally the matching
// user, in one transaction.
func RiderApprove(svc ridersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "riders service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := ridersvc.ApproveRequest{}
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		app, err := svc.Approve(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, app)
	}
}
