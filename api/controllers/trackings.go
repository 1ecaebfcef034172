package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jcastellanos/parcelflow-backend/api/responses"
	"github.com/jcastellanos/parcelflow-backend/api/validators"
	trackingsvc "github.com/jcastellanos/parcelflow-backend/internal/trackings"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
	"github.com/jcastellanos/parcelflow-backend/pkg/logger"
)

// TrackingAppend records one status update on the append-only log.
func TrackingAppend(svc trackingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "trackings service unavailable"))
			return
		}

		var payload trackingsvc.AppendRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.Status = validators.SanitizeString(payload.Status, 64)

		event, err := svc.Append(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, event)
	}
}

// TrackingHistory returns the full log for one tracking number.
func TrackingHistory(svc trackingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "trackings service unavailable"))
			return
		}

		trackingID := strings.TrimSpace(chi.URLParam(r, "trackingId"))
		events, err := svc.ListByTrackingID(r.Context(), trackingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, events)
	}
}
