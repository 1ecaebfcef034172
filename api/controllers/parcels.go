package controllers

import (
	"net/http"

	"github.com/jcastellanos/parcelflow-backend/api/responses"
	"github.com/jcastellanos/parcelflow-backend/api/validators"
	parcelsvc "github.com/jcastellanos/parcelflow-backend/internal/parcels"
	pkgerrors "github.com/jcastellanos/parcelflow-backend/pkg/errors"
	"github.com/jcastellanos/parcelflow-backend/pkg/logger"
)

// ParcelCreate registers a new shipment.
func ParcelCreate(svc parcelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parcels service unavailable"))
			return
		}

		var payload parcelsvc.CreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parcel, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, parcel)
	}
}

// ParcelList returns parcels newest first, optionally scoped by owner email.
func ParcelList(svc parcelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parcels service unavailable"))
			return
		}

		rows, err := svc.List(r.Context(), r.URL.Query().Get("email"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ParcelGet loads one parcel by id.
func ParcelGet(svc parcelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parcels service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "parcelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parcel, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, parcel)
	}
}

// ParcelDelete removes one parcel by id.
func ParcelDelete(svc parcelsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parcels service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(r, "parcelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
