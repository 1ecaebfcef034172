package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcastellanos/parcelflow-backend/api/controllers"
	"github.com/jcastellanos/parcelflow-backend/api/middleware"
	"github.com/jcastellanos/parcelflow-backend/internal/parcels"
	"github.com/jcastellanos/parcelflow-backend/internal/payments"
	"github.com/jcastellanos/parcelflow-backend/internal/riders"
	"github.com/jcastellanos/parcelflow-backend/internal/trackings"
	"github.com/jcastellanos/parcelflow-backend/internal/users"
	"github.com/jcastellanos/parcelflow-backend/pkg/auth/session"
	"github.com/jcastellanos/parcelflow-backend/pkg/config"
	"github.com/jcastellanos/parcelflow-backend/pkg/logger"
	"github.com/jcastellanos/parcelflow-backend/pkg/metrics"
	"github.com/jcastellanos/parcelflow-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs. Services are
// interfaces so tests can swap in stubs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  *metrics.HTTPMetrics

	Users     users.Service
	Parcels   parcels.Service
	Payments  payments.Service
	Trackings trackings.Service
	Riders    riders.Service
}

// NewRouter wires the public paths. Only the two sensitive reads sit behind
// the auth gate.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.Metrics != nil {
		r.Use(p.Metrics.Middleware())
		r.Get("/metrics", p.Metrics.Handler().ServeHTTP)
	}

	authGate := middleware.Auth(cfg.JWT, p.Sessions, logg)

	var idemStore redis.IdempotencyStore
	var cachePinger controllers.Pinger
	if p.Redis != nil {
		idemStore = p.Redis
		cachePinger = p.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, cachePinger, logg))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", controllers.UserUpsert(p.Users, logg))
		r.Get("/search", controllers.UserSearch(p.Users, logg))
		r.Patch("/{userId}", controllers.UserUpdateProfile(p.Users, logg))
		r.Patch("/{userId}/role", controllers.UserUpdateRole(p.Users, logg))
	})

	r.Route("/parcels", func(r chi.Router) {
		r.With(authGate).Get("/", controllers.ParcelList(p.Parcels, logg))
		r.Post("/", controllers.ParcelCreate(p.Parcels, logg))
		r.Get("/{parcelId}", controllers.ParcelGet(p.Parcels, logg))
		r.Delete("/{parcelId}", controllers.ParcelDelete(p.Parcels, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, logg))
		r.Post("/create-payment-intent", controllers.PaymentIntentCreate(p.Payments, logg))
		r.Post("/payments", controllers.PaymentRecord(p.Payments, logg))
	})
	r.With(authGate).Get("/payments", controllers.PaymentList(p.Payments, logg))

	r.Route("/trackings", func(r chi.Router) {
		r.Post("/", controllers.TrackingAppend(p.Trackings, logg))
		r.Get("/{trackingId}", controllers.TrackingHistory(p.Trackings, logg))
	})

	r.Route("/riders", func(r chi.Router) {
		r.Post("/", controllers.RiderApply(p.Riders, logg))
		r.Get("/", controllers.RiderList(p.Riders, logg))
		r.Patch("/approve/{applicationId}", controllers.RiderApprove(p.Riders, logg))
	})

	return r
}
