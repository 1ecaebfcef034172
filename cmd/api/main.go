package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/jcastellanos/parcelflow-backend/api/routes"
	"github.com/jcastellanos/parcelflow-backend/internal/parcels"
	"github.com/jcastellanos/parcelflow-backend/internal/payments"
	"github.com/jcastellanos/parcelflow-backend/internal/riders"
	"github.com/jcastellanos/parcelflow-backend/internal/trackings"
	"github.com/jcastellanos/parcelflow-backend/internal/users"
	"github.com/jcastellanos/parcelflow-backend/pkg/auth/session"
	"github.com/jcastellanos/parcelflow-backend/pkg/config"
	"github.com/jcastellanos/parcelflow-backend/pkg/db"
	"github.com/jcastellanos/parcelflow-backend/pkg/logger"
	"github.com/jcastellanos/parcelflow-backend/pkg/metrics"
	"github.com/jcastellanos/parcelflow-backend/pkg/migrate"
	"github.com/jcastellanos/parcelflow-backend/pkg/redis"
	"github.com/jcastellanos/parcelflow-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{
		Repo: users.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	parcelsService, err := parcels.NewService(parcels.ServiceParams{
		Repo: parcels.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create parcels service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		DB:   dbClient,
		Repo: payments.NewRepository(dbClient.DB()),
		RepoFactory: func(tx *gorm.DB) payments.TxRepository {
			return payments.NewRepository(tx)
		},
		Stripe: payments.NewStripeClient(stripeClient),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	trackingsService, err := trackings.NewService(trackings.ServiceParams{
		Repo: trackings.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create trackings service", err)
		os.Exit(1)
	}

	ridersService, err := riders.NewService(riders.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create riders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Sessions:  sessionManager,
			Metrics:   metrics.NewHTTPMetrics(),
			Users:     usersService,
			Parcels:   parcelsService,
			Payments:  paymentsService,
			Trackings: trackingsService,
			Riders:    ridersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
