package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rmartell/inventra-backend/api/routes"
	"github.com/rmartell/inventra-backend/internal/analytics"
	"github.com/rmartell/inventra-backend/internal/assets"
	"github.com/rmartell/inventra-backend/internal/auth"
	"github.com/rmartell/inventra-backend/internal/media"
	"github.com/rmartell/inventra-backend/internal/refdata"
	"github.com/rmartell/inventra-backend/internal/tracking"
	"github.com/rmartell/inventra-backend/internal/users"
	internalwarranty "github.com/rmartell/inventra-backend/internal/warranty"
	"github.com/rmartell/inventra-backend/pkg/auth/session"
	"github.com/rmartell/inventra-backend/pkg/config"
	"github.com/rmartell/inventra-backend/pkg/db"
	"github.com/rmartell/inventra-backend/pkg/logger"
	"github.com/rmartell/inventra-backend/pkg/migrate"
	"github.com/rmartell/inventra-backend/pkg/redis"
	"github.com/rmartell/inventra-backend/pkg/storage/gcs"
	"github.com/rmartell/inventra-backend/pkg/warranty"
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

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	warrantyClient, err := warranty.NewClient(cfg.Warranty)
	if err != nil {
		logg.Error(context.Background(), "failed to create warranty client", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	refRepo := refdata.NewRepository(gormDB)
	assetRepo := assets.NewRepository(gormDB)
	trackingRepo := tracking.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)

	authService, err := auth.NewService(userRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}
	refService, err := refdata.NewService(refRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create reference data service", err)
		os.Exit(1)
	}
	assetService, err := assets.NewService(assetRepo, refRepo, trackingRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create asset service", err)
		os.Exit(1)
	}
	trackingService, err := tracking.NewService(trackingRepo, userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create tracking service", err)
		os.Exit(1)
	}
	analyticsService, err := analytics.NewService(analyticsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}
	warrantyService, err := internalwarranty.NewService(warrantyClient, assetRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create warranty service", err)
		os.Exit(1)
	}
	mediaService, err := media.NewService(gcsClient, cfg.Media)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			GCS:              gcsClient,
			SessionManager:   sessionManager,
			Registry:         registry,
			AuthService:      authService,
			UserService:      userService,
			AssetService:     assetService,
			TrackingService:  trackingService,
			RefDataService:   refService,
			AnalyticsService: analyticsService,
			WarrantyService:  warrantyService,
			MediaService:     mediaService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
