package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmatoso/checkpix-backend/api/routes"
	"github.com/dmatoso/checkpix-backend/internal/products"
	"github.com/dmatoso/checkpix-backend/internal/records"
	"github.com/dmatoso/checkpix-backend/internal/sms"
	"github.com/dmatoso/checkpix-backend/internal/verification"
	"github.com/dmatoso/checkpix-backend/pkg/auth/session"
	"github.com/dmatoso/checkpix-backend/pkg/config"
	"github.com/dmatoso/checkpix-backend/pkg/db"
	"github.com/dmatoso/checkpix-backend/pkg/logger"
	"github.com/dmatoso/checkpix-backend/pkg/metrics"
	"github.com/dmatoso/checkpix-backend/pkg/migrate"
	"github.com/dmatoso/checkpix-backend/pkg/qrcode"
	"github.com/dmatoso/checkpix-backend/pkg/redis"
	"github.com/dmatoso/checkpix-backend/pkg/storage/local"
	"github.com/dmatoso/checkpix-backend/pkg/twilio"
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

	if !cfg.Admin.Configured() {
		logg.Warn(context.Background(), "admin token not configured, admin surface is disabled")
	}

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.Features, logg)
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

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, login rate limiting disabled")
	}

	store, err := local.NewStore(cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare public storage", err)
		os.Exit(1)
	}

	recordService, err := records.NewService(records.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create record service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	verificationService, err := verification.NewService(
		records.NewRepository(dbClient.DB()),
		products.NewRepository(dbClient.DB()),
		qrcode.NewGenerator(store, cfg.Storage),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create verification service", err)
		os.Exit(1)
	}

	smsService, err := sms.NewService(sms.NewRepository(dbClient.DB()), twilio.NewClient(cfg.Twilio))
	if err != nil {
		logg.Error(context.Background(), "failed to create sms service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	gate := session.NewGate(cfg.Admin, cfg.App)

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			gate,
			store,
			httpMetrics,
			promRegistry,
			verificationService,
			recordService,
			productService,
			smsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
