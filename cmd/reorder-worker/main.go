package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartsort/inventory-backend/internal/cron"
	"github.com/smartsort/inventory-backend/internal/inventory"
	"github.com/smartsort/inventory-backend/internal/reorder"
	"github.com/smartsort/inventory-backend/internal/suppliers"
	"github.com/smartsort/inventory-backend/pkg/config"
	"github.com/smartsort/inventory-backend/pkg/db"
	"github.com/smartsort/inventory-backend/pkg/logger"
	"github.com/smartsort/inventory-backend/pkg/mailer"
	"github.com/smartsort/inventory-backend/pkg/metrics"
	"github.com/smartsort/inventory-backend/pkg/migrate"
	"github.com/smartsort/inventory-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "reorder-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "reorder-worker"

	logg = logger.New(logger.Options{
		ServiceName: "reorder-worker",
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

	mailClient, err := mailer.NewClient(cfg.Sendgrid)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail client", err)
		os.Exit(1)
	}

	inventoryRepo := inventory.NewRepository(dbClient.DB())
	inventoryService, err := inventory.NewService(inventory.ServiceParams{
		Logger: logg,
		Tx:     dbClient,
		Repo:   inventoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	supplierService, err := suppliers.NewService(suppliers.ServiceParams{
		Logger:    logg,
		Repo:      suppliers.NewRepository(dbClient.DB()),
		Inventory: inventoryService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}

	reorderService, err := reorder.NewService(reorder.ServiceParams{
		Logger:    logg,
		Config:    cfg.Reorder,
		Inventory: inventoryRepo,
		Suppliers: supplierService,
		Mailer:    mailClient,
		Repo:      reorder.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reorder service", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("reorder-worker"), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create worker lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(reorder.NewJob(reorderService))
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Reorder.ScanInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler", err)
		os.Exit(1)
	}

	go serveMetrics(logg, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"interval":    cfg.Reorder.ScanInterval.String(),
	})
	logg.Info(ctx, "starting reorder worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "reorder worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "reorder worker shutting down gracefully")
}

func serveMetrics(logg *logger.Logger, cfg *config.Config) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.App.Port
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(context.Background(), "metrics server stopped", err)
	}
}
