package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/smartsort/inventory-backend/api/routes"
	"github.com/smartsort/inventory-backend/internal/inventory"
	"github.com/smartsort/inventory-backend/internal/reorder"
	"github.com/smartsort/inventory-backend/internal/suppliers"
	"github.com/smartsort/inventory-backend/pkg/config"
	"github.com/smartsort/inventory-backend/pkg/db"
	"github.com/smartsort/inventory-backend/pkg/logger"
	"github.com/smartsort/inventory-backend/pkg/mailer"
	"github.com/smartsort/inventory-backend/pkg/migrate"
	"github.com/smartsort/inventory-backend/pkg/redis"
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, inventoryService, supplierService, reorderService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
