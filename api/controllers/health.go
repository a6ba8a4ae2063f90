package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/smartsort/inventory-backend/api/responses"
	"github.com/smartsort/inventory-backend/pkg/config"
	"github.com/smartsort/inventory-backend/pkg/db"
	pkgerrors "github.com/smartsort/inventory-backend/pkg/errors"
	"github.com/smartsort/inventory-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartSort-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartSort-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		ready := true

		checks["database"] = pingStatus(ctx, dbP)
		if checks["database"] != "ok" {
			ready = false
		}
		if redisP != nil {
			checks["redis"] = pingStatus(ctx, redisP)
			if checks["redis"] != "ok" {
				ready = false
			}
		}

		if !ready {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

func pingStatus(ctx context.Context, p db.Pinger) string {
	if p == nil {
		return "missing"
	}
	if err := p.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
