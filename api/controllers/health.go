package controllers

import (
	"net/http"

	"github.com/dmarroquin/gearbox-backend/api/responses"
	"github.com/dmarroquin/gearbox-backend/pkg/config"
	"github.com/dmarroquin/gearbox-backend/pkg/db"
	pkgerrors "github.com/dmarroquin/gearbox-backend/pkg/errors"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
	"github.com/dmarroquin/gearbox-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Gearbox-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every wired dependency answers a
// ping. Redis is optional; a nil pinger is skipped rather than failed.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Gearbox-Env", cfg.App.Env)

		checks := map[string]string{}

		if dbP == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}
		if err := dbP.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping failed"))
			return
		}
		checks["database"] = "ok"

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping failed"))
				return
			}
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
