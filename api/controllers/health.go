package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/jordanmartell/ideahub-backend/api/responses"
	"github.com/jordanmartell/ideahub-backend/pkg/config"
	"github.com/jordanmartell/ideahub-backend/pkg/db"
	pkgerrors "github.com/jordanmartell/ideahub-backend/pkg/errors"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/jordanmartell/ideahub-backend/pkg/redis"
)

const readinessProbeTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-IdeaHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the database and redis before reporting ready. A nil
// probe counts as skipped rather than failed so partial deployments still
// report on what they run.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-IdeaHub-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessProbeTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		probe := func(name string, ping func(context.Context) error) {
			if ping == nil {
				checks[name] = "skipped"
				return
			}
			if err := ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "probe", name), "readiness probe failed", err)
				}
				return
			}
			checks[name] = "up"
		}

		var dbPing, redisPing func(context.Context) error
		if dbP != nil {
			dbPing = dbP.Ping
		}
		if redisP != nil {
			redisPing = redisP.Ping
		}
		probe("database", dbPing)
		probe("redis", redisPing)

		if !healthy {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies not ready").WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
