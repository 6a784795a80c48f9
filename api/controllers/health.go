package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/pkg/config"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

// Pinger is the health surface of the persistence backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CatalogProber reports whether the remote catalog answers its probe.
type CatalogProber interface {
	Health(ctx context.Context) bool
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shopfront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The persistence backend is required; the
// remote catalog is reported but not fatal since the built-in products
// cover for it.
func HealthReady(cfg *config.Config, logg *logger.Logger, persistence Pinger, catalogClient CatalogProber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Shopfront-Env", cfg.App.Env)

		checks := map[string]string{
			"persistence": "ok",
			"catalog":     "ok",
		}

		if persistence != nil {
			if err := persistence.Ping(ctx); err != nil {
				checks["persistence"] = "down"
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persistence backend unreachable").WithDetails(checks))
				return
			}
		}

		if catalogClient != nil && !catalogClient.Health(ctx) {
			checks["catalog"] = "degraded"
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
