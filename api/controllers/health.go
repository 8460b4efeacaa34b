package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/promocheck/api/responses"
	"github.com/angelmondragon/promocheck/pkg/config"
	pkgerrors "github.com/angelmondragon/promocheck/pkg/errors"
	"github.com/angelmondragon/promocheck/pkg/logger"
)

const (
	envHeader    = "X-Promocheck-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is satisfied by the database and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency. A nil pinger means the
// dependency is not configured and is reported as skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		var errs error
		for _, dep := range []struct {
			name   string
			pinger Pinger
		}{
			{name: "database", pinger: dbP},
			{name: "redis", pinger: redisP},
		} {
			if dep.pinger == nil {
				checks[dep.name] = "skipped"
				continue
			}
			if err := dep.pinger.Ping(ctx); err != nil {
				checks[dep.name] = "down"
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", dep.name, err))
				continue
			}
			checks[dep.name] = "up"
		}

		if errs != nil {
			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"checks":        checks,
					"failure_count": len(multierr.Errors(errs)),
				})
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependencies not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
