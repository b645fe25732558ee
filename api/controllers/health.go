package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/dmcneil/catalog-api/api/responses"
	"github.com/dmcneil/catalog-api/pkg/config"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"github.com/dmcneil/catalog-api/pkg/logger"
)

// Pinger is the health surface a dependency must expose to be part of the
// readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency and aggregates the failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var failures error
		status := make(map[string]string, len(deps))
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				status[name] = "down"
				failures = multierr.Append(failures, err)
				continue
			}
			status[name] = "up"
		}

		if failures != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "readiness check failed").
				WithDetails(status)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": status})
	}
}
