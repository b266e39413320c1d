package controllers

import (
	"context"
	"net/http"

	"github.com/rmartell/inventra-backend/api/responses"
	"github.com/rmartell/inventra-backend/pkg/config"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Inventra-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores and reports per-dependency status.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Inventra-Env", cfg.App.Env)

		statuses := make(map[string]string, len(deps))
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "not configured"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				healthy = false
				statuses[name] = err.Error()
				logg.Warn(logg.WithField(r.Context(), "dependency", name), "health.dependency_down")
				continue
			}
			statuses[name] = "ok"
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeStorage, "dependency unavailable").WithDetails(statuses)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": statuses})
	}
}

// ReadinessDeps assembles the named dependency set consumed by HealthReady.
// Nil entries are reported as not configured rather than failing the probe.
func ReadinessDeps(dbP, redisP, gcsP pinger) map[string]pinger {
	return map[string]pinger{
		"postgres": dbP,
		"redis":    redisP,
		"gcs":      gcsP,
	}
}
