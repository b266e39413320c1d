package controllers

import (
	"net/http"

	"github.com/rmartell/inventra-backend/api/middleware"
	"github.com/rmartell/inventra-backend/api/responses"
	analyticssvc "github.com/rmartell/inventra-backend/internal/analytics"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/logger"
)

// AnalyticsOverview returns the dashboard aggregates. Admin only.
func AnalyticsOverview(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		overview, err := svc.Overview(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}
