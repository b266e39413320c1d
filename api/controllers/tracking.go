package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmartell/inventra-backend/api/middleware"
	"github.com/rmartell/inventra-backend/api/responses"
	"github.com/rmartell/inventra-backend/api/validators"
	assetsvc "github.com/rmartell/inventra-backend/internal/assets"
	trackingsvc "github.com/rmartell/inventra-backend/internal/tracking"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/logger"
	"github.com/rmartell/inventra-backend/pkg/pagination"
)

// AssetHistory lists the tracking entries for an asset, newest first.
// Visibility follows the asset itself: the owner or an admin.
func AssetHistory(assets assetsvc.Service, tracking trackingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if assets == nil || tracking == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tracking service unavailable"))
			return
		}

		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "assetID"), "assetID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// The ownership check rides on the asset read.
		if _, err := assets.Get(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := tracking.ListForAsset(r.Context(), id, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}
