package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rmartell/inventra-backend/api/middleware"
	"github.com/rmartell/inventra-backend/api/responses"
	"github.com/rmartell/inventra-backend/api/validators"
	assetsvc "github.com/rmartell/inventra-backend/internal/assets"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/logger"
	"github.com/rmartell/inventra-backend/pkg/pagination"
)

const purchaseDateLayout = "2006-01-02"

type createAssetRequest struct {
	Name            string          `json:"name" validate:"required"`
	CategoryID      string          `json:"category_id" validate:"required"`
	DepartmentID    string          `json:"department_id" validate:"required"`
	PurchaseDate    string          `json:"purchase_date" validate:"required"`
	Cost            decimal.Decimal `json:"cost"`
	ImageURL        *string         `json:"image_url,omitempty"`
	CurrentLocation *string         `json:"current_location,omitempty"`
}

func (req createAssetRequest) toCreateInput() (assetsvc.CreateInput, error) {
	categoryID, err := validators.ParsePathUUID(req.CategoryID, "category_id")
	if err != nil {
		return assetsvc.CreateInput{}, err
	}
	departmentID, err := validators.ParsePathUUID(req.DepartmentID, "department_id")
	if err != nil {
		return assetsvc.CreateInput{}, err
	}
	purchaseDate, err := time.Parse(purchaseDateLayout, strings.TrimSpace(req.PurchaseDate))
	if err != nil {
		return assetsvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purchase_date")
	}
	return assetsvc.CreateInput{
		Name:            req.Name,
		CategoryID:      categoryID,
		DepartmentID:    departmentID,
		PurchaseDate:    purchaseDate,
		Cost:            req.Cost,
		ImageURL:        req.ImageURL,
		CurrentLocation: req.CurrentLocation,
	}, nil
}

type trackingUpdateRequest struct {
	Status         *string `json:"status,omitempty"`
	Location       *string `json:"location,omitempty"`
	WarrantyStatus *string `json:"warranty_status,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// AssetCreate registers a new asset for the authenticated user.
func AssetCreate(svc assetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
			return
		}

		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createAssetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		asset, err := svc.Create(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, asset)
	}
}

// AssetList pages assets, scoped to the caller unless they are an admin.
func AssetList(svc assetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
			return
		}

		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := assetsvc.ListQuery{
			NameContains: strings.TrimSpace(r.URL.Query().Get("name")),
			Pagination:   pagination.Params{Limit: limit, Offset: offset},
		}

		assets, err := svc.List(r.Context(), actor, query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, assets)
	}
}

// AssetGet returns one asset by id, visible to its owner or an admin.
func AssetGet(svc assetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
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

		asset, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, asset)
	}
}

// AssetGetByCode resolves an asset by its human-readable code.
func AssetGetByCode(svc assetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
			return
		}

		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		asset, err := svc.GetByCode(r.Context(), actor, chi.URLParam(r, "assetCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, asset)
	}
}

// AssetUpdateTracking applies a partial tracking update and records history.
func AssetUpdateTracking(svc assetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
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

		var payload trackingUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		asset, err := svc.UpdateTracking(r.Context(), actor, id, assetsvc.TrackingUpdateInput{
			Status:         payload.Status,
			Location:       payload.Location,
			WarrantyStatus: payload.WarrantyStatus,
			Notes:          payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, asset)
	}
}

// AssetDelete removes an asset. Admin only.
func AssetDelete(svc assetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
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

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
