package assets

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmartell/inventra-backend/internal/tracking"
	"github.com/rmartell/inventra-backend/pkg/enums"
	"github.com/rmartell/inventra-backend/pkg/pagination"
)

// AssetDTO is the enriched read view of an asset. Category, department and
// creator names are joined at read time, never stored on the row.
type AssetDTO struct {
	ID              uuid.UUID         `json:"id"`
	AssetCode       string            `json:"asset_code"`
	Name            string            `json:"name"`
	CategoryID      uuid.UUID         `json:"category_id"`
	CategoryName    string            `json:"category_name"`
	DepartmentID    uuid.UUID         `json:"department_id"`
	DepartmentName  string            `json:"department_name"`
	PurchaseDate    time.Time         `json:"purchase_date"`
	Cost            decimal.Decimal   `json:"cost"`
	ImageURL        *string           `json:"image_url,omitempty"`
	Status          enums.AssetStatus `json:"status"`
	CurrentLocation *string           `json:"current_location,omitempty"`
	WarrantyStatus  *string           `json:"warranty_status,omitempty"`
	CreatedBy       uuid.UUID         `json:"created_by"`
	CreatedByName   string            `json:"created_by_name"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// CreateInput carries the caller-supplied fields for a new asset.
type CreateInput struct {
	Name            string
	CategoryID      uuid.UUID
	DepartmentID    uuid.UUID
	PurchaseDate    time.Time
	Cost            decimal.Decimal
	ImageURL        *string
	CurrentLocation *string
}

// TrackingUpdateInput is a partial update. Nil fields are left untouched.
type TrackingUpdateInput struct {
	Status         *string
	Location       *string
	WarrantyStatus *string
	Notes          *string
}

// ListQuery filters and pages the asset listing.
type ListQuery struct {
	NameContains string
	Pagination   pagination.Params
}

func dtoFromRow(r *AssetRow) AssetDTO {
	return AssetDTO{
		ID:              r.ID,
		AssetCode:       r.AssetCode,
		Name:            r.Name,
		CategoryID:      r.CategoryID,
		CategoryName:    r.CategoryName,
		DepartmentID:    r.DepartmentID,
		DepartmentName:  r.DepartmentName,
		PurchaseDate:    r.PurchaseDate,
		Cost:            r.Cost,
		ImageURL:        r.ImageURL,
		Status:          r.Status,
		CurrentLocation: r.CurrentLocation,
		WarrantyStatus:  r.WarrantyStatus,
		CreatedBy:       r.CreatedBy,
		CreatedByName:   creatorName(r),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func creatorName(r *AssetRow) string {
	if r.CreatorFullName != nil && strings.TrimSpace(*r.CreatorFullName) != "" {
		return strings.TrimSpace(*r.CreatorFullName)
	}
	if r.CreatorEmail != nil && *r.CreatorEmail != "" {
		return *r.CreatorEmail
	}
	return tracking.UnknownUser
}
