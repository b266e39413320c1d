package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmartell/inventra-backend/pkg/enums"
)

// WarrantyRegistered is the warranty_status value written after a successful
// provider registration. Once set the column never goes back to empty.
const WarrantyRegistered = "Warranty Registered"

// Asset represents a tracked inventory item.
type Asset struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssetCode       string            `gorm:"column:asset_code;not null;uniqueIndex"`
	Name            string            `gorm:"column:name;not null"`
	CategoryID      uuid.UUID         `gorm:"column:category_id;type:uuid;not null"`
	DepartmentID    uuid.UUID         `gorm:"column:department_id;type:uuid;not null"`
	PurchaseDate    time.Time         `gorm:"column:purchase_date;not null"`
	Cost            decimal.Decimal   `gorm:"column:cost;type:numeric(14,2);not null"`
	ImageURL        *string           `gorm:"column:image_url"`
	Status          enums.AssetStatus `gorm:"column:status;type:text;not null;default:Available"`
	CurrentLocation *string           `gorm:"column:current_location"`
	WarrantyStatus  *string           `gorm:"column:warranty_status"`
	CreatedBy       uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
