package assets

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	"github.com/rmartell/inventra-backend/pkg/enums"
)

// assetCodePrefix starts every generated display code.
const assetCodePrefix = "AST"

// enrichedSelect joins the human-readable names onto each asset row.
const enrichedSelect = `assets.id, assets.asset_code, assets.name,
assets.category_id, categories.name AS category_name,
assets.department_id, departments.name AS department_name,
assets.purchase_date, assets.cost, assets.image_url, assets.status,
assets.current_location, assets.warranty_status, assets.created_by,
profiles.full_name AS creator_full_name, profiles.email AS creator_email,
assets.created_at, assets.updated_at`

// AssetRow is the enriched read projection returned by list and point
// lookups. Reference rows may have been deleted out from under an asset in
// older data, so the joined names are left-joined and may be empty.
type AssetRow struct {
	ID              uuid.UUID
	AssetCode       string
	Name            string
	CategoryID      uuid.UUID
	CategoryName    string
	DepartmentID    uuid.UUID
	DepartmentName  string
	PurchaseDate    time.Time
	Cost            decimal.Decimal
	ImageURL        *string
	Status          enums.AssetStatus
	CurrentLocation *string
	WarrantyStatus  *string
	CreatedBy       uuid.UUID
	CreatorFullName *string
	CreatorEmail    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListFilter narrows the asset listing.
type ListFilter struct {
	OwnerID      *uuid.UUID
	NameContains string
	Limit        int
	Offset       int
}

// Repository handles asset persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to asset operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new asset row.
func (r *Repository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// FindByID returns the raw asset row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindByIDWithTx re-reads the asset inside the caller's transaction so the
// delta is computed against the state this writer actually replaces.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Asset, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var asset models.Asset
	if err := tx.Where("id = ?", id).Take(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateWithTx persists tracked-field changes inside the caller's transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, asset *models.Asset) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Model(&models.Asset{}).
		Where("id = ?", asset.ID).
		Updates(map[string]any{
			"status":           asset.Status,
			"current_location": asset.CurrentLocation,
			"warranty_status":  asset.WarrantyStatus,
			"updated_at":       time.Now().UTC(),
		}).Error
}

// SetWarrantyStatus writes the warranty column only.
func (r *Repository) SetWarrantyStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"warranty_status": status,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindRowByID returns the enriched read view for one asset.
func (r *Repository) FindRowByID(ctx context.Context, id uuid.UUID) (*AssetRow, error) {
	var row AssetRow
	err := r.enriched(ctx).Where("assets.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindRowByCode looks an asset up by its display code.
func (r *Repository) FindRowByCode(ctx context.Context, code string) (*AssetRow, error) {
	var row AssetRow
	err := r.enriched(ctx).Where("assets.asset_code = ?", code).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns enriched rows, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]AssetRow, error) {
	q := r.enriched(ctx).Order("assets.created_at DESC")
	if filter.OwnerID != nil {
		q = q.Where("assets.created_by = ?", *filter.OwnerID)
	}
	if needle := strings.TrimSpace(filter.NameContains); needle != "" {
		q = q.Where("LOWER(assets.name) LIKE ?", "%"+strings.ToLower(needle)+"%")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	var rows []AssetRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes the asset. History entries cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Asset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the total number of assets.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).Count(&count).Error
	return count, err
}

// MaxSequenceForYear returns the highest code sequence already issued for
// the year, zero when none exist. Codes longer than three digits sort wrong
// lexically, so ordering ranks by length first.
func (r *Repository) MaxSequenceForYear(ctx context.Context, year int) (int, error) {
	prefix := assetCodePrefix + "-" + strconv.Itoa(year) + "-"
	var code string
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Select("asset_code").
		Where("asset_code LIKE ?", prefix+"%").
		Order("LENGTH(asset_code) DESC, asset_code DESC").
		Limit(1).
		Scan(&code).Error
	if err != nil {
		return 0, err
	}
	if code == "" {
		return 0, nil
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *Repository) enriched(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("assets").
		Select(enrichedSelect).
		Joins("LEFT JOIN categories ON categories.id = assets.category_id").
		Joins("LEFT JOIN departments ON departments.id = assets.department_id").
		Joins("LEFT JOIN profiles ON profiles.id = assets.created_by")
}
