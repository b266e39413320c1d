package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
)

// Repository runs the read-only aggregation queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to analytics queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountAssets returns the headline asset total.
func (r *Repository) CountAssets(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).Count(&count).Error
	return count, err
}

// CountProfiles returns the headline user total.
func (r *Repository) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error
	return count, err
}

// CountDepartments returns the headline department total.
func (r *Repository) CountDepartments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Count(&count).Error
	return count, err
}

// CountCategories returns the headline category total.
func (r *Repository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

// TotalAssetValue sums the cost column over all assets.
func (r *Repository) TotalAssetValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Select("SUM(cost)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// AssetCountsByCategory groups asset counts by category name.
func (r *Repository) AssetCountsByCategory(ctx context.Context) ([]NameCount, error) {
	var rows []NameCount
	err := r.db.WithContext(ctx).Table("assets").
		Select("categories.name AS name, COUNT(assets.id) AS count").
		Joins("LEFT JOIN categories ON categories.id = assets.category_id").
		Group("categories.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// AssetCountsByDepartment groups asset counts by department name.
func (r *Repository) AssetCountsByDepartment(ctx context.Context) ([]NameCount, error) {
	var rows []NameCount
	err := r.db.WithContext(ctx).Table("assets").
		Select("departments.name AS name, COUNT(assets.id) AS count").
		Joins("LEFT JOIN departments ON departments.id = assets.department_id").
		Group("departments.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// AssetValueByDepartment sums asset cost per department name.
func (r *Repository) AssetValueByDepartment(ctx context.Context) ([]NameValue, error) {
	var rows []NameValue
	err := r.db.WithContext(ctx).Table("assets").
		Select("departments.name AS name, SUM(assets.cost) AS value").
		Joins("LEFT JOIN departments ON departments.id = assets.department_id").
		Group("departments.name").
		Order("value DESC").
		Scan(&rows).Error
	return rows, err
}

// AssetCreationTimesSince returns the creation timestamps of assets created
// at or after the cutoff. Month bucketing happens in Go so the query stays
// portable across Postgres and the SQLite test driver.
func (r *Repository) AssetCreationTimesSince(ctx context.Context, cutoff time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("created_at >= ?", cutoff).
		Pluck("created_at", &times).Error
	return times, err
}
