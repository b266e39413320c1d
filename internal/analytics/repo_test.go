package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	"github.com/rmartell/inventra-backend/pkg/enums"
)

func setupAnalyticsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL DEFAULT '',
  full_name TEXT,
  role TEXT NOT NULL DEFAULT 'user',
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS departments (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME
);
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME
);
CREATE TABLE IF NOT EXISTS assets (
  id TEXT PRIMARY KEY,
  asset_code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL,
  department_id TEXT NOT NULL,
  purchase_date DATETIME NOT NULL,
  cost NUMERIC NOT NULL,
  image_url TEXT,
  status TEXT NOT NULL DEFAULT 'Available',
  current_location TEXT,
  warranty_status TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

type analyticsFixture struct {
	owner       models.Profile
	laptops     models.Category
	peripherals models.Category
	engineering models.Department
	finance     models.Department
}

func seedAnalyticsFixture(t *testing.T, db *gorm.DB) analyticsFixture {
	t.Helper()

	owner := models.Profile{ID: uuid.New(), Email: "ops@example.com", Role: enums.UserRoleAdmin}
	require.NoError(t, db.Create(&owner).Error)

	fx := analyticsFixture{
		owner:       owner,
		laptops:     models.Category{ID: uuid.New(), Name: "Laptops", CreatedBy: owner.ID},
		peripherals: models.Category{ID: uuid.New(), Name: "Peripherals", CreatedBy: owner.ID},
		engineering: models.Department{ID: uuid.New(), Name: "Engineering", CreatedBy: owner.ID},
		finance:     models.Department{ID: uuid.New(), Name: "Finance", CreatedBy: owner.ID},
	}
	require.NoError(t, db.Create(&fx.laptops).Error)
	require.NoError(t, db.Create(&fx.peripherals).Error)
	require.NoError(t, db.Create(&fx.engineering).Error)
	require.NoError(t, db.Create(&fx.finance).Error)
	return fx
}

func seedAnalyticsAsset(t *testing.T, db *gorm.DB, fx analyticsFixture, code string, category models.Category, department models.Department, cost int64, createdAt time.Time) {
	t.Helper()
	asset := models.Asset{
		ID:           uuid.New(),
		AssetCode:    code,
		Name:         "asset " + code,
		CategoryID:   category.ID,
		DepartmentID: department.ID,
		PurchaseDate: createdAt,
		Cost:         decimal.NewFromInt(cost),
		Status:       enums.AssetStatusAvailable,
		CreatedBy:    fx.owner.ID,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&asset).Error)
}

func TestRepositoryHeadlineCounts(t *testing.T) {
	db := setupAnalyticsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fx := seedAnalyticsFixture(t, db)
	now := time.Now().UTC()
	seedAnalyticsAsset(t, db, fx, "AST-2025-001", fx.laptops, fx.engineering, 1000, now)
	seedAnalyticsAsset(t, db, fx, "AST-2025-002", fx.laptops, fx.finance, 500, now)

	assets, err := repo.CountAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), assets)

	users, err := repo.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), users)

	departments, err := repo.CountDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), departments)

	categories, err := repo.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), categories)
}

func TestRepositoryTotalAssetValue(t *testing.T) {
	db := setupAnalyticsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	total, err := repo.TotalAssetValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	fx := seedAnalyticsFixture(t, db)
	now := time.Now().UTC()
	seedAnalyticsAsset(t, db, fx, "AST-2025-001", fx.laptops, fx.engineering, 1200, now)
	seedAnalyticsAsset(t, db, fx, "AST-2025-002", fx.peripherals, fx.finance, 300, now)

	total, err = repo.TotalAssetValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1500)))
}

func TestRepositoryGroupedCounts(t *testing.T) {
	db := setupAnalyticsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fx := seedAnalyticsFixture(t, db)
	now := time.Now().UTC()
	seedAnalyticsAsset(t, db, fx, "AST-2025-001", fx.laptops, fx.engineering, 1000, now)
	seedAnalyticsAsset(t, db, fx, "AST-2025-002", fx.laptops, fx.engineering, 2000, now)
	seedAnalyticsAsset(t, db, fx, "AST-2025-003", fx.peripherals, fx.finance, 150, now)

	byCategory, err := repo.AssetCountsByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, NameCount{Name: "Laptops", Count: 2}, byCategory[0])
	assert.Equal(t, NameCount{Name: "Peripherals", Count: 1}, byCategory[1])

	byDepartment, err := repo.AssetCountsByDepartment(ctx)
	require.NoError(t, err)
	require.Len(t, byDepartment, 2)
	assert.Equal(t, NameCount{Name: "Engineering", Count: 2}, byDepartment[0])

	valueByDepartment, err := repo.AssetValueByDepartment(ctx)
	require.NoError(t, err)
	require.Len(t, valueByDepartment, 2)
	assert.Equal(t, "Engineering", valueByDepartment[0].Name)
	assert.True(t, valueByDepartment[0].Value.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "Finance", valueByDepartment[1].Name)
	assert.True(t, valueByDepartment[1].Value.Equal(decimal.NewFromInt(150)))
}

func TestRepositoryAssetCreationTimesSince(t *testing.T) {
	db := setupAnalyticsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	fx := seedAnalyticsFixture(t, db)
	cutoff := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedAnalyticsAsset(t, db, fx, "AST-2025-001", fx.laptops, fx.engineering, 100, cutoff.Add(24*time.Hour))
	seedAnalyticsAsset(t, db, fx, "AST-2025-002", fx.laptops, fx.engineering, 100, cutoff.Add(-24*time.Hour))

	times, err := repo.AssetCreationTimesSince(ctx, cutoff)
	require.NoError(t, err)
	assert.Len(t, times, 1)
}
