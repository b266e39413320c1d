package refdata

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
)

func setupRefdataTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{`
CREATE TABLE IF NOT EXISTS departments (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  created_by TEXT NOT NULL,
  created_at DATETIME
);`, `
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
);`}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedDepartment(t *testing.T, db *gorm.DB, name string, createdAt time.Time) models.Department {
	t.Helper()
	dept := models.Department{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: uuid.New(),
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&dept).Error)
	return dept
}

func seedAsset(t *testing.T, db *gorm.DB, categoryID, departmentID uuid.UUID) models.Asset {
	t.Helper()
	asset := models.Asset{
		ID:           uuid.New(),
		AssetCode:    "AST-2025-" + uuid.NewString()[:8],
		Name:         "asset",
		CategoryID:   categoryID,
		DepartmentID: departmentID,
		PurchaseDate: time.Now().UTC(),
		Cost:         decimal.NewFromInt(100),
		CreatedBy:    uuid.New(),
	}
	require.NoError(t, db.Create(&asset).Error)
	return asset
}

func TestRepositoryDepartmentOrdering(t *testing.T) {
	db := setupRefdataTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	seedDepartment(t, db, "Operations", base)
	seedDepartment(t, db, "Engineering", base.Add(time.Hour))

	alphabetical, err := repo.ListDepartments(ctx, OrderNameAsc)
	require.NoError(t, err)
	require.Len(t, alphabetical, 2)
	assert.Equal(t, "Engineering", alphabetical[0].Name)

	newest, err := repo.ListDepartments(ctx, OrderNewestFirst)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", newest[0].Name)
}

func TestRepositoryCountAssetsForDepartment(t *testing.T) {
	db := setupRefdataTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	dept := seedDepartment(t, db, "IT", time.Now().UTC())
	other := seedDepartment(t, db, "HR", time.Now().UTC())
	catID := uuid.New()
	seedAsset(t, db, catID, dept.ID)
	seedAsset(t, db, catID, dept.ID)

	count, err := repo.CountAssetsForDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountAssetsForDepartment(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepositoryDeleteDepartment(t *testing.T) {
	db := setupRefdataTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	dept := seedDepartment(t, db, "Finance", time.Now().UTC())

	require.NoError(t, repo.DeleteDepartment(ctx, dept.ID))
	assert.ErrorIs(t, repo.DeleteDepartment(ctx, dept.ID), gorm.ErrRecordNotFound)
}

func TestRepositoryCategoryLifecycle(t *testing.T) {
	db := setupRefdataTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	cat := models.Category{ID: uuid.New(), Name: "Laptops", CreatedBy: uuid.New(), CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&cat).Error)

	rows, err := repo.ListCategories(ctx, OrderNameAsc)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	seedAsset(t, db, cat.ID, uuid.New())
	count, err := repo.CountAssetsForCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	total, err := repo.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
