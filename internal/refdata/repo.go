package refdata

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
)

// ListOrder selects the sort applied to reference listings.
type ListOrder int

const (
	// OrderNameAsc sorts alphabetically, used by form pickers.
	OrderNameAsc ListOrder = iota
	// OrderNewestFirst sorts by creation time, used by admin views.
	OrderNewestFirst
)

func (o ListOrder) clause() string {
	if o == OrderNewestFirst {
		return "created_at DESC"
	}
	return "name ASC"
}

// Repository handles department and category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to reference data operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDepartment persists a new department row.
func (r *Repository) CreateDepartment(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

// ListDepartments returns all departments in the requested order.
func (r *Repository) ListDepartments(ctx context.Context, order ListOrder) ([]models.Department, error) {
	var rows []models.Department
	if err := r.db.WithContext(ctx).Order(order.clause()).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindDepartmentByID loads a department by its UUID.
func (r *Repository) FindDepartmentByID(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// DeleteDepartment removes the department row.
func (r *Repository) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAssetsForDepartment reports how many assets reference the department.
func (r *Repository) CountAssetsForDepartment(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("department_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDepartments returns the number of departments.
func (r *Repository) CountDepartments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Department{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateCategory persists a new category row.
func (r *Repository) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

// ListCategories returns all categories in the requested order.
func (r *Repository) ListCategories(ctx context.Context, order ListOrder) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order(order.clause()).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindCategoryByID loads a category by its UUID.
func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	if err := r.db.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes the category row.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAssetsForCategory reports how many assets reference the category.
func (r *Repository) CountAssetsForCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCategories returns the number of categories.
func (r *Repository) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
