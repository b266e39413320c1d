package refdata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db"
	"github.com/rmartell/inventra-backend/pkg/db/models"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/types"
)

type refRepository interface {
	CreateDepartment(ctx context.Context, dept *models.Department) error
	ListDepartments(ctx context.Context, order ListOrder) ([]models.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	CountAssetsForDepartment(ctx context.Context, id uuid.UUID) (int64, error)
	CreateCategory(ctx context.Context, cat *models.Category) error
	ListCategories(ctx context.Context, order ListOrder) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountAssetsForCategory(ctx context.Context, id uuid.UUID) (int64, error)
}

// Service exposes department and category operations.
type Service interface {
	ListDepartments(ctx context.Context, order ListOrder) ([]DepartmentDTO, error)
	CreateDepartment(ctx context.Context, actor types.Actor, input CreateInput) (*DepartmentDTO, error)
	DeleteDepartment(ctx context.Context, actor types.Actor, id uuid.UUID) error
	ListCategories(ctx context.Context, order ListOrder) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, actor types.Actor, input CreateInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, actor types.Actor, id uuid.UUID) error
}

type service struct {
	repo refRepository
}

// NewService builds a reference data service with the provided repository.
func NewService(repo refRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("refdata repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListDepartments(ctx context.Context, order ListOrder) ([]DepartmentDTO, error) {
	rows, err := s.repo.ListDepartments(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list departments")
	}
	dtos := make([]DepartmentDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *departmentFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) CreateDepartment(ctx context.Context, actor types.Actor, input CreateInput) (*DepartmentDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "department name is required")
	}

	dept := &models.Department{
		Name:        name,
		Description: input.Description,
		CreatedBy:   actor.ID,
	}
	if err := s.repo.CreateDepartment(ctx, dept); err != nil {
		if db.IsUniqueViolation(err, "idx_departments_name") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "department name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create department")
	}
	return departmentFromModel(dept), nil
}

func (s *service) DeleteDepartment(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	count, err := s.repo.CountAssetsForDepartment(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "count department assets")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeReferential, "department has registered assets").
			WithDetails(map[string]int64{"asset_count": count})
	}

	if err := s.repo.DeleteDepartment(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "department not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete department")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context, order ListOrder) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *categoryFromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) CreateCategory(ctx context.Context, actor types.Actor, input CreateInput) (*CategoryDTO, error) {
	if !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	cat := &models.Category{
		Name:        name,
		Description: input.Description,
		CreatedBy:   actor.ID,
	}
	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		if db.IsUniqueViolation(err, "idx_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create category")
	}
	return categoryFromModel(cat), nil
}

func (s *service) DeleteCategory(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	count, err := s.repo.CountAssetsForCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "count category assets")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeReferential, "category has registered assets").
			WithDetails(map[string]int64{"asset_count": count})
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete category")
	}
	return nil
}
