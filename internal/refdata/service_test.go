package refdata

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rmartell/inventra-backend/pkg/db/models"
	"github.com/rmartell/inventra-backend/pkg/enums"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/types"
)

type stubRefRepo struct {
	departments    []models.Department
	categories     []models.Category
	deptAssetCount int64
	catAssetCount  int64
	createdDept    *models.Department
	createdCat     *models.Category
	deletedDept    uuid.UUID
	deletedCat     uuid.UUID
	deleteDeptErr  error
	createErr      error
}

func (s *stubRefRepo) CreateDepartment(ctx context.Context, dept *models.Department) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.createdDept = dept
	return nil
}

func (s *stubRefRepo) ListDepartments(ctx context.Context, order ListOrder) ([]models.Department, error) {
	return s.departments, nil
}

func (s *stubRefRepo) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if s.deleteDeptErr != nil {
		return s.deleteDeptErr
	}
	s.deletedDept = id
	return nil
}

func (s *stubRefRepo) CountAssetsForDepartment(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deptAssetCount, nil
}

func (s *stubRefRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.createdCat = cat
	return nil
}

func (s *stubRefRepo) ListCategories(ctx context.Context, order ListOrder) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubRefRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.deletedCat = id
	return nil
}

func (s *stubRefRepo) CountAssetsForCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.catAssetCount, nil
}

func admin() types.Actor {
	return types.Actor{ID: uuid.New(), Role: enums.UserRoleAdmin}
}

func member() types.Actor {
	return types.Actor{ID: uuid.New(), Role: enums.UserRoleUser}
}

func TestCreateDepartmentRequiresAdmin(t *testing.T) {
	svc, _ := NewService(&stubRefRepo{})

	_, err := svc.CreateDepartment(context.Background(), member(), CreateInput{Name: "IT"})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateDepartmentValidatesName(t *testing.T) {
	svc, _ := NewService(&stubRefRepo{})

	_, err := svc.CreateDepartment(context.Background(), admin(), CreateInput{Name: "   "})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateDepartmentTrimsAndStampsCreator(t *testing.T) {
	repo := &stubRefRepo{}
	svc, _ := NewService(repo)
	actor := admin()

	dto, err := svc.CreateDepartment(context.Background(), actor, CreateInput{Name: "  IT  "})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	if dto.Name != "IT" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if repo.createdDept.CreatedBy != actor.ID {
		t.Fatalf("expected creator stamped")
	}
}

func TestDeleteDepartmentBlockedWhileReferenced(t *testing.T) {
	repo := &stubRefRepo{deptAssetCount: 3}
	svc, _ := NewService(repo)

	err := svc.DeleteDepartment(context.Background(), admin(), uuid.New())
	assertCode(t, err, pkgerrors.CodeReferential)

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]int64)
	if !ok || details["asset_count"] != 3 {
		t.Fatalf("expected asset_count detail, got %+v", typed.Details())
	}
	if repo.deletedDept != uuid.Nil {
		t.Fatal("delete must not run while assets reference the department")
	}
}

func TestDeleteDepartmentNotFound(t *testing.T) {
	repo := &stubRefRepo{deleteDeptErr: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo)

	err := svc.DeleteDepartment(context.Background(), admin(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteCategoryUnreferencedSucceeds(t *testing.T) {
	repo := &stubRefRepo{}
	svc, _ := NewService(repo)
	id := uuid.New()

	if err := svc.DeleteCategory(context.Background(), admin(), id); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if repo.deletedCat != id {
		t.Fatal("expected delete to reach the repository")
	}
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code %s, got nil", want)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s", want, typed.Code())
	}
}
