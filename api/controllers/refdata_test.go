package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	refsvc "github.com/rmartell/inventra-backend/internal/refdata"
	"github.com/rmartell/inventra-backend/pkg/enums"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/types"
)

type stubRefService struct {
	listOrder   refsvc.ListOrder
	createIn    *refsvc.CreateInput
	deletedID   uuid.UUID
	departments []refsvc.DepartmentDTO
	categories  []refsvc.CategoryDTO
	department  *refsvc.DepartmentDTO
	category    *refsvc.CategoryDTO
	err         error
}

func (s *stubRefService) ListDepartments(ctx context.Context, order refsvc.ListOrder) ([]refsvc.DepartmentDTO, error) {
	s.listOrder = order
	return s.departments, s.err
}

func (s *stubRefService) CreateDepartment(ctx context.Context, actor types.Actor, input refsvc.CreateInput) (*refsvc.DepartmentDTO, error) {
	s.createIn = &input
	return s.department, s.err
}

func (s *stubRefService) DeleteDepartment(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

func (s *stubRefService) ListCategories(ctx context.Context, order refsvc.ListOrder) ([]refsvc.CategoryDTO, error) {
	s.listOrder = order
	return s.categories, s.err
}

func (s *stubRefService) CreateCategory(ctx context.Context, actor types.Actor, input refsvc.CreateInput) (*refsvc.CategoryDTO, error) {
	s.createIn = &input
	return s.category, s.err
}

func (s *stubRefService) DeleteCategory(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

func TestDepartmentListDefaultsToNameOrder(t *testing.T) {
	svc := &stubRefService{departments: []refsvc.DepartmentDTO{{ID: uuid.New(), Name: "Engineering"}}}
	handler := DepartmentList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.listOrder != refsvc.OrderNameAsc {
		t.Fatalf("expected name order, got %v", svc.listOrder)
	}

	var envelope struct {
		Data []refsvc.DepartmentDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Engineering" {
		t.Fatalf("unexpected payload %#v", envelope.Data)
	}
}

func TestCategoryListHonorsNewestOrder(t *testing.T) {
	svc := &stubRefService{}
	handler := CategoryList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories?order=newest", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.listOrder != refsvc.OrderNewestFirst {
		t.Fatalf("expected newest order, got %v", svc.listOrder)
	}
}

func TestDepartmentCreateSuccess(t *testing.T) {
	svc := &stubRefService{department: &refsvc.DepartmentDTO{ID: uuid.New(), Name: "Finance"}}
	handler := DepartmentCreate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/departments", strings.NewReader(`{"name":"Finance"}`))
	req = authenticatedRequest(req, enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.createIn == nil || svc.createIn.Name != "Finance" {
		t.Fatalf("unexpected input %#v", svc.createIn)
	}
}

func TestDepartmentCreateRequiresName(t *testing.T) {
	svc := &stubRefService{}
	handler := DepartmentCreate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/departments", strings.NewReader(`{}`))
	req = authenticatedRequest(req, enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.createIn != nil {
		t.Fatal("service should not be called for invalid payload")
	}
}

func TestCategoryDeletePropagatesConflict(t *testing.T) {
	svc := &stubRefService{err: pkgerrors.New(pkgerrors.CodeReferential, "category still in use")}
	handler := CategoryDelete(svc, nil)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/categories/"+id.String(), nil)
	req = authenticatedRequest(req, enums.UserRoleAdmin)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("categoryID", id.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	if svc.deletedID != id {
		t.Fatalf("expected delete for %s got %s", id, svc.deletedID)
	}
}
