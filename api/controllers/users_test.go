package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/api/middleware"
	usersvc "github.com/rmartell/inventra-backend/internal/users"
	"github.com/rmartell/inventra-backend/pkg/enums"
	"github.com/rmartell/inventra-backend/pkg/types"
)

type stubUserService struct {
	getID    uuid.UUID
	roleIn   enums.UserRole
	targetID uuid.UUID
	profiles []usersvc.ProfileDTO
	profile  *usersvc.ProfileDTO
	err      error
}

func (s *stubUserService) List(ctx context.Context, actor types.Actor) ([]usersvc.ProfileDTO, error) {
	return s.profiles, s.err
}

func (s *stubUserService) GetByID(ctx context.Context, id uuid.UUID) (*usersvc.ProfileDTO, error) {
	s.getID = id
	return s.profile, s.err
}

func (s *stubUserService) UpdateRole(ctx context.Context, actor types.Actor, targetID uuid.UUID, role enums.UserRole) (*usersvc.ProfileDTO, error) {
	s.targetID = targetID
	s.roleIn = role
	return s.profile, s.err
}

func TestUserMeReturnsCallerProfile(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{profile: &usersvc.ProfileDTO{ID: userID, Email: "ana@example.com"}}
	handler := UserMe(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), userID.String(), string(enums.UserRoleUser)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.getID != userID {
		t.Fatalf("expected lookup for %s got %s", userID, svc.getID)
	}
}

func TestUserListSuccess(t *testing.T) {
	svc := &stubUserService{profiles: []usersvc.ProfileDTO{{ID: uuid.New()}}}
	handler := UserList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req = authenticatedRequest(req, enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestUserUpdateRoleParsesRole(t *testing.T) {
	svc := &stubUserService{profile: &usersvc.ProfileDTO{ID: uuid.New()}}
	handler := UserUpdateRole(svc, nil)

	targetID := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/users/"+targetID.String()+"/role", strings.NewReader(`{"role":"admin"}`))
	req = authenticatedRequest(req, enums.UserRoleAdmin)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("userID", targetID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.targetID != targetID {
		t.Fatalf("expected target %s got %s", targetID, svc.targetID)
	}
	if svc.roleIn != enums.UserRoleAdmin {
		t.Fatalf("expected admin role got %s", svc.roleIn)
	}
}

func TestUserUpdateRoleRejectsUnknownRole(t *testing.T) {
	svc := &stubUserService{}
	handler := UserUpdateRole(svc, nil)

	targetID := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/users/"+targetID.String()+"/role", strings.NewReader(`{"role":"superuser"}`))
	req = authenticatedRequest(req, enums.UserRoleAdmin)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("userID", targetID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.roleIn != "" {
		t.Fatal("service should not be called for invalid role")
	}
}
