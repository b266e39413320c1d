package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authsvc "github.com/rmartell/inventra-backend/internal/auth"
	"github.com/rmartell/inventra-backend/internal/users"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
)

type stubAuthService struct {
	registerIn  *authsvc.RegisterInput
	loginIn     *authsvc.LoginInput
	refreshed   bool
	loggedOut   bool
	result      *authsvc.AuthResult
	pair        *authsvc.TokenPair
	registerErr error
	loginErr    error
	refreshErr  error
	logoutErr   error
}

func (s *stubAuthService) Register(ctx context.Context, in authsvc.RegisterInput) (*authsvc.AuthResult, error) {
	s.registerIn = &in
	return s.result, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, in authsvc.LoginInput) (*authsvc.AuthResult, error) {
	s.loginIn = &in
	return s.result, s.loginErr
}

func (s *stubAuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*authsvc.TokenPair, error) {
	s.refreshed = true
	return s.pair, s.refreshErr
}

func (s *stubAuthService) Logout(ctx context.Context, accessToken string) error {
	s.loggedOut = true
	return s.logoutErr
}

func authResultFixture() *authsvc.AuthResult {
	return &authsvc.AuthResult{
		TokenPair: authsvc.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		User:      users.ProfileDTO{Email: "ana@example.com"},
	}
}

func TestAuthRegisterSuccess(t *testing.T) {
	svc := &stubAuthService{result: authResultFixture()}
	handler := AuthRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"ana@example.com","password":"password123"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.registerIn == nil || svc.registerIn.Email != "ana@example.com" {
		t.Fatalf("unexpected register input %#v", svc.registerIn)
	}

	var envelope struct {
		Data authsvc.AuthResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" {
		t.Fatalf("unexpected token %q", envelope.Data.AccessToken)
	}
}

func TestAuthRegisterRejectsShortPassword(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"ana@example.com","password":"short"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.registerIn != nil {
		t.Fatal("service should not be called for invalid payload")
	}
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{result: authResultFixture()}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"password123"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.loginIn == nil || svc.loginIn.Password != "password123" {
		t.Fatalf("unexpected login input %#v", svc.loginIn)
	}
}

func TestAuthLoginPropagatesUnauthorized(t *testing.T) {
	svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"wrong-password"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRefreshRequiresBearerToken(t *testing.T) {
	svc := &stubAuthService{pair: &authsvc.TokenPair{AccessToken: "next", RefreshToken: "next-refresh"}}
	handler := AuthRefresh(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"abc"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if svc.refreshed {
		t.Fatal("service should not be called without a bearer token")
	}
}

func TestAuthRefreshSuccess(t *testing.T) {
	svc := &stubAuthService{pair: &authsvc.TokenPair{AccessToken: "next", RefreshToken: "next-refresh"}}
	handler := AuthRefresh(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"abc"}`))
	req.Header.Set("Authorization", "Bearer expired-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !svc.refreshed {
		t.Fatal("expected refresh to be called")
	}
}

func TestAuthLogoutSuccess(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.loggedOut {
		t.Fatal("expected logout to be called")
	}
}
