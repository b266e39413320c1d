package warranty

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rmartell/inventra-backend/pkg/config"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
)

func testConfig() config.WarrantyConfig {
	return config.WarrantyConfig{
		BaseURL:  "http://warranty.test",
		Username: "svc-inventra",
		Password: "pw",
		Timeout:  5 * time.Second,
	}
}

func TestClientRegisterSuccess(t *testing.T) {
	var loginForm string
	var registerAuth string
	var registerPayload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/api/login":
			body, _ := io.ReadAll(req.Body)
			loginForm = string(body)
			if ct := req.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				t.Fatalf("unexpected login content type %q", ct)
			}
			return jsonResponse(http.StatusOK, `{"access_token":"tok-1"}`), nil
		case "/api/register-warranty":
			registerAuth = req.Header.Get("Authorization")
			body, _ := io.ReadAll(req.Body)
			if err := json.Unmarshal(body, &registerPayload); err != nil {
				t.Fatalf("unmarshal register payload: %v", err)
			}
			return jsonResponse(http.StatusOK, `{"status":"registered","provider_ref":"W-99"}`), nil
		default:
			t.Fatalf("unexpected path %s", req.URL.Path)
			return nil, nil
		}
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	result, err := client.Register(context.Background(), RegisterRequest{
		AssetID:      "a-1",
		AssetName:    "MacBook Pro",
		SerialNumber: "SN-a-1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if !strings.Contains(loginForm, "username=svc-inventra") || !strings.Contains(loginForm, "password=pw") {
		t.Fatalf("unexpected login form %q", loginForm)
	}
	if registerAuth != "Bearer tok-1" {
		t.Fatalf("unexpected auth header %q", registerAuth)
	}
	if registerPayload["asset_id"] != "a-1" || registerPayload["serial_number"] != "SN-a-1" {
		t.Fatalf("unexpected register payload %+v", registerPayload)
	}
	if result["provider_ref"] != "W-99" {
		t.Fatalf("provider payload not returned verbatim: %+v", result)
	}
}

func TestClientRegisterLoginFailureCarriesDetail(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"detail":"invalid service credentials"}`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Register(context.Background(), RegisterRequest{
		AssetID:      "a-1",
		AssetName:    "MacBook Pro",
		SerialNumber: "SN-a-1",
	})
	if err == nil {
		t.Fatal("expected login failure")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeExternal {
		t.Fatalf("expected external error code, got %s", typed.Code())
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["detail"] != "invalid service credentials" {
		t.Fatalf("expected provider detail, got %+v", typed.Details())
	}
}

func TestClientRegisterProviderFailure(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/api/login" {
			return jsonResponse(http.StatusOK, `{"access_token":"tok-1"}`), nil
		}
		return jsonResponse(http.StatusBadGateway, `{"detail":"registry unavailable"}`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Register(context.Background(), RegisterRequest{
		AssetID:      "a-1",
		AssetName:    "MacBook Pro",
		SerialNumber: "SN-a-1",
	})
	if err == nil {
		t.Fatal("expected register failure")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["detail"] != "registry unavailable" {
		t.Fatalf("expected provider detail, got %+v", typed.Details())
	}
}

func TestNewClientRequiresConfig(t *testing.T) {
	if _, err := NewClient(config.WarrantyConfig{Username: "u", Password: "p"}); err == nil {
		t.Fatal("expected error for missing base url")
	}
	if _, err := NewClient(config.WarrantyConfig{BaseURL: "http://x"}); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
