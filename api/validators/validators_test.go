package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"ana@example.com","name":"Ana"}`))

	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Email != "ana@example.com" || payload.Name != "Ana" {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"ana@example.com","name":"Ana","extra":true}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email"}`))

	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field detail map, got %#v", typed.Details())
	}
	if details["email"] == "" || details["name"] == "" {
		t.Fatalf("expected email and name entries, got %#v", details)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))

	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestParseQueryIntDefaultsAndBounds(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=50", nil)
	got, err := ParseQueryInt(req, "limit", 25, 1, 100)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 50 {
		t.Fatalf("expected 50 got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	got, err = ParseQueryInt(req, "limit", 25, 1, 100)
	if err != nil {
		t.Fatalf("parse default: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected default 25 got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=5000", nil)
	if _, err := ParseQueryInt(req, "limit", 25, 1, 100); err == nil {
		t.Fatal("expected error for out-of-range value")
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	if _, err := ParseQueryInt(req, "limit", 25, 1, 100); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestParsePathUUID(t *testing.T) {
	id := uuid.New()
	got, err := ParsePathUUID(id.String(), "assetID")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("expected %s got %s", id, got)
	}

	if _, err := ParsePathUUID("nope", "assetID"); err == nil {
		t.Fatal("expected error for invalid uuid")
	}
}
