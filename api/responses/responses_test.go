package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
)

func TestWriteSuccessWrapsPayload(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteSuccess(resp, map[string]string{"status": "ok"})

	if resp.Code != 200 {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["status"] != "ok" {
		t.Fatalf("unexpected payload: %#v", envelope.Data)
	}
}

func TestWriteErrorMapsTypedCodes(t *testing.T) {
	resp := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "name is required").
		WithDetails(map[string]string{"name": "required"})
	WriteError(context.Background(), nil, resp, err)

	if resp.Code != 400 {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "name is required" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
	if envelope.Error.Details["name"] != "required" {
		t.Fatalf("expected details to pass through, got %#v", envelope.Error.Details)
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, errors.New("sql: connection refused"))

	if resp.Code != 500 {
		t.Fatalf("expected 500 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if envelope.Error.Message == "sql: connection refused" {
		t.Fatal("internal detail leaked into the response body")
	}
}

func TestWriteErrorNilErrorStillResponds(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, nil)
	if resp.Code != 500 {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
