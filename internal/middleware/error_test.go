package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRespondForbidden(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondForbidden(rec)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Body is not an error envelope: %v", err)
	}
	if envelope.Error.Message != "Sorry, you are not allowed to access this endpoint." {
		t.Errorf("Unexpected message %q", envelope.Error.Message)
	}
	if envelope.Error.Code != http.StatusText(http.StatusForbidden) {
		t.Errorf("Unexpected code %q", envelope.Error.Code)
	}
	if _, err := time.Parse(time.RFC3339, envelope.Error.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", envelope.Error.Timestamp, err)
	}
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusNotFound, "Product not found.")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}

	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Body is not an error envelope: %v", err)
	}
	if envelope.Error.Message != "Product not found." {
		t.Errorf("Unexpected message %q", envelope.Error.Message)
	}
}

func TestErrorHandlingMiddlewareRecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 after a panic, got %d", rec.Code)
	}

	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Body is not an error envelope: %v", err)
	}
	if envelope.Error.Message != "internal server error" {
		t.Errorf("Unexpected message %q", envelope.Error.Message)
	}
}
