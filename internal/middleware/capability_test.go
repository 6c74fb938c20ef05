package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"product-admin/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const capabilityTestSecret = "capability-secret"

func capabilityToken(t *testing.T, role string, secret string, expires time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": "6e8bc430-9c3a-11d9-9669-0800200c9a66",
		"role":    role,
		"exp":     time.Now().Add(expires).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func TestEditContentMiddleware(t *testing.T) {
	gate := EditContentMiddleware(capabilityTestSecret, zap.NewNop())

	var seenRole string
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRole, _ = GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "no header",
			authHeader:     "",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "not a bearer token",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not.a.jwt",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "wrong signing secret",
			authHeader:     "Bearer " + capabilityToken(t, domain.RoleEditor, "other-secret", time.Hour),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + capabilityToken(t, domain.RoleEditor, capabilityTestSecret, -time.Hour),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "viewer role",
			authHeader:     "Bearer " + capabilityToken(t, domain.RoleViewer, capabilityTestSecret, time.Hour),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "editor role",
			authHeader:     "Bearer " + capabilityToken(t, domain.RoleEditor, capabilityTestSecret, time.Hour),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "admin role",
			authHeader:     "Bearer " + capabilityToken(t, domain.RoleAdmin, capabilityTestSecret, time.Hour),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jeec/v1/products", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
			}

			// Every rejection carries the same body regardless of cause
			if tt.expectedStatus == http.StatusForbidden {
				var envelope ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
					t.Fatalf("Response is not an error envelope: %v", err)
				}
				if envelope.Error.Message != "Sorry, you are not allowed to access this endpoint." {
					t.Errorf("Unexpected message %q", envelope.Error.Message)
				}
			}
		})
	}

	if seenRole == "" {
		t.Error("Expected the passing requests to put the role in context")
	}
}
