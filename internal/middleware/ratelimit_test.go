package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newRateLimitedHandler(t *testing.T, limit int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	config := RateLimitConfig{
		RequestsPerWindow: limit,
		Window:            time.Second,
		KeyPrefix:         "rate_limit_test",
	}

	handler := RateLimitMiddleware(redisClient, config, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	return handler, mr
}

func TestRateLimitBlocksExcessRequests(t *testing.T) {
	const limit = 5
	handler, _ := newRateLimitedHandler(t, limit)

	for i := 0; i < limit; i++ {
		req := httptest.NewRequest(http.MethodGet, "/jeec/v1/products", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/jeec/v1/products", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 past the limit, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected a Retry-After header")
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("Expected zero remaining, got %q", got)
	}
}

func TestRateLimitIsPerClient(t *testing.T) {
	handler, _ := newRateLimitedHandler(t, 1)

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
		req := httptest.NewRequest(http.MethodGet, "/jeec/v1/products", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Client %s: expected its own allowance, got %d", addr, rec.Code)
		}
	}
}

func TestRateLimitWindowResets(t *testing.T) {
	handler, mr := newRateLimitedHandler(t, 1)

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/jeec/v1/products", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("First request: expected 200, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("Second request: expected 429, got %d", code)
	}

	// miniredis clocks are manual, advance past the window
	mr.FastForward(2 * time.Second)

	if code := send(); code != http.StatusOK {
		t.Fatalf("After the window: expected 200, got %d", code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	handler, mr := newRateLimitedHandler(t, 1)
	mr.Close()

	req := httptest.NewRequest(http.MethodGet, "/jeec/v1/products", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected requests to pass when Redis is down, got %d", rec.Code)
	}
}
