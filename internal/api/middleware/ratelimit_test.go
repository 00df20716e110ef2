package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"customer-registry/internal/config"
)

func TestRateLimiterMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := config.RateLimitConfig{
		Enabled: true,
		RPS:     1,
		Burst:   2,
	}

	middleware := NewRateLimiterMiddleware(cfg, logger)

	t.Run("allows requests under the rate limit", func(t *testing.T) {
		nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler := middleware.Middleware(nextHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("blocks requests exceeding the rate limit", func(t *testing.T) {
		nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler := middleware.Middleware(nextHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:12345"

		var lastCode int
		var lastBody string
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			lastCode = rec.Code
			lastBody = rec.Body.String()
		}

		if lastCode != http.StatusTooManyRequests {
			t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, lastCode)
		}

		var body map[string]interface{}
		if err := json.Unmarshal([]byte(lastBody), &body); err != nil {
			t.Fatalf("failed to parse rate limit response: %v", err)
		}
		if body["errorCode"] != "RATE_LIMITED" {
			t.Errorf("expected errorCode RATE_LIMITED, got %v", body["errorCode"])
		}
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler := middleware.Middleware(nextHandler)

		reqA := httptest.NewRequest(http.MethodGet, "/", nil)
		reqA.RemoteAddr = "192.168.1.1:1000"
		for i := 0; i < 3; i++ {
			handler.ServeHTTP(httptest.NewRecorder(), reqA)
		}

		reqB := httptest.NewRequest(http.MethodGet, "/", nil)
		reqB.RemoteAddr = "192.168.1.2:1000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, reqB)

		if rec.Code != http.StatusOK {
			t.Errorf("expected fresh client to pass, got %d", rec.Code)
		}
	})

	t.Run("prefers X-Forwarded-For over remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		if ip := middleware.extractIP(req); ip != "203.0.113.7" {
			t.Errorf("expected forwarded IP, got %s", ip)
		}
	})

	t.Run("disabled limiter passes everything through", func(t *testing.T) {
		disabled := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: false}, logger)
		nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler := disabled.Middleware(nextHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		for i := 0; i < 10; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d on request %d, got %d", http.StatusOK, i, rec.Code)
			}
		}
	})
}
