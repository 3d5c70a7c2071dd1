package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skincat/internal/config"
)

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter(config.HTTPConfig{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestNewRouterExposesMetrics(t *testing.T) {
	router := newRouter(config.HTTPConfig{})

	// Prime the request counter so the family is present.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "skincat_api_requests_total") {
		t.Fatal("expected request counter in metrics output")
	}
}

func TestNewRouterAnswersCORSPreflight(t *testing.T) {
	router := newRouter(config.HTTPConfig{CORSAllowedOrigins: []string{"https://shop.example.com"}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func TestNewRouterRateLimitsProductRoutes(t *testing.T) {
	router := newRouter(config.HTTPConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products?skin_type=dry", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got codes %v", codes)
	}
}

func TestNewRouterUnknownRoute(t *testing.T) {
	router := newRouter(config.HTTPConfig{})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
