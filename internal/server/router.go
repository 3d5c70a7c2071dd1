package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skincat/internal/config"
	"skincat/internal/handlers"
	applog "skincat/internal/log"
	"skincat/internal/metrics"
)

func newRouter(httpCfg config.HTTPConfig) http.Handler {
	r := chi.NewRouter()
	applog.Debug(context.Background(), "registering http routes")

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(corsHandler(httpCfg))

	r.Get("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	applog.Debug(context.Background(), "route registered", "path", "/metrics")

	r.Group(func(r chi.Router) {
		r.Use(rateLimit(httpCfg))
		r.Get("/products", handlers.Products)
		applog.Debug(context.Background(), "route registered", "path", "/products", "rateLimited", httpCfg.RateLimitRequests > 0)
		r.Get("/product/{"+handlers.ItemIDParam+"}", handlers.Product)
		applog.Debug(context.Background(), "route registered", "path", "/product/{"+handlers.ItemIDParam+"}", "rateLimited", httpCfg.RateLimitRequests > 0)
	})

	return r
}

func corsHandler(httpCfg config.HTTPConfig) func(http.Handler) http.Handler {
	origins := httpCfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}

// rateLimit limits each client IP. A non-positive request budget disables it.
func rateLimit(httpCfg config.HTTPConfig) func(http.Handler) http.Handler {
	if httpCfg.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	window := httpCfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return httprate.LimitByIP(httpCfg.RateLimitRequests, window)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		applog.Debug(r.Context(), "http request served",
			"requestID", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}
