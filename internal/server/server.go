package server

import (
	"context"
	"net/http"
	"time"

	"skincat/internal/catalog"
	"skincat/internal/config"
	"skincat/internal/handlers"
	applog "skincat/internal/log"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr    string
	Catalog *catalog.Service
	HTTP    config.HTTPConfig
}

// Server wraps an http.Server serving the product catalog API.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"corsOrigins", cfg.HTTP.CORSAllowedOrigins,
		"rateLimitRequests", cfg.HTTP.RateLimitRequests,
		"rateLimitWindow", cfg.HTTP.RateLimitWindow.String(),
	)

	if cfg.Catalog == nil {
		applog.Warn(context.Background(), "catalog service not provided, product routes will answer 503")
	}
	handlers.Configure(cfg.Catalog)

	applog.Debug(context.Background(), "handler dependencies configured")

	handler := newRouter(cfg.HTTP)

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
