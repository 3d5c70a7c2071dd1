package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"skincat/internal/catalog"
	"skincat/internal/config"
	"skincat/internal/db"
	"skincat/internal/db/mock"
	applog "skincat/internal/log"
	"skincat/internal/server"
	"skincat/internal/store"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	setLogFormatFunc    = applog.SetFormat
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	if cfg.Logging.Format != "" {
		if err := setLogFormatFunc(cfg.Logging.Format); err != nil {
			applog.Error(ctx, "invalid log format", "format", cfg.Logging.Format, "error", err)
			return 1
		}
	}
	defer applog.Sync()

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		applog.Debug(ctx, "configuring database")
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	itemStore, err := store.New(database)
	if err != nil {
		applog.Error(ctx, "failed to create item store", "error", err)
		return 1
	}

	service, err := catalog.NewService(itemStore, catalogConfig(cfg.Catalog))
	if err != nil {
		applog.Error(ctx, "invalid catalog configuration", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr:    cfg.Server.Addr,
		Catalog: service,
		HTTP:    cfg.HTTP,
	})
	if err != nil {
		applog.Error(ctx, "failed to create server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err().Error())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}

func catalogConfig(cfg config.CatalogConfig) catalog.Config {
	return catalog.Config{
		PageSize:        cfg.PageSize,
		RecommendLimit:  cfg.RecommendLimit,
		ResourceBaseURL: cfg.ResourceBaseURL,
		IngredientMatch: catalog.MatchMode(cfg.IngredientMatch),
	}
}
