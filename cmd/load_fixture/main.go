package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"skincat/internal/config"
	"skincat/internal/db"
	"skincat/internal/fixture"
	applog "skincat/internal/log"
)

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(context.Background(), path); err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	if strings.TrimSpace(path) == "" {
		path = cfg.Fixture.Path
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate fixture: %w", err)
	}

	f, err := fixture.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	stats, err := fixture.Load(ctx, database, f)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	applog.Info(ctx, "import complete",
		"path", path,
		"ingredients", stats.Ingredients,
		"items", stats.Items,
		"itemIngredients", stats.ItemIngredients,
	)
	return nil
}
