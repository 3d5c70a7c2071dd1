package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"skincat/internal/config"
	"skincat/internal/db"
	"skincat/internal/db/mock"
	"skincat/internal/fixture"
	"skincat/models"
)

func writeSeedFixture(t *testing.T, path string) {
	t.Helper()
	f, err := mock.Fixture()
	if err != nil {
		t.Fatalf("prepare seed fixture: %v", err)
	}
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture file: %v", err)
	}
	defer out.Close()
	if err := fixture.Write(out, f); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestRunLoadsFixtureIntoDatabase(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "items-data.json")
	dbPath := filepath.Join(dir, "skincat.db")
	writeSeedFixture(t, fixturePath)

	t.Setenv("DATABASE_URL", "sqlite://"+dbPath)
	t.Setenv("FIXTURE_PATH", fixturePath)

	if err := run(context.Background(), ""); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	// A second run replaces rows rather than duplicating them.
	if err := run(context.Background(), fixturePath); err != nil {
		t.Fatalf("second run returned error: %v", err)
	}

	database, err := db.Initialize(config.DatabaseConfig{URL: dbPath})
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	var items, ingredients int64
	if err := database.Model(&models.Item{}).Count(&items).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if err := database.Model(&models.Ingredient{}).Count(&ingredients).Error; err != nil {
		t.Fatalf("count ingredients: %v", err)
	}
	if items != int64(len(mock.Items())) {
		t.Fatalf("expected %d items, got %d", len(mock.Items()), items)
	}
	if ingredients != int64(len(mock.Ingredients())) {
		t.Fatalf("expected %d ingredients, got %d", len(mock.Ingredients()), ingredients)
	}
}

func TestRunFailsForMissingFixture(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", filepath.Join(dir, "skincat.db"))

	if err := run(context.Background(), filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected an error for a missing fixture file")
	}
}
