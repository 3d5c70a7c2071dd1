package mock

import (
	"context"
	"testing"

	"skincat/models"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var ingredientCount int64
	if err := db.WithContext(ctx).Model(&models.Ingredient{}).Count(&ingredientCount).Error; err != nil {
		t.Fatalf("count ingredients: %v", err)
	}
	if ingredientCount != int64(len(Ingredients())) {
		t.Fatalf("expected %d ingredients, got %d", len(Ingredients()), ingredientCount)
	}

	var items []models.Item
	if err := db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		t.Fatalf("query items: %v", err)
	}
	if len(items) != len(Items()) {
		t.Fatalf("expected %d items, got %d", len(Items()), len(items))
	}

	barrier := items[1]
	if barrier.OilyScore != 0 || barrier.DryScore != 3 || barrier.SensitiveScore != 1 {
		t.Fatalf("unexpected scores for %q: %d/%d/%d", barrier.Name, barrier.OilyScore, barrier.DryScore, barrier.SensitiveScore)
	}

	mystery := items[13]
	if mystery.Category != models.DefaultCategory || mystery.Gender != models.DefaultGender || mystery.ImageID != nil {
		t.Fatalf("expected defaults on %q, got %+v", mystery.Name, mystery)
	}

	var links int64
	if err := db.WithContext(ctx).Model(&models.ItemIngredient{}).Where("item_id = ?", barrier.ID).Count(&links).Error; err != nil {
		t.Fatalf("count item ingredients: %v", err)
	}
	if links != 3 {
		t.Fatalf("expected 3 ingredient links for %q, got %d", barrier.Name, links)
	}
}

func TestNewReturnsIsolatedDatabases(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, err := New(ctx)
	if err != nil {
		t.Fatalf("first mock database: %v", err)
	}
	second, err := New(ctx)
	if err != nil {
		t.Fatalf("second mock database: %v", err)
	}

	if err := first.WithContext(ctx).Where("id = ?", 1).Delete(&models.Item{}).Error; err != nil {
		t.Fatalf("delete from first: %v", err)
	}

	var count int64
	if err := second.WithContext(ctx).Model(&models.Item{}).Count(&count).Error; err != nil {
		t.Fatalf("count second: %v", err)
	}
	if count != int64(len(Items())) {
		t.Fatalf("expected second database untouched, got %d items", count)
	}
}
