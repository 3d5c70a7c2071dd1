package fixture

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "skincat/internal/log"
	"skincat/models"
)

const loadBatchSize = 500

// LoadStats reports how many rows a Load call wrote.
type LoadStats struct {
	Ingredients     int
	Items           int
	ItemIngredients int
}

// Load verifies the fixture and writes it in a single transaction. Existing
// rows with the same keys are replaced, so loading the same fixture twice is
// harmless. The normalized item-ingredient rows are rebuilt for every loaded
// item.
func Load(ctx context.Context, db *gorm.DB, f *Fixture) (LoadStats, error) {
	if db == nil {
		return LoadStats{}, fmt.Errorf("database handle is nil")
	}
	if f == nil {
		return LoadStats{}, fmt.Errorf("fixture is nil")
	}
	if err := f.Verify(); err != nil {
		return LoadStats{}, fmt.Errorf("verify fixture: %w", err)
	}

	stats := LoadStats{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(f.Ingredients) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&f.Ingredients, loadBatchSize).Error; err != nil {
				return fmt.Errorf("insert ingredients: %w", err)
			}
			stats.Ingredients = len(f.Ingredients)
		}

		if len(f.Items) == 0 {
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&f.Items, loadBatchSize).Error; err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		stats.Items = len(f.Items)

		ids := make([]int64, 0, len(f.Items))
		links := make([]models.ItemIngredient, 0, len(f.Items))
		for _, item := range f.Items {
			ids = append(ids, item.ID)
			seen := map[string]struct{}{}
			for _, name := range item.IngredientNames() {
				if _, ok := seen[name]; ok {
					continue
				}
				seen[name] = struct{}{}
				links = append(links, models.ItemIngredient{ItemID: item.ID, Ingredient: name})
			}
		}

		for start := 0; start < len(ids); start += loadBatchSize {
			end := min(start+loadBatchSize, len(ids))
			if err := tx.Where("item_id IN ?", ids[start:end]).Delete(&models.ItemIngredient{}).Error; err != nil {
				return fmt.Errorf("clear item ingredients: %w", err)
			}
		}

		if len(links) > 0 {
			if err := tx.CreateInBatches(&links, loadBatchSize).Error; err != nil {
				return fmt.Errorf("insert item ingredients: %w", err)
			}
		}
		stats.ItemIngredients = len(links)
		return nil
	})
	if err != nil {
		return LoadStats{}, err
	}

	applog.Info(ctx, "fixture loaded",
		"ingredients", stats.Ingredients,
		"items", stats.Items,
		"itemIngredients", stats.ItemIngredients,
	)
	return stats, nil
}
