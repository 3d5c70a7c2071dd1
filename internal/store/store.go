// Package store reads the item collection through gorm.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"skincat/internal/catalog"
	applog "skincat/internal/log"
	"skincat/internal/metrics"
	"skincat/models"
)

// likeEscaper escapes LIKE wildcards so ingredient terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Store implements catalog.Store on top of a gorm connection. It only
// reads, so one Store can serve concurrent requests.
type Store struct {
	db *gorm.DB
}

var _ catalog.Store = (*Store)(nil)

// New wraps db.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}
	return &Store{db: db}, nil
}

// ListItems runs plan as a single SELECT.
func (s *Store) ListItems(ctx context.Context, plan catalog.Plan) (items []models.Item, err error) {
	defer metrics.ObserveQuery("list_items", time.Now(), &err)

	query, err := s.ordered(ctx, plan.SkinType)
	if err != nil {
		return nil, err
	}

	if plan.Category != nil {
		query = query.Where("LOWER(items.category) = ?", strings.ToLower(*plan.Category))
	}
	if !plan.Exclude.IsAlways() {
		sql, vars := compile(plan.Exclude, plan.MatchMode)
		query = query.Where(sql, vars...)
	}
	if !plan.Include.IsAlways() {
		sql, vars := compile(plan.Include, plan.MatchMode)
		query = query.Where(sql, vars...)
	}

	if err := query.Offset(plan.Offset).Limit(plan.Limit).Find(&items).Error; err != nil {
		applog.Error(ctx, "failed to list items", "error", err)
		return nil, fmt.Errorf("query items: %w", err)
	}
	return items, nil
}

// FindItem loads one item by primary key.
func (s *Store) FindItem(ctx context.Context, id int64) (item models.Item, err error) {
	defer metrics.ObserveQuery("find_item", time.Now(), &err)

	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			applog.Debug(ctx, "item not found", "id", id)
			return models.Item{}, catalog.ErrNotFound
		}
		applog.Error(ctx, "failed to load item", "error", err, "id", id)
		return models.Item{}, fmt.Errorf("load item %d: %w", id, err)
	}
	return item, nil
}

// Recommend returns same-category items ordered like a list query.
func (s *Store) Recommend(ctx context.Context, q catalog.RecommendQuery) (items []models.Item, err error) {
	defer metrics.ObserveQuery("recommend_items", time.Now(), &err)

	if q.Limit <= 0 {
		return []models.Item{}, nil
	}

	query, err := s.ordered(ctx, q.SkinType)
	if err != nil {
		return nil, err
	}

	err = query.
		Where("items.category = ? AND items.id <> ?", q.Category, q.ExcludeID).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		applog.Error(ctx, "failed to load recommendations", "error", err, "category", q.Category)
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	return items, nil
}

func (s *Store) ordered(ctx context.Context, skinType catalog.SkinType) (*gorm.DB, error) {
	column := skinType.ScoreColumn()
	if column == "" {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidSkinType, skinType)
	}
	return s.db.WithContext(ctx).
		Model(&models.Item{}).
		Order("items." + column + " DESC").
		Order("items.price ASC").
		Order("items.id ASC"), nil
}

// compile renders a predicate as a parenthesized SQL condition.
func compile(p catalog.Predicate, mode catalog.MatchMode) (string, []any) {
	switch p.Op {
	case catalog.OpContains:
		term := strings.ToLower(p.Term)
		if mode == catalog.MatchToken {
			return "(EXISTS (SELECT 1 FROM item_ingredients WHERE item_ingredients.item_id = items.id AND LOWER(item_ingredients.ingredient) = ?))", []any{term}
		}
		return `(LOWER(items.ingredients) LIKE ? ESCAPE '\')`, []any{"%" + likeEscaper.Replace(term) + "%"}
	case catalog.OpAnd, catalog.OpOr:
		joiner := " AND "
		if p.Op == catalog.OpOr {
			joiner = " OR "
		}
		left, leftVars := compile(*p.Left, mode)
		right, rightVars := compile(*p.Right, mode)
		return "(" + left + joiner + right + ")", append(leftVars, rightVars...)
	case catalog.OpNot:
		inner, vars := compile(*p.Left, mode)
		return "(NOT " + inner + ")", vars
	}
	return "(1 = 1)", nil
}
