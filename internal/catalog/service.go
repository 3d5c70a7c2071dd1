package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	applog "skincat/internal/log"
	"skincat/models"
)

// Store is the read side of the item collection.
type Store interface {
	// ListItems returns the items selected by plan, in plan order.
	ListItems(ctx context.Context, plan Plan) ([]models.Item, error)
	// FindItem returns ErrNotFound when no item has the id.
	FindItem(ctx context.Context, id int64) (models.Item, error)
	// Recommend returns up to query.Limit items of query.Category other than
	// query.ExcludeID, ordered like a list query for query.SkinType.
	Recommend(ctx context.Context, query RecommendQuery) ([]models.Item, error)
}

// Service answers product list and detail queries.
type Service struct {
	store   Store
	planner *Planner
}

// NewService wires a store to a planner built from cfg.
func NewService(store Store, cfg Config) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store is nil")
	}
	planner, err := NewPlanner(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{store: store, planner: planner}, nil
}

// Products lists one page of items matching the query parameters. No match
// yields an empty, non-nil slice.
func (s *Service) Products(ctx context.Context, values url.Values) ([]ListRecord, error) {
	intent, err := ParseIntent(values)
	if err != nil {
		return nil, err
	}

	plan := s.planner.Plan(intent)
	applog.Debug(ctx, "listing products",
		"skinType", plan.SkinType,
		"offset", plan.Offset,
		"limit", plan.Limit,
		"include", len(intent.IncludeIngredients),
		"exclude", len(intent.ExcludeIngredients),
	)

	items, err := s.store.ListItems(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	records := make([]ListRecord, 0, len(items))
	for _, item := range items {
		records = append(records, s.planner.listRecord(item))
	}
	return records, nil
}

// Product returns the item with rawID followed by same-category
// recommendations for the requested skin type.
func (s *Service) Product(ctx context.Context, rawID string, values url.Values) (DetailResponse, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return DetailResponse{}, ErrInvalidItemID
	}

	intent, err := ParseIntent(values)
	if err != nil {
		return DetailResponse{}, err
	}

	item, err := s.store.FindItem(ctx, id)
	if err != nil {
		return DetailResponse{}, err
	}

	query := s.planner.Recommend(intent.SkinType, item.Category, item.ID)
	var recommended []models.Item
	if query.Limit > 0 {
		recommended, err = s.store.Recommend(ctx, query)
		if err != nil {
			return DetailResponse{}, fmt.Errorf("recommend items: %w", err)
		}
	}

	resp := DetailResponse{
		Detail:          s.planner.detailRecord(item),
		Recommendations: make([]RecommendRecord, 0, len(recommended)),
	}
	for _, rec := range recommended {
		if rec.ID == item.ID || len(resp.Recommendations) == query.Limit {
			continue
		}
		resp.Recommendations = append(resp.Recommendations, s.planner.recommendRecord(rec))
	}
	return resp, nil
}
