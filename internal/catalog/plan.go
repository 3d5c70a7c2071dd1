package catalog

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageSize        = 50
	DefaultRecommendLimit  = 3
	DefaultResourceBaseURL = "https://grepp-programmers-challenges.s3.ap-northeast-2.amazonaws.com/2020-birdview/"
)

// Config holds the planner constants.
type Config struct {
	PageSize        int
	RecommendLimit  int
	ResourceBaseURL string
	IngredientMatch MatchMode
}

// DefaultConfig returns the stock catalog settings.
func DefaultConfig() Config {
	return Config{
		PageSize:        DefaultPageSize,
		RecommendLimit:  DefaultRecommendLimit,
		ResourceBaseURL: DefaultResourceBaseURL,
		IngredientMatch: MatchSubstring,
	}
}

func (c Config) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.RecommendLimit < 0 {
		return fmt.Errorf("recommend limit must not be negative, got %d", c.RecommendLimit)
	}
	if strings.TrimSpace(c.ResourceBaseURL) == "" {
		return fmt.Errorf("resource base URL must not be empty")
	}
	switch c.IngredientMatch {
	case MatchSubstring, MatchToken:
	default:
		return fmt.Errorf("unknown ingredient match mode %q", c.IngredientMatch)
	}
	return nil
}

// Plan is a filter, sort and slice over the item collection. Stores apply
// it in field order: sort by SkinType, filter by Category, drop items failing
// Exclude, keep items passing Include, then slice [Offset, Offset+Limit).
type Plan struct {
	SkinType  SkinType
	Category  *string
	Exclude   Predicate
	Include   Predicate
	MatchMode MatchMode
	Offset    int
	Limit     int
}

// RecommendQuery selects items similar to one being viewed.
type RecommendQuery struct {
	SkinType  SkinType
	Category  string
	ExcludeID int64
	Limit     int
}

// Planner turns intents into plans.
type Planner struct {
	config Config
}

// NewPlanner validates cfg and returns a planner using it.
func NewPlanner(cfg Config) (*Planner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Planner{config: cfg}, nil
}

// Config returns the planner settings.
func (p *Planner) Config() Config { return p.config }

// Plan builds the list query for intent. A missing page selects the first
// page; pages beyond the end produce an empty slice.
func (p *Planner) Plan(intent Intent) Plan {
	plan := Plan{
		SkinType:  intent.SkinType,
		Category:  intent.Category,
		Exclude:   ExcludeAny(intent.ExcludeIngredients),
		Include:   IncludeAll(intent.IncludeIngredients),
		MatchMode: p.config.IngredientMatch,
		Limit:     p.config.PageSize,
	}
	if intent.Page != nil {
		page := *intent.Page
		if page > math.MaxInt32/p.config.PageSize {
			plan.Offset = math.MaxInt32
		} else {
			plan.Offset = page * p.config.PageSize
		}
	}
	return plan
}

// Recommend builds the recommendation query for an item being viewed.
func (p *Planner) Recommend(skinType SkinType, category string, itemID int64) RecommendQuery {
	return RecommendQuery{
		SkinType:  skinType,
		Category:  category,
		ExcludeID: itemID,
		Limit:     p.config.RecommendLimit,
	}
}
