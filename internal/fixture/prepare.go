// Package fixture turns the raw ingredient and item tables into the tagged
// record set the catalog database is loaded from.
package fixture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"skincat/models"
)

var (
	ErrDuplicateIngredient = errors.New("duplicate ingredient")
	ErrMissingIngredient   = errors.New("missing ingredient")
	ErrInvalidSymbol       = errors.New("invalid ingredient symbol")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrScoreMismatch       = errors.New("item score does not match ingredient table")
)

// IngredientRecord is one row of the raw ingredient table. Each axis holds
// "O", "X" or nothing.
type IngredientRecord struct {
	Name      string  `json:"name"`
	Oily      *string `json:"oily"`
	Dry       *string `json:"dry"`
	Sensitive *string `json:"sensitive"`
}

// ItemRecord is one row of the raw item table.
type ItemRecord struct {
	ID           int64   `json:"id"`
	ImageID      *string `json:"imageId"`
	Name         string  `json:"name"`
	Price        Numeral `json:"price"`
	Gender       string  `json:"gender"`
	Category     string  `json:"category"`
	Ingredients  string  `json:"ingredients"`
	MonthlySales int     `json:"monthlySales"`
}

// Numeral accepts either a JSON string or a JSON number.
type Numeral string

func (n *Numeral) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*n = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeral(s)
	default:
		*n = Numeral(raw)
	}
	return nil
}

// Int coerces the numeral to a non-negative integer. A blank value yields
// models.UnsetPrice.
func (n Numeral) Int() (int, error) {
	value := strings.TrimSpace(string(n))
	if value == "" {
		return models.UnsetPrice, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, value)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidPrice, parsed)
	}
	return parsed, nil
}

// DecodeSymbol maps 'O' to +1, 'X' to -1 and an absent value to 0.
func DecodeSymbol(symbol *string) (int, error) {
	if symbol == nil {
		return 0, nil
	}
	switch *symbol {
	case "O":
		return 1, nil
	case "X":
		return -1, nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, *symbol)
	}
}

// ScoreTable maps an ingredient name to its decoded axis scores.
type ScoreTable map[string]models.Ingredient

// NewScoreTable decodes the ingredient table. Names must be unique.
func NewScoreTable(records []IngredientRecord) (ScoreTable, []models.Ingredient, error) {
	table := make(ScoreTable, len(records))
	ordered := make([]models.Ingredient, 0, len(records))
	for idx, record := range records {
		if _, ok := table[record.Name]; ok {
			return nil, nil, fmt.Errorf("ingredient %d: %w: %q", idx+1, ErrDuplicateIngredient, record.Name)
		}

		ingredient := models.Ingredient{Name: record.Name}
		var err error
		if ingredient.Oily, err = DecodeSymbol(record.Oily); err != nil {
			return nil, nil, fmt.Errorf("ingredient %q oily: %w", record.Name, err)
		}
		if ingredient.Dry, err = DecodeSymbol(record.Dry); err != nil {
			return nil, nil, fmt.Errorf("ingredient %q dry: %w", record.Name, err)
		}
		if ingredient.Sensitive, err = DecodeSymbol(record.Sensitive); err != nil {
			return nil, nil, fmt.Errorf("ingredient %q sensitive: %w", record.Name, err)
		}

		table[record.Name] = ingredient
		ordered = append(ordered, ingredient)
	}
	return table, ordered, nil
}

// Score sums the axis scores of every named ingredient.
func (t ScoreTable) Score(names []string) (oily, dry, sensitive int, err error) {
	for _, name := range names {
		ingredient, ok := t[name]
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrMissingIngredient, name)
		}
		oily += ingredient.Oily
		dry += ingredient.Dry
		sensitive += ingredient.Sensitive
	}
	return oily, dry, sensitive, nil
}

// Fixture is the prepared dataset: every ingredient followed by every item,
// in input order.
type Fixture struct {
	Ingredients []models.Ingredient
	Items       []models.Item
}

// Prepare builds the fixture, computing each item's axis scores from the
// ingredient table. Any data integrity problem aborts the whole run.
func Prepare(ingredients []IngredientRecord, items []ItemRecord) (*Fixture, error) {
	table, ordered, err := NewScoreTable(ingredients)
	if err != nil {
		return nil, err
	}

	fixture := &Fixture{
		Ingredients: ordered,
		Items:       make([]models.Item, 0, len(items)),
	}

	for idx, record := range items {
		price, err := record.Price.Int()
		if err != nil {
			return nil, fmt.Errorf("item %d (id %d): %w", idx+1, record.ID, err)
		}

		item := models.Item{
			ID:           record.ID,
			ImageID:      record.ImageID,
			Name:         record.Name,
			Price:        price,
			Gender:       record.Gender,
			Category:     record.Category,
			Ingredients:  record.Ingredients,
			MonthlySales: record.MonthlySales,
		}
		item.ApplyDefaults()

		item.OilyScore, item.DryScore, item.SensitiveScore, err = table.Score(item.IngredientNames())
		if err != nil {
			return nil, fmt.Errorf("item %d (id %d): %w", idx+1, record.ID, err)
		}

		fixture.Items = append(fixture.Items, item)
	}

	return fixture, nil
}

// Verify checks that every item's axis scores equal the sum over its
// ingredients. A fixture without ingredient records cannot be checked and
// passes.
func (f *Fixture) Verify() error {
	if len(f.Ingredients) == 0 {
		return nil
	}

	table := make(ScoreTable, len(f.Ingredients))
	for _, ingredient := range f.Ingredients {
		if _, ok := table[ingredient.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateIngredient, ingredient.Name)
		}
		table[ingredient.Name] = ingredient
	}

	for _, item := range f.Items {
		oily, dry, sensitive, err := table.Score(item.IngredientNames())
		if err != nil {
			return fmt.Errorf("item %d: %w", item.ID, err)
		}
		if oily != item.OilyScore || dry != item.DryScore || sensitive != item.SensitiveScore {
			return fmt.Errorf("item %d: %w: have (%d,%d,%d), want (%d,%d,%d)", item.ID, ErrScoreMismatch,
				item.OilyScore, item.DryScore, item.SensitiveScore, oily, dry, sensitive)
		}
	}
	return nil
}
