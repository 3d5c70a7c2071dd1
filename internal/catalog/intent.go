package catalog

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Query string keys.
const (
	ParamSkinType          = "skin_type"
	ParamCategory          = "category"
	ParamPage              = "page"
	ParamIncludeIngredient = "include_ingredient"
	ParamExcludeIngredient = "exclude_ingredient"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Intent is the validated form of a product query. Optional fields are nil
// when the request did not specify them.
type Intent struct {
	SkinType           SkinType
	Category           *string
	Page               *int
	IncludeIngredients []string
	ExcludeIngredients []string
}

type intentParams struct {
	SkinType string `validate:"required,oneof=oily dry sensitive"`
	Page     *int   `validate:"omitempty,min=0"`
}

// ParseIntent extracts and validates the recognized query parameters. Empty
// values are treated as absent. Ingredient lists are split on commas into a
// sorted set of distinct, non-empty tokens.
func ParseIntent(values url.Values) (Intent, error) {
	params := intentParams{SkinType: values.Get(ParamSkinType)}

	if raw := values.Get(ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return Intent{}, ErrInvalidPage
		}
		params.Page = &page
	}

	if err := getValidator().Struct(params); err != nil {
		return Intent{}, translateValidation(err)
	}

	intent := Intent{
		SkinType:           SkinType(params.SkinType),
		Page:               params.Page,
		IncludeIngredients: parseSet(values.Get(ParamIncludeIngredient)),
		ExcludeIngredients: parseSet(values.Get(ParamExcludeIngredient)),
	}
	if category := values.Get(ParamCategory); category != "" {
		intent.Category = &category
	}
	return intent, nil
}

func translateValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "SkinType":
		if fe.Tag() == "required" {
			return ErrMissingSkinType
		}
		return ErrInvalidSkinType
	case "Page":
		return ErrInvalidPage
	}
	return err
}

func parseSet(value string) []string {
	if value == "" {
		return nil
	}

	seen := map[string]struct{}{}
	for _, token := range strings.Split(value, ",") {
		if token == "" {
			continue
		}
		seen[token] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
