package models

import "strings"

const (
	// UnsetPrice marks an item whose price is unknown or unavailable.
	UnsetPrice = 9999999

	DefaultGender   = "all"
	DefaultCategory = "etc"

	// IngredientSeparator joins ingredient names inside Item.Ingredients.
	IngredientSeparator = ","
)

// Item is a catalog product. The axis scores are computed once when the
// dataset is prepared and never recomputed by the query service.
type Item struct {
	ID             int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ImageID        *string `gorm:"size:512" json:"imageId"`
	Name           string  `gorm:"size:100;index;not null" json:"name"`
	Price          int     `gorm:"index;not null" json:"price"`
	Gender         string  `gorm:"size:6;index;not null;default:all" json:"gender"`
	Category       string  `gorm:"size:256;index;not null;default:etc" json:"category"`
	Ingredients    string  `gorm:"type:text;not null;default:''" json:"ingredients"`
	MonthlySales   int     `gorm:"not null;default:0" json:"monthlySales"`
	OilyScore      int     `gorm:"not null;default:0" json:"oilyScore"`
	DryScore       int     `gorm:"not null;default:0" json:"dryScore"`
	SensitiveScore int     `gorm:"not null;default:0" json:"sensitiveScore"`
}

// ApplyDefaults fills the fields the source data may leave blank.
func (i *Item) ApplyDefaults() {
	if strings.TrimSpace(i.Gender) == "" {
		i.Gender = DefaultGender
	}
	if strings.TrimSpace(i.Category) == "" {
		i.Category = DefaultCategory
	}
	if i.Price < 0 {
		i.Price = UnsetPrice
	}
}

// IngredientNames splits the stored ingredient text. Names are not trimmed:
// surrounding spaces are part of the name. Empty text yields no names.
func (i Item) IngredientNames() []string {
	if i.Ingredients == "" {
		return nil
	}
	return strings.Split(i.Ingredients, IngredientSeparator)
}
