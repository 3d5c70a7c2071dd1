package models

// Ingredient carries the per-skin-type contribution of a single ingredient.
// Each axis is -1, 0 or +1.
type Ingredient struct {
	Name      string `gorm:"primaryKey;size:100" json:"name"`
	Oily      int    `gorm:"not null" json:"oily"`
	Dry       int    `gorm:"not null" json:"dry"`
	Sensitive int    `gorm:"not null" json:"sensitive"`
}

// ItemIngredient is one normalized (item, ingredient) pair derived from
// Item.Ingredients at load time.
type ItemIngredient struct {
	ID         uint   `gorm:"primaryKey"`
	ItemID     int64  `gorm:"not null;index"`
	Ingredient string `gorm:"size:100;not null;index"`
}
