package catalog

import "skincat/models"

// SkinType selects the axis score list and recommendation queries sort on.
type SkinType string

const (
	SkinOily      SkinType = "oily"
	SkinDry       SkinType = "dry"
	SkinSensitive SkinType = "sensitive"
)

// SkinTypes lists every accepted skin type.
var SkinTypes = []SkinType{SkinOily, SkinDry, SkinSensitive}

// Valid reports whether s is a recognized skin type.
func (s SkinType) Valid() bool {
	switch s {
	case SkinOily, SkinDry, SkinSensitive:
		return true
	}
	return false
}

// ScoreColumn returns the database column holding the axis score for s.
func (s SkinType) ScoreColumn() string {
	switch s {
	case SkinOily:
		return "oily_score"
	case SkinDry:
		return "dry_score"
	case SkinSensitive:
		return "sensitive_score"
	}
	return ""
}

// Score returns the item's axis score for s.
func (s SkinType) Score(item models.Item) int {
	switch s {
	case SkinOily:
		return item.OilyScore
	case SkinDry:
		return item.DryScore
	case SkinSensitive:
		return item.SensitiveScore
	}
	return 0
}

// Less orders two items for skin type s: axis score descending, then price
// ascending, then id ascending.
func (s SkinType) Less(a, b models.Item) bool {
	if sa, sb := s.Score(a), s.Score(b); sa != sb {
		return sa > sb
	}
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.ID < b.ID
}
