package catalog

import "errors"

// Client input errors. None of them is returned once a query has started.
var (
	ErrMissingSkinType = errors.New("skin_type field must exist")
	ErrInvalidSkinType = errors.New("skin_type is wrong")
	ErrInvalidPage     = errors.New("page must be a non-negative integer")
	ErrInvalidItemID   = errors.New("item id must be an integer")
)

// ErrNotFound reports a lookup for an item that does not exist.
var ErrNotFound = errors.New("item does not exist")

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingSkinType) ||
		errors.Is(err, ErrInvalidSkinType) ||
		errors.Is(err, ErrInvalidPage) ||
		errors.Is(err, ErrInvalidItemID)
}
