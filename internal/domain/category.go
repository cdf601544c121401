package domain

import (
	"slices"
	"strings"
)

type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryFashion     Category = "FASHION"
	CategoryFood        Category = "FOOD"
	CategoryHome        Category = "HOME"
	CategoryOther       Category = "OTHER"
)

var categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryFood,
	CategoryHome,
	CategoryOther,
}

var (
	ErrCategoryRequired = NewArgumentError("category is required")
	ErrInvalidCategory  = NewArgumentError("invalid category")
)

// Categories returns the canonical tags in declaration order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory matches raw against the canonical tags ignoring case and
// surrounding whitespace. Blank input is reported as missing.
func ParseCategory(raw string) (Category, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return "", ErrCategoryRequired
	}
	if c := Category(v); c.Valid() {
		return c, nil
	}
	return "", ErrInvalidCategory
}

func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

func (c Category) String() string { return string(c) }
