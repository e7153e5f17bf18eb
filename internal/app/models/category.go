package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a closed enumeration of the semantic groupings the engine
// can plan queries for. Anything outside the enum is a caller error.
type Category string

const (
	CategoryAttractions Category = "attractions"
	CategoryDayTrips    Category = "day_trips"
	CategoryFoodCafes   Category = "food_cafes"
	CategoryHiddenGems  Category = "hidden_gems"
)

// Categories lists every valid category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryAttractions,
		CategoryDayTrips,
		CategoryFoodCafes,
		CategoryHiddenGems,
	}
}

// ParseCategory validates a raw category string from a caller.
func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryAttractions:
		return CategoryAttractions, nil
	case CategoryDayTrips:
		return CategoryDayTrips, nil
	case CategoryFoodCafes:
		return CategoryFoodCafes, nil
	case CategoryHiddenGems:
		return CategoryHiddenGems, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
}

// DisplayName returns a human readable title for UI headings.
func (c Category) DisplayName() string {
	tc := cases.Title(language.English)
	return tc.String(strings.ReplaceAll(string(c), "_", " "))
}

func (c Category) String() string {
	return string(c)
}
