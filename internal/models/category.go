package models

import (
	"fmt"
	"strings"
)

// Category is a note label. All is filter-only: notes are never stored with
// it, but a filter using it matches every category.
type Category string

const (
	CategoryAll       Category = "All"
	CategoryImportant Category = "Important"
	CategoryWork      Category = "Work"
	CategoryReading   Category = "Reading"
)

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range []Category{CategoryAll, CategoryImportant, CategoryWork, CategoryReading} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Matches reports whether a note carrying noteCategory passes a filter on c.
// The comparison is case-insensitive; CategoryAll matches everything.
func (c Category) Matches(noteCategory string) bool {
	if c == CategoryAll {
		return true
	}
	return strings.EqualFold(noteCategory, string(c))
}
