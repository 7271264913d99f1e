// internal/table/schema.go
package table

import (
	"slices"

	"golang.org/x/text/language"
)

// Schema describes one table: its columns, the text the search box matches
// against and the category the database filter compares with.
type Schema[T any] struct {
	Name     string
	Columns  Columns[T]
	Search   func(T) string
	Category func(T) string
}

// Filter applies the search term and database filter to rows.
func (s *Schema[T]) Filter(rows []T, term, database string) []T {
	return Filter(rows, term, database, s.Search, s.Category)
}

// Sort orders rows by cfg. A nil config or empty key returns a copy of rows in
// input order. Unknown keys return an error wrapping ErrUnknownColumn.
func (s *Schema[T]) Sort(rows []T, cfg *SortConfig, locale language.Tag) ([]T, error) {
	if cfg == nil || cfg.Key == "" {
		return slices.Clone(rows), nil
	}
	col, err := s.Columns.Lookup(cfg.Key)
	if err != nil {
		return nil, err
	}
	return Sort(rows, col, cfg.Direction, locale), nil
}

// Project filters then sorts rows in one call.
func (s *Schema[T]) Project(rows []T, term, database string, cfg *SortConfig, locale language.Tag) ([]T, error) {
	return s.Sort(s.Filter(rows, term, database), cfg, locale)
}

// Categories returns the distinct category values of rows in first-seen order.
func (s *Schema[T]) Categories(rows []T) []string {
	if s.Category == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		c := s.Category(row)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
