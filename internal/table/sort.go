// internal/table/sort.go
package table

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the order a column is sorted in.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending" in any case.
// An empty string is ascending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("invalid sort direction %q (want asc or desc)", value)
	}
}

// SortConfig selects the column and direction of a sorted projection.
// A nil *SortConfig means the rows are left in input order.
type SortConfig struct {
	Key       string
	Direction Direction
}

func (c *SortConfig) String() string {
	if c == nil {
		return "unsorted"
	}
	return c.Key + " " + c.Direction.String()
}

// Equal reports whether both configs select the same ordering.
func (c *SortConfig) Equal(other *SortConfig) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return *c == *other
}

// Toggle returns the configuration after a header click on key: the same key
// flips ascending to descending, anything else starts key ascending. The result
// is never nil, so a column cannot be toggled back to unsorted.
func Toggle(current *SortConfig, key string) *SortConfig {
	if current != nil && current.Key == key && current.Direction == Ascending {
		return &SortConfig{Key: key, Direction: Descending}
	}
	return &SortConfig{Key: key, Direction: Ascending}
}

// Sort returns a stably sorted copy of rows ordered by col. Rows that compare
// equal keep their input order in both directions.
func Sort[T any](rows []T, col Column[T], dir Direction, locale language.Tag) []T {
	out := slices.Clone(rows)
	if len(out) < 2 {
		return out
	}
	// Collators keep internal buffers; one per call keeps Sort safe for concurrent use.
	coll := collate.New(locale)
	slices.SortStableFunc(out, func(a, b T) int {
		c := col.compare(coll, a, b)
		if dir == Descending {
			return -c
		}
		return c
	})
	return out
}
