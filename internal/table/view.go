// internal/table/view.go
package table

import (
	"golang.org/x/text/language"
)

// ViewOption configures a View.
type ViewOption func(*viewOptions)

type viewOptions struct {
	locale   language.Tag
	search   string
	database string
	sort     *SortConfig
}

// WithLocale sets the collation locale for text columns. The default is English.
func WithLocale(tag language.Tag) ViewOption {
	return func(o *viewOptions) { o.locale = tag }
}

// WithSearch sets the initial search term.
func WithSearch(term string) ViewOption {
	return func(o *viewOptions) { o.search = term }
}

// WithDatabase sets the initial database filter.
func WithDatabase(database string) ViewOption {
	return func(o *viewOptions) { o.database = database }
}

// WithSort sets the initial sort configuration.
func WithSort(cfg *SortConfig) ViewOption {
	return func(o *viewOptions) { o.sort = cfg }
}

// View holds the filter and sort state of one table and caches its projection.
// The filtered rows are recomputed only when the search term or database filter
// changes; the sorted rows only when the filtered rows or sort config change.
// A View is not safe for concurrent use.
type View[T any] struct {
	schema *Schema[T]
	rows   []T
	locale language.Tag

	search   string
	database string
	sort     *SortConfig

	filtered    []T
	filterDirty bool
	sorted      []T
	sortDirty   bool

	filterRuns int
	sortRuns   int
}

// NewView creates a view over rows. The rows slice is treated as read-only.
// An initial sort on an unknown column returns an error wrapping ErrUnknownColumn.
func NewView[T any](schema *Schema[T], rows []T, opts ...ViewOption) (*View[T], error) {
	o := viewOptions{locale: language.English, database: AllDatabases}
	for _, opt := range opts {
		opt(&o)
	}
	v := &View[T]{
		schema:      schema,
		rows:        rows,
		locale:      o.locale,
		search:      o.search,
		database:    normalizeDatabase(o.database),
		filterDirty: true,
		sortDirty:   true,
	}
	if err := v.SetSort(o.sort); err != nil {
		return nil, err
	}
	return v, nil
}

func normalizeDatabase(database string) string {
	if database == "" {
		return AllDatabases
	}
	return database
}

// Schema returns the table schema the view projects through.
func (v *View[T]) Schema() *Schema[T] { return v.schema }

// Search returns the current search term.
func (v *View[T]) Search() string { return v.search }

// Database returns the current database filter.
func (v *View[T]) Database() string { return v.database }

// SortConfig returns a copy of the current sort configuration, or nil.
func (v *View[T]) SortConfig() *SortConfig {
	if v.sort == nil {
		return nil
	}
	cfg := *v.sort
	return &cfg
}

// SetSearch changes the search term.
func (v *View[T]) SetSearch(term string) {
	if term == v.search {
		return
	}
	v.search = term
	v.filterDirty = true
}

// SetDatabase changes the database filter; an empty value means AllDatabases.
func (v *View[T]) SetDatabase(database string) {
	database = normalizeDatabase(database)
	if database == v.database {
		return
	}
	v.database = database
	v.filterDirty = true
}

// SetSort replaces the sort configuration. A nil config restores input order.
func (v *View[T]) SetSort(cfg *SortConfig) error {
	if cfg != nil && cfg.Key == "" {
		cfg = nil
	}
	if cfg != nil {
		if _, err := v.schema.Columns.Lookup(cfg.Key); err != nil {
			return err
		}
	}
	if v.sort.Equal(cfg) {
		return nil
	}
	if cfg != nil {
		c := *cfg
		cfg = &c
	}
	v.sort = cfg
	v.sortDirty = true
	return nil
}

// ToggleSort applies a header click on key.
func (v *View[T]) ToggleSort(key string) error {
	return v.SetSort(Toggle(v.sort, key))
}

// Filtered returns the rows that pass the current filters in input order.
func (v *View[T]) Filtered() []T {
	if v.filterDirty {
		v.filtered = v.schema.Filter(v.rows, v.search, v.database)
		v.filterDirty = false
		v.sortDirty = true
		v.filterRuns++
	}
	return v.filtered
}

// Rows returns the filtered, sorted projection. Callers must not modify it.
func (v *View[T]) Rows() []T {
	filtered := v.Filtered()
	if v.sortDirty {
		// SetSort has already validated the key.
		sorted, err := v.schema.Sort(filtered, v.sort, v.locale)
		if err != nil {
			sorted = filtered
		}
		v.sorted = sorted
		v.sortDirty = false
		v.sortRuns++
	}
	return v.sorted
}

// Empty reports whether the current projection has no rows.
func (v *View[T]) Empty() bool { return len(v.Rows()) == 0 }

// Total returns the number of rows before filtering.
func (v *View[T]) Total() int { return len(v.rows) }

// Categories lists the distinct database values of the unfiltered rows.
func (v *View[T]) Categories() []string { return v.schema.Categories(v.rows) }
