// internal/report/state.go
package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mwiater/ragbench/internal/table"
)

// TableID identifies one of the sortable dashboard tables.
type TableID string

const (
	ResultsTable     TableID = "results"
	QualityTable     TableID = "quality"
	ScalabilityTable TableID = "scalability"
)

// sortParams maps each table to its sort key and direction query parameters.
var sortParams = map[TableID][2]string{
	ResultsTable:     {"sort", "dir"},
	QualityTable:     {"qsort", "qdir"},
	ScalabilityTable: {"ssort", "sdir"},
}

// State is the view state of one dashboard session. It lives only in the URL
// (or in memory for the CLI) and is never persisted.
type State struct {
	Search   string
	Database string
	Sorts    map[TableID]*table.SortConfig
}

// NewState returns a state with no filters and no sorting.
func NewState() State {
	return State{Database: table.AllDatabases, Sorts: map[TableID]*table.SortConfig{}}
}

// Sort returns the sort configuration of a table, or nil.
func (s State) Sort(id TableID) *table.SortConfig {
	if s.Sorts == nil {
		return nil
	}
	return s.Sorts[id]
}

// WithSort returns a copy of s with the sort of id replaced.
func (s State) WithSort(id TableID, cfg *table.SortConfig) State {
	out := s.clone()
	if cfg == nil {
		delete(out.Sorts, id)
	} else {
		out.Sorts[id] = cfg
	}
	return out
}

// Toggle returns a copy of s after a header click on key in table id.
func (s State) Toggle(id TableID, key string) State {
	return s.WithSort(id, table.Toggle(s.Sort(id), key))
}

func (s State) clone() State {
	out := State{Search: s.Search, Database: s.Database, Sorts: make(map[TableID]*table.SortConfig, len(s.Sorts))}
	for id, cfg := range s.Sorts {
		if cfg != nil {
			c := *cfg
			out.Sorts[id] = &c
		}
	}
	return out
}

// ParseState reads a state from query parameters: q, db and a key/direction
// pair per table (sort/dir, qsort/qdir, ssort/sdir). Column keys are checked
// later, when the state is applied to a table.
func ParseState(values url.Values) (State, error) {
	st := NewState()
	st.Search = values.Get("q")
	if db := strings.TrimSpace(values.Get("db")); db != "" {
		st.Database = db
	}
	for id, params := range sortParams {
		key := strings.TrimSpace(values.Get(params[0]))
		if key == "" {
			continue
		}
		dir, err := table.ParseDirection(values.Get(params[1]))
		if err != nil {
			return State{}, fmt.Errorf("%s: %w", params[1], err)
		}
		st.Sorts[id] = &table.SortConfig{Key: key, Direction: dir}
	}
	return st, nil
}

// Query encodes the state as query parameters, omitting defaults.
func (s State) Query() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set("q", s.Search)
	}
	if s.Database != "" && s.Database != table.AllDatabases {
		v.Set("db", s.Database)
	}
	for id, params := range sortParams {
		cfg := s.Sort(id)
		if cfg == nil || cfg.Key == "" {
			continue
		}
		v.Set(params[0], cfg.Key)
		v.Set(params[1], cfg.Direction.String())
	}
	return v
}

// Href returns base with the encoded state as its query string.
func (s State) Href(base string) string {
	q := s.Query().Encode()
	if q == "" {
		return base
	}
	return base + "?" + q
}
