// internal/report/projection.go
package report

import (
	"fmt"
	"strings"

	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/table"
	"golang.org/x/text/language"
)

// Kind selects which fixture table a projection reads.
type Kind string

const (
	KindResults     Kind = "results"
	KindSummary     Kind = "summary"
	KindQuality     Kind = "quality"
	KindScalability Kind = "scalability"
)

// Kinds lists every projectable table.
var Kinds = []Kind{KindResults, KindSummary, KindQuality, KindScalability}

// ParseKind accepts a table name in any case.
func ParseKind(value string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(value)))
	if k == "" {
		return KindResults, nil
	}
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown table %q (want results, summary, quality or scalability)", value)
}

// Query is a filter and sort request against one table.
type Query struct {
	Kind     Kind
	Search   string
	Database string
	Sort     *table.SortConfig
	Locale   language.Tag
}

// Projection is the result of a Query: the typed rows for structured output
// and their rendered cells for text output.
type Projection struct {
	Kind    Kind       `json:"kind" yaml:"kind"`
	Search  string     `json:"search,omitempty" yaml:"search,omitempty"`
	Filter  string     `json:"database" yaml:"database"`
	Sort    string     `json:"sort" yaml:"sort"`
	Total   int        `json:"total" yaml:"total"`
	Count   int        `json:"count" yaml:"count"`
	Records any        `json:"records" yaml:"records"`
	Headers []string   `json:"-" yaml:"-"`
	Cells   [][]string `json:"-" yaml:"-"`
}

// Project runs q against doc. Every table honours search, database and sort.
func Project(doc *fixture.Document, q Query) (*Projection, error) {
	if doc == nil {
		return nil, fmt.Errorf("project: document is nil")
	}
	if q.Locale == language.Und {
		q.Locale = language.English
	}
	switch q.Kind {
	case KindResults, "":
		return projectKind(KindResults, table.Results, doc.SpeedTest.RawResults, q)
	case KindSummary:
		return projectKind(KindSummary, table.Summaries, doc.SpeedTest.Summary, q)
	case KindQuality:
		return projectKind(KindQuality, table.Quality, doc.QualityRows(), q)
	case KindScalability:
		return projectKind(KindScalability, table.Scalability, doc.ScalabilityRows(), q)
	default:
		return nil, fmt.Errorf("unknown table %q", q.Kind)
	}
}

func projectKind[T any](kind Kind, schema *table.Schema[T], rows []T, q Query) (*Projection, error) {
	view, err := table.NewView(schema, rows,
		table.WithLocale(q.Locale),
		table.WithSearch(q.Search),
		table.WithDatabase(q.Database),
		table.WithSort(q.Sort),
	)
	if err != nil {
		return nil, err
	}
	out := view.Rows()
	if out == nil {
		out = []T{}
	}
	return &Projection{
		Kind:    kind,
		Search:  view.Search(),
		Filter:  view.Database(),
		Sort:    view.SortConfig().String(),
		Total:   view.Total(),
		Count:   len(out),
		Records: out,
		Headers: Titles(schema.Columns),
		Cells:   Cells(schema.Columns, out),
	}, nil
}

// Columns lists the sort keys of a table.
func Columns(kind Kind) []string {
	switch kind {
	case KindSummary:
		return table.Summaries.Columns.Keys()
	case KindQuality:
		return table.Quality.Columns.Keys()
	case KindScalability:
		return table.Scalability.Columns.Keys()
	default:
		return table.Results.Columns.Keys()
	}
}
