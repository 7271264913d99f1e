// internal/report/build.go
// Package report turns a benchmark document and view state into dashboards and tables.
package report

import (
	"fmt"
	"time"

	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/metrics"
	"github.com/mwiater/ragbench/internal/table"
	"golang.org/x/text/language"
)

// EmptyMessage is shown when the raw results projection has no rows.
const EmptyMessage = "No results found matching your criteria."

// Options control how a dashboard is built.
type Options struct {
	Title   string
	Dataset string
	Locale  language.Tag
	// Interactive renders header links and the filter form; BasePath is the
	// page they point at.
	Interactive bool
	BasePath    string
	Datasets    []string
}

// Header is one rendered column header.
type Header struct {
	Key     string
	Title   string
	Numeric bool
	Arrow   string
	Href    string
}

// TableData is a projected table ready for rendering.
type TableData struct {
	ID      TableID
	Title   string
	Headers []Header
	Rows    [][]string
	Total   int
}

// Empty reports whether the projection has no rows.
func (t TableData) Empty() bool { return len(t.Rows) == 0 }

// Card is one per-database summary card.
type Card struct {
	Database    string
	Winner      bool
	MeanTotal   string
	Retrieval   string
	LLM         string
	SuccessRate string
	Bar         float64
}

// Dashboard is everything the HTML template needs.
type Dashboard struct {
	Title       string
	Dataset     string
	Datasets    []string
	GeneratedAt string
	Metadata    fixture.Metadata
	BenchDate   string
	Winner      fixture.Winner
	Cards       []Card
	Databases   []string
	State       State
	Interactive bool
	BasePath    string
	Results     TableData
	Quality     TableData
	Scalability TableData
	Growth      []metrics.Growth
	Scoreboard  []metrics.Entry
}

// Build projects doc through the table engine using state.
func Build(doc *fixture.Document, state State, opts Options) (*Dashboard, error) {
	if doc == nil {
		return nil, fmt.Errorf("build dashboard: document is nil")
	}
	if opts.Title == "" {
		opts.Title = "Benchmark Results"
	}
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if state.Sorts == nil {
		state.Sorts = map[TableID]*table.SortConfig{}
	}
	if state.Database == "" {
		state.Database = table.AllDatabases
	}

	results, err := project(ResultsTable, "Detailed Results", table.Results, doc.SpeedTest.RawResults, state, opts, true)
	if err != nil {
		return nil, err
	}
	quality, err := project(QualityTable, "Retrieval Quality", table.Quality, doc.QualityRows(), state, opts, false)
	if err != nil {
		return nil, err
	}
	scalability, err := project(ScalabilityTable, "Scalability", table.Scalability, doc.ScalabilityRows(), state, opts, false)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Title:       opts.Title,
		Dataset:     opts.Dataset,
		Datasets:    opts.Datasets,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Metadata:    doc.Metadata,
		BenchDate:   benchDate(doc.Metadata.BenchmarkDate),
		Winner:      doc.SpeedTest.Winner,
		Cards:       Cards(doc),
		Databases:   summaryDatabases(doc),
		State:       state,
		Interactive: opts.Interactive,
		BasePath:    opts.BasePath,
		Results:     results,
		Quality:     quality,
		Scalability: scalability,
		Growth:      metrics.GrowthByDatabase(doc),
		Scoreboard:  metrics.Scoreboard(doc),
	}, nil
}

// project runs rows through a view and renders headers and cells. Only the
// raw results table honours the search and database filters.
func project[T any](id TableID, title string, schema *table.Schema[T], rows []T, state State, opts Options, filtered bool) (TableData, error) {
	viewOpts := []table.ViewOption{table.WithLocale(opts.Locale), table.WithSort(state.Sort(id))}
	if filtered {
		viewOpts = append(viewOpts, table.WithSearch(state.Search), table.WithDatabase(state.Database))
	}
	view, err := table.NewView(schema, rows, viewOpts...)
	if err != nil {
		return TableData{}, fmt.Errorf("%s table: %w", id, err)
	}

	cols := schema.Columns.All()
	cfg := view.SortConfig()
	headers := make([]Header, len(cols))
	for i, c := range cols {
		h := Header{Key: c.Key, Title: c.Title, Numeric: c.Numeric()}
		if cfg != nil && cfg.Key == c.Key {
			h.Arrow = "▲"
			if cfg.Direction == table.Descending {
				h.Arrow = "▼"
			}
		}
		if opts.Interactive {
			h.Href = state.Toggle(id, c.Key).Href(opts.BasePath)
		}
		headers[i] = h
	}

	return TableData{
		ID:      id,
		Title:   title,
		Headers: headers,
		Rows:    Cells(schema.Columns, view.Rows()),
		Total:   view.Total(),
	}, nil
}

// Cells renders every column of every row.
func Cells[T any](cols table.Columns[T], rows []T) [][]string {
	all := cols.All()
	out := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(all))
		for j, c := range all {
			line[j] = c.Cell(r)
		}
		out[i] = line
	}
	return out
}

// Titles returns the column titles in display order.
func Titles[T any](cols table.Columns[T]) []string {
	all := cols.All()
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = c.Title
	}
	return out
}

// Cards builds the per-database summary cards. Bars are relative to the fastest
// mean total time.
func Cards(doc *fixture.Document) []Card {
	meanTotal := metrics.SummaryMetrics[0]
	best, _ := metrics.Best(doc.SpeedTest.Summary, meanTotal)
	cards := make([]Card, 0, len(doc.SpeedTest.Summary))
	for _, s := range doc.SpeedTest.Summary {
		cards = append(cards, Card{
			Database:    s.Database,
			Winner:      s.Database == doc.SpeedTest.Winner.Database,
			MeanTotal:   table.FormatMs(s.MeanTotalMs),
			Retrieval:   table.FormatMs(s.MeanRetrievalMs),
			LLM:         table.FormatMs(s.MeanLLMMs),
			SuccessRate: table.FormatPercent(metrics.SuccessRate(s)),
			Bar:         metrics.RelativeBar(best, s.MeanTotalMs, meanTotal.Polarity),
		})
	}
	return cards
}

func summaryDatabases(doc *fixture.Document) []string {
	out := make([]string, 0, len(doc.SpeedTest.Summary))
	for _, s := range doc.SpeedTest.Summary {
		out = append(out, s.Database)
	}
	return out
}

func benchDate(raw string) string {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}
