package table

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/mwiater/ragbench/internal/fixture"
	"golang.org/x/text/language"
)

func scenarioRecords() []fixture.BenchmarkRecord {
	return []fixture.BenchmarkRecord{
		{QueryNum: 1, Query: "find cats", Database: "A", TotalTime: 10},
		{QueryNum: 2, Query: "find dogs", Database: "B", TotalTime: 5},
		{QueryNum: 3, Query: "find Cats", Database: "A", TotalTime: 20},
	}
}

func queryNums(rows []fixture.BenchmarkRecord) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.QueryNum
	}
	return out
}

func mustSort(t *testing.T, rows []fixture.BenchmarkRecord, key string, dir Direction) []fixture.BenchmarkRecord {
	t.Helper()
	out, err := Results.Sort(rows, &SortConfig{Key: key, Direction: dir}, language.English)
	if err != nil {
		t.Fatalf("sort %s: %v", key, err)
	}
	return out
}

func TestEndToEndScenario(t *testing.T) {
	filtered := Results.Filter(scenarioRecords(), "cat", AllDatabases)
	if got := queryNums(filtered); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("filter: got %v, want [1 3]", got)
	}
	sorted := mustSort(t, filtered, "total_time", Ascending)
	if got := queryNums(sorted); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("sort: got %v, want [1 3]", got)
	}
	if sorted[0].TotalTime != 10 || sorted[1].TotalTime != 20 {
		t.Fatalf("unexpected totals: %v, %v", sorted[0].TotalTime, sorted[1].TotalTime)
	}
}

func TestEmptyInput(t *testing.T) {
	if got := Results.Filter(nil, "x", AllDatabases); len(got) != 0 {
		t.Fatalf("filter of empty input: %v", got)
	}
	if got := mustSort(t, []fixture.BenchmarkRecord{}, "total_time", Ascending); len(got) != 0 {
		t.Fatalf("sort of empty input: %v", got)
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	rows := []fixture.BenchmarkRecord{
		{QueryNum: 1, Query: "What is (a) vector DB?", Database: "Qdrant"},
		{QueryNum: 2, Query: "what is a vector db", Database: "ChromaDB"},
		{QueryNum: 3, Query: "HNSW .* index", Database: "Qdrant"},
		{QueryNum: 4, Query: "İstanbul", Database: "pgvector"},
	}

	tests := []struct {
		name     string
		term     string
		database string
		want     []int
	}{
		{name: "empty term keeps all", term: "", database: AllDatabases, want: []int{1, 2, 3, 4}},
		{name: "case insensitive", term: "VECTOR", database: AllDatabases, want: []int{1, 2}},
		{name: "database equality", term: "", database: "Qdrant", want: []int{1, 3}},
		{name: "both filters", term: "vector", database: "Qdrant", want: []int{1}},
		{name: "literal parens", term: "(a)", database: AllDatabases, want: []int{1}},
		{name: "literal regex chars", term: ".*", database: AllDatabases, want: []int{3}},
		{name: "database is exact", term: "", database: "qdrant", want: []int{}},
		{name: "empty database means all", term: "what", database: "", want: []int{1, 2}},
		{name: "no matches", term: "zzz", database: AllDatabases, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queryNums(Results.Filter(rows, tt.term, tt.database))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterIdempotentAndOrderIndependent(t *testing.T) {
	doc, err := fixture.Load("../fixture/testdata/sample.json")
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	rows := doc.SpeedTest.RawResults

	for _, term := range []string{"", "what", "HNSW", "x"} {
		for _, db := range []string{AllDatabases, "Qdrant", "pgvector", "missing"} {
			once := Results.Filter(rows, term, db)
			twice := Results.Filter(once, term, db)
			if !slices.Equal(queryNums(once), queryNums(twice)) || len(once) != len(twice) {
				t.Fatalf("filter(%q,%q) not idempotent", term, db)
			}

			searchFirst := Results.Filter(Results.Filter(rows, term, AllDatabases), "", db)
			dbFirst := Results.Filter(Results.Filter(rows, "", db), term, AllDatabases)
			if !slices.EqualFunc(searchFirst, dbFirst, func(a, b fixture.BenchmarkRecord) bool { return a == b }) {
				t.Fatalf("filter(%q,%q) depends on composition order", term, db)
			}
		}
	}
}

func TestSortStability(t *testing.T) {
	rows := []fixture.BenchmarkRecord{
		{QueryNum: 1, Database: "B", TotalTime: 5},
		{QueryNum: 2, Database: "A", TotalTime: 5},
		{QueryNum: 3, Database: "B", TotalTime: 1},
		{QueryNum: 4, Database: "A", TotalTime: 5},
		{QueryNum: 5, Database: "B", TotalTime: 1},
	}

	asc := mustSort(t, rows, "total_time", Ascending)
	if got := queryNums(asc); !slices.Equal(got, []int{3, 5, 1, 2, 4}) {
		t.Fatalf("ascending: got %v", got)
	}
	desc := mustSort(t, rows, "total_time", Descending)
	if got := queryNums(desc); !slices.Equal(got, []int{1, 2, 4, 3, 5}) {
		t.Fatalf("descending: got %v", got)
	}
	byDB := mustSort(t, rows, "database", Descending)
	if got := queryNums(byDB); !slices.Equal(got, []int{1, 3, 5, 2, 4}) {
		t.Fatalf("descending text: got %v", got)
	}
	again := mustSort(t, mustSort(t, rows, "database", Ascending), "database", Ascending)
	if got := queryNums(again); !slices.Equal(got, []int{2, 4, 1, 3, 5}) {
		t.Fatalf("repeated sort reordered ties: got %v", got)
	}
}

func TestSortRoundTrip(t *testing.T) {
	rows := []fixture.BenchmarkRecord{
		{QueryNum: 1, Query: "beta", RetrievalTime: 3.5},
		{QueryNum: 2, Query: "Alpha", RetrievalTime: 1.25},
		{QueryNum: 3, Query: "gamma", RetrievalTime: 9},
		{QueryNum: 4, Query: "delta", RetrievalTime: 0},
	}
	for _, key := range []string{"query", "retrieval_time", "query_num"} {
		asc := mustSort(t, rows, key, Ascending)
		slices.Reverse(asc)
		desc := mustSort(t, rows, key, Descending)
		if !slices.Equal(queryNums(asc), queryNums(desc)) {
			t.Fatalf("%s: reversed ascending %v != descending %v", key, queryNums(asc), queryNums(desc))
		}
	}
}

func TestSortTextUsesCollation(t *testing.T) {
	rows := []fixture.BenchmarkRecord{
		{QueryNum: 1, Query: "banana"},
		{QueryNum: 2, Query: "Cherry"},
		{QueryNum: 3, Query: "apple"},
		{QueryNum: 4, Query: "Éclair"},
		{QueryNum: 5, Query: "fig"},
	}
	got := queryNums(mustSort(t, rows, "query", Ascending))
	// Byte order would give [2 3 1 5 4].
	want := []int{3, 1, 2, 4, 5}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSortNumbersNotLexical(t *testing.T) {
	rows := []fixture.BenchmarkRecord{
		{QueryNum: 10, TotalTime: 100},
		{QueryNum: 9, TotalTime: 9},
		{QueryNum: 2, TotalTime: 20},
	}
	if got := queryNums(mustSort(t, rows, "query_num", Ascending)); !slices.Equal(got, []int{2, 9, 10}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortNaNIsDeterministic(t *testing.T) {
	rows := []fixture.BenchmarkRecord{
		{QueryNum: 1, TotalTime: 3},
		{QueryNum: 2, TotalTime: math.NaN()},
		{QueryNum: 3, TotalTime: 1},
	}
	if got := queryNums(mustSort(t, rows, "total_time", Ascending)); !slices.Equal(got, []int{2, 3, 1}) {
		t.Fatalf("got %v", got)
	}
}

func TestSortWithoutConfigKeepsOrder(t *testing.T) {
	rows := scenarioRecords()
	for _, cfg := range []*SortConfig{nil, {Key: ""}} {
		got, err := Results.Sort(rows, cfg, language.English)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(queryNums(got), []int{1, 2, 3}) {
			t.Fatalf("order changed: %v", queryNums(got))
		}
	}
}

func TestSortUnknownKey(t *testing.T) {
	_, err := Results.Sort(scenarioRecords(), &SortConfig{Key: "nope"}, language.English)
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	rows := scenarioRecords()
	_ = mustSort(t, rows, "total_time", Descending)
	if !slices.Equal(queryNums(rows), []int{1, 2, 3}) {
		t.Fatalf("input mutated: %v", queryNums(rows))
	}
}

func TestToggleCycle(t *testing.T) {
	var cfg *SortConfig
	var dirs []Direction
	for i := 0; i < 3; i++ {
		cfg = Toggle(cfg, "total_time")
		if cfg.Key != "total_time" {
			t.Fatalf("unexpected key %q", cfg.Key)
		}
		dirs = append(dirs, cfg.Direction)
	}
	if !slices.Equal(dirs, []Direction{Ascending, Descending, Ascending}) {
		t.Fatalf("got %v", dirs)
	}

	k := Toggle(Toggle(nil, "k"), "k")
	if k.Direction != Descending {
		t.Fatalf("expected k descending, got %v", k)
	}
	j := Toggle(k, "j")
	if j.Key != "j" || j.Direction != Ascending {
		t.Fatalf("expected j ascending, got %v", j)
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{"": Ascending, "asc": Ascending, " ASC ": Ascending, "ascending": Ascending, "desc": Descending, "Descending": Descending}
	for in, want := range tests {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Fatalf("ParseDirection(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Fatal("expected error for invalid direction")
	}
	if Descending.String() != "desc" || Ascending.String() != "asc" {
		t.Fatal("unexpected direction strings")
	}
}

func TestNewColumnsRejectsMixedKinds(t *testing.T) {
	type row struct {
		name  string
		score float64
	}
	name := func(r row) string { return r.name }
	score := func(r row) float64 { return r.score }

	tests := []struct {
		name string
		cols []Column[row]
	}{
		{name: "text without accessor", cols: []Column[row]{{Key: "a", Kind: KindText}}},
		{name: "text with number accessor", cols: []Column[row]{{Key: "a", Kind: KindText, Text: name, Number: score}}},
		{name: "number with text accessor", cols: []Column[row]{{Key: "a", Kind: KindNumber, Text: name}}},
		{name: "unknown kind", cols: []Column[row]{{Key: "a", Kind: Kind(7), Text: name}}},
		{name: "missing key", cols: []Column[row]{TextColumn("", "A", name)}},
		{name: "duplicate key", cols: []Column[row]{TextColumn("a", "A", name), NumberColumn("a", "A", score, nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewColumns(tt.cols...); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	cols, err := NewColumns(TextColumn("name", "Name", name), NumberColumn("score", "Score", score, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(cols.Keys(), []string{"name", "score"}) {
		t.Fatalf("keys: %v", cols.Keys())
	}
	col, err := cols.Lookup("score")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got := col.Cell(row{score: 1.5}); got != "1.5" {
		t.Fatalf("cell: %q", got)
	}
	if _, err := cols.Lookup("missing"); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestSchemasCells(t *testing.T) {
	rec := fixture.BenchmarkRecord{QueryNum: 7, Query: "q", Database: "Qdrant", RetrievalTime: 8.4, TotalTime: 1178.75, NumDocs: 5, Success: true}
	want := map[string]string{
		"query_num":      "7",
		"database":       "Qdrant",
		"retrieval_time": "8.40ms",
		"total_time":     "1178.75ms",
		"num_docs":       "5",
		"success":        "yes",
	}
	for key, w := range want {
		col, err := Results.Columns.Lookup(key)
		if err != nil {
			t.Fatalf("lookup %s: %v", key, err)
		}
		if got := col.Cell(rec); got != w {
			t.Fatalf("%s: got %q, want %q", key, got, w)
		}
	}

	sum := fixture.SummaryRecord{Database: "pgvector", SuccessfulQueries: 2, TotalQueries: 3}
	col, _ := Summaries.Columns.Lookup("success_rate")
	if got := col.Cell(sum); got != "67%" {
		t.Fatalf("success rate cell: %q", got)
	}

	q, _ := Quality.Columns.Lookup("f1")
	if got := q.Cell(fixture.QualityRow{F1: 0.8003}); got != "0.800" {
		t.Fatalf("f1 cell: %q", got)
	}
	if Scalability.Columns.Len() != 6 {
		t.Fatalf("scalability columns: %d", Scalability.Columns.Len())
	}
}
