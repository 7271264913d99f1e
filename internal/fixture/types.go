// internal/fixture/types.go
// Package fixture models the pre-computed benchmark document consumed by ragbench.
package fixture

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Document is the top-level benchmark fixture written by the offline benchmarking run.
type Document struct {
	Metadata         Metadata                       `json:"metadata" yaml:"metadata"`
	SpeedTest        SpeedTest                      `json:"speed_test" yaml:"speed_test"`
	ScalabilityTest  map[string][]ScalabilityRecord `json:"scalability_test" yaml:"scalability_test"`
	RetrievalQuality map[string]QualityRecord       `json:"retrieval_quality" yaml:"retrieval_quality"`
}

// Metadata describes how the benchmark was produced.
type Metadata struct {
	BenchmarkDate   string   `json:"benchmark_date" yaml:"benchmark_date"`
	LLMModel        string   `json:"llm_model" yaml:"llm_model"`
	EmbeddingModel  string   `json:"embedding_model" yaml:"embedding_model"`
	NumQueries      int      `json:"num_queries" yaml:"num_queries"`
	TopK            int      `json:"top_k" yaml:"top_k"`
	DatabasesTested []string `json:"databases_tested" yaml:"databases_tested"`
}

// SpeedTest groups the latency results.
type SpeedTest struct {
	Summary    []SummaryRecord   `json:"summary" yaml:"summary"`
	RawResults []BenchmarkRecord `json:"raw_results" yaml:"raw_results"`
	Winner     Winner            `json:"winner" yaml:"winner"`
}

// BenchmarkRecord is one timed query execution against one database backend.
type BenchmarkRecord struct {
	QueryNum      int     `json:"query_num" yaml:"query_num"`
	Query         string  `json:"query" yaml:"query"`
	Database      string  `json:"database" yaml:"database"`
	RetrievalTime float64 `json:"retrieval_time" yaml:"retrieval_time"`
	LLMTime       float64 `json:"llm_time" yaml:"llm_time"`
	TotalTime     float64 `json:"total_time" yaml:"total_time"`
	NumDocs       int     `json:"num_docs" yaml:"num_docs"`
	Success       bool    `json:"success" yaml:"success"`
}

// SummaryRecord is the per-database latency aggregate.
type SummaryRecord struct {
	Database          string  `json:"database" yaml:"database"`
	MeanTotalMs       float64 `json:"mean_total_ms" yaml:"mean_total_ms"`
	MedianTotalMs     float64 `json:"median_total_ms" yaml:"median_total_ms"`
	StdTotalMs        float64 `json:"std_total_ms" yaml:"std_total_ms"`
	MinTotalMs        float64 `json:"min_total_ms" yaml:"min_total_ms"`
	MaxTotalMs        float64 `json:"max_total_ms" yaml:"max_total_ms"`
	MeanRetrievalMs   float64 `json:"mean_retrieval_ms" yaml:"mean_retrieval_ms"`
	MeanLLMMs         float64 `json:"mean_llm_ms" yaml:"mean_llm_ms"`
	SuccessfulQueries FlexInt `json:"successful_queries" yaml:"successful_queries"`
	TotalQueries      FlexInt `json:"total_queries" yaml:"total_queries"`
}

// SuccessRate is the percentage of successful queries, 0 when no queries ran.
func (s SummaryRecord) SuccessRate() float64 {
	if s.TotalQueries <= 0 {
		return 0
	}
	return float64(s.SuccessfulQueries) / float64(s.TotalQueries) * 100
}

// Winner is the overall speed winner as declared by the benchmarking run.
type Winner struct {
	Database                string  `json:"database" yaml:"database"`
	SpeedImprovementPercent float64 `json:"speed_improvement_percent" yaml:"speed_improvement_percent"`
	AvgRetrievalMs          float64 `json:"avg_retrieval_ms" yaml:"avg_retrieval_ms"`
}

// ScalabilityRecord holds timings for one top_k setting.
type ScalabilityRecord struct {
	TopK    int     `json:"top_k" yaml:"top_k"`
	AvgTime float64 `json:"avg_time" yaml:"avg_time"`
	StdTime float64 `json:"std_time" yaml:"std_time"`
	MinTime float64 `json:"min_time" yaml:"min_time"`
	MaxTime float64 `json:"max_time" yaml:"max_time"`
}

// QualityRecord holds aggregate and per-query retrieval quality for one database.
type QualityRecord struct {
	Precision float64        `json:"precision" yaml:"precision"`
	Recall    float64        `json:"recall" yaml:"recall"`
	F1        float64        `json:"f1" yaml:"f1"`
	PerQuery  []QueryQuality `json:"per_query" yaml:"per_query"`
}

// QueryQuality is the retrieval quality of a single query.
type QueryQuality struct {
	QueryNum          int     `json:"query_num" yaml:"query_num"`
	Query             string  `json:"query" yaml:"query"`
	Precision         float64 `json:"precision" yaml:"precision"`
	Recall            float64 `json:"recall" yaml:"recall"`
	F1                float64 `json:"f1" yaml:"f1"`
	RelevantRetrieved int     `json:"relevant_retrieved" yaml:"relevant_retrieved"`
	TotalRetrieved    int     `json:"total_retrieved" yaml:"total_retrieved"`
}

// QualityRow is a flattened QualityRecord keyed by database.
type QualityRow struct {
	Database  string  `json:"database" yaml:"database"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
	Queries   int     `json:"queries" yaml:"queries"`
}

// ScalabilityRow is a flattened ScalabilityRecord keyed by database.
type ScalabilityRow struct {
	Database string  `json:"database" yaml:"database"`
	TopK     int     `json:"top_k" yaml:"top_k"`
	AvgTime  float64 `json:"avg_time" yaml:"avg_time"`
	StdTime  float64 `json:"std_time" yaml:"std_time"`
	MinTime  float64 `json:"min_time" yaml:"min_time"`
	MaxTime  float64 `json:"max_time" yaml:"max_time"`
}

// FlexInt decodes integers that some benchmark writers emit as strings.
type FlexInt int

// UnmarshalJSON accepts 12, 12.0 and "12".
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = 0
			return nil
		}
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*f = FlexInt(n)
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*f = FlexInt(int(v))
	return nil
}

// Databases returns every database named by the document: the tested list first,
// then any other database found in summaries, quality or scalability maps.
func (d *Document) Databases() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, name := range d.Metadata.DatabasesTested {
		add(name)
	}
	for _, s := range d.SpeedTest.Summary {
		add(s.Database)
	}
	var extra []string
	for name := range d.RetrievalQuality {
		extra = append(extra, name)
	}
	for name := range d.ScalabilityTest {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		add(name)
	}
	return out
}

// SummaryFor returns the summary record for a database.
func (d *Document) SummaryFor(database string) (SummaryRecord, bool) {
	for _, s := range d.SpeedTest.Summary {
		if s.Database == database {
			return s, true
		}
	}
	return SummaryRecord{}, false
}

// QualityRows flattens the quality mapping in database order.
func (d *Document) QualityRows() []QualityRow {
	rows := make([]QualityRow, 0, len(d.RetrievalQuality))
	for _, name := range d.Databases() {
		q, ok := d.RetrievalQuality[name]
		if !ok {
			continue
		}
		rows = append(rows, QualityRow{
			Database:  name,
			Precision: q.Precision,
			Recall:    q.Recall,
			F1:        q.F1,
			Queries:   len(q.PerQuery),
		})
	}
	return rows
}

// ScalabilityRows flattens the scalability mapping in database order, keeping
// the fixture order of top_k entries within a database.
func (d *Document) ScalabilityRows() []ScalabilityRow {
	var rows []ScalabilityRow
	for _, name := range d.Databases() {
		for _, r := range d.ScalabilityTest[name] {
			rows = append(rows, ScalabilityRow{
				Database: name,
				TopK:     r.TopK,
				AvgTime:  r.AvgTime,
				StdTime:  r.StdTime,
				MinTime:  r.MinTime,
				MaxTime:  r.MaxTime,
			})
		}
	}
	return rows
}
