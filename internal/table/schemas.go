// internal/table/schemas.go
package table

import (
	"fmt"
	"strconv"

	"github.com/mwiater/ragbench/internal/fixture"
)

// FormatMs renders a millisecond value with two decimals, e.g. "12.34ms".
func FormatMs(v float64) string { return fmt.Sprintf("%.2fms", v) }

// FormatPercent renders a percentage without decimals, e.g. "67%".
func FormatPercent(v float64) string { return fmt.Sprintf("%.0f%%", v) }

// FormatScore renders a [0,1] retrieval score with three decimals.
func FormatScore(v float64) string { return fmt.Sprintf("%.3f", v) }

func formatInt(v float64) string { return strconv.Itoa(int(v)) }

func successLabel(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

// Results is the raw results table: one row per timed query execution.
var Results = &Schema[fixture.BenchmarkRecord]{
	Name: "results",
	Columns: MustColumns(
		NumberColumn("query_num", "#", func(r fixture.BenchmarkRecord) float64 { return float64(r.QueryNum) }, formatInt),
		TextColumn("query", "Query", func(r fixture.BenchmarkRecord) string { return r.Query }),
		TextColumn("database", "Database", func(r fixture.BenchmarkRecord) string { return r.Database }),
		NumberColumn("retrieval_time", "Retrieval", func(r fixture.BenchmarkRecord) float64 { return r.RetrievalTime }, FormatMs),
		NumberColumn("llm_time", "Gen Time", func(r fixture.BenchmarkRecord) float64 { return r.LLMTime }, FormatMs),
		NumberColumn("total_time", "Total", func(r fixture.BenchmarkRecord) float64 { return r.TotalTime }, FormatMs),
		NumberColumn("num_docs", "Docs", func(r fixture.BenchmarkRecord) float64 { return float64(r.NumDocs) }, formatInt),
		TextColumn("success", "Success", func(r fixture.BenchmarkRecord) string { return successLabel(r.Success) }),
	),
	Search:   func(r fixture.BenchmarkRecord) string { return r.Query },
	Category: func(r fixture.BenchmarkRecord) string { return r.Database },
}

// Summaries is the per-database latency summary table.
var Summaries = &Schema[fixture.SummaryRecord]{
	Name: "summary",
	Columns: MustColumns(
		TextColumn("database", "Database", func(r fixture.SummaryRecord) string { return r.Database }),
		NumberColumn("mean_total_ms", "Mean Total", func(r fixture.SummaryRecord) float64 { return r.MeanTotalMs }, FormatMs),
		NumberColumn("median_total_ms", "Median Total", func(r fixture.SummaryRecord) float64 { return r.MedianTotalMs }, FormatMs),
		NumberColumn("std_total_ms", "Std Dev", func(r fixture.SummaryRecord) float64 { return r.StdTotalMs }, FormatMs),
		NumberColumn("min_total_ms", "Min", func(r fixture.SummaryRecord) float64 { return r.MinTotalMs }, FormatMs),
		NumberColumn("max_total_ms", "Max", func(r fixture.SummaryRecord) float64 { return r.MaxTotalMs }, FormatMs),
		NumberColumn("mean_retrieval_ms", "Retrieval", func(r fixture.SummaryRecord) float64 { return r.MeanRetrievalMs }, FormatMs),
		NumberColumn("mean_llm_ms", "LLM Gen", func(r fixture.SummaryRecord) float64 { return r.MeanLLMMs }, FormatMs),
		NumberColumn("success_rate", "Success Rate", func(r fixture.SummaryRecord) float64 { return r.SuccessRate() }, FormatPercent),
	),
	Search:   func(r fixture.SummaryRecord) string { return r.Database },
	Category: func(r fixture.SummaryRecord) string { return r.Database },
}

// Quality is the per-database retrieval quality table.
var Quality = &Schema[fixture.QualityRow]{
	Name: "quality",
	Columns: MustColumns(
		TextColumn("database", "Database", func(r fixture.QualityRow) string { return r.Database }),
		NumberColumn("precision", "Precision", func(r fixture.QualityRow) float64 { return r.Precision }, FormatScore),
		NumberColumn("recall", "Recall", func(r fixture.QualityRow) float64 { return r.Recall }, FormatScore),
		NumberColumn("f1", "F1", func(r fixture.QualityRow) float64 { return r.F1 }, FormatScore),
		NumberColumn("queries", "Queries", func(r fixture.QualityRow) float64 { return float64(r.Queries) }, formatInt),
	),
	Search:   func(r fixture.QualityRow) string { return r.Database },
	Category: func(r fixture.QualityRow) string { return r.Database },
}

// Scalability is the per-database, per-top_k timing table.
var Scalability = &Schema[fixture.ScalabilityRow]{
	Name: "scalability",
	Columns: MustColumns(
		TextColumn("database", "Database", func(r fixture.ScalabilityRow) string { return r.Database }),
		NumberColumn("top_k", "Top K", func(r fixture.ScalabilityRow) float64 { return float64(r.TopK) }, formatInt),
		NumberColumn("avg_time", "Avg", func(r fixture.ScalabilityRow) float64 { return r.AvgTime }, FormatMs),
		NumberColumn("std_time", "Std Dev", func(r fixture.ScalabilityRow) float64 { return r.StdTime }, FormatMs),
		NumberColumn("min_time", "Min", func(r fixture.ScalabilityRow) float64 { return r.MinTime }, FormatMs),
		NumberColumn("max_time", "Max", func(r fixture.ScalabilityRow) float64 { return r.MaxTime }, FormatMs),
	),
	Search:   func(r fixture.ScalabilityRow) string { return r.Database },
	Category: func(r fixture.ScalabilityRow) string { return r.Database },
}
