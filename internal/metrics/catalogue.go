// internal/metrics/catalogue.go
package metrics

import (
	"math"
	"strconv"

	"github.com/mwiater/ragbench/internal/fixture"
)

// Metric names one comparable value of a record type and how to judge it.
type Metric[T any] struct {
	Name     string
	Label    string
	Unit     string
	Polarity Polarity
	Database func(T) string
	Value    func(T) float64
}

func summaryDB(s fixture.SummaryRecord) string { return s.Database }
func qualityDB(q fixture.QualityRow) string    { return q.Database }

// SuccessRate is the share of successful queries in percent, 0 when none ran.
func SuccessRate(s fixture.SummaryRecord) float64 { return s.SuccessRate() }

// SummaryMetrics are the latency and reliability metrics of a speed summary.
var SummaryMetrics = []Metric[fixture.SummaryRecord]{
	{Name: "mean_total_ms", Label: "Mean Total", Unit: "ms", Polarity: LowerIsBetter, Database: summaryDB,
		Value: func(s fixture.SummaryRecord) float64 { return s.MeanTotalMs }},
	{Name: "median_total_ms", Label: "Median Total", Unit: "ms", Polarity: LowerIsBetter, Database: summaryDB,
		Value: func(s fixture.SummaryRecord) float64 { return s.MedianTotalMs }},
	{Name: "std_total_ms", Label: "Std Dev Total", Unit: "ms", Polarity: LowerIsBetter, Database: summaryDB,
		Value: func(s fixture.SummaryRecord) float64 { return s.StdTotalMs }},
	{Name: "mean_retrieval_ms", Label: "Mean Retrieval", Unit: "ms", Polarity: LowerIsBetter, Database: summaryDB,
		Value: func(s fixture.SummaryRecord) float64 { return s.MeanRetrievalMs }},
	{Name: "mean_llm_ms", Label: "Mean LLM Gen", Unit: "ms", Polarity: LowerIsBetter, Database: summaryDB,
		Value: func(s fixture.SummaryRecord) float64 { return s.MeanLLMMs }},
	{Name: "success_rate", Label: "Success Rate", Unit: "%", Polarity: HigherIsBetter, Database: summaryDB,
		Value: SuccessRate},
}

// QualityMetrics are the retrieval quality metrics.
var QualityMetrics = []Metric[fixture.QualityRow]{
	{Name: "precision", Label: "Precision", Polarity: HigherIsBetter, Database: qualityDB,
		Value: func(q fixture.QualityRow) float64 { return q.Precision }},
	{Name: "recall", Label: "Recall", Polarity: HigherIsBetter, Database: qualityDB,
		Value: func(q fixture.QualityRow) float64 { return q.Recall }},
	{Name: "f1", Label: "F1", Polarity: HigherIsBetter, Database: qualityDB,
		Value: func(q fixture.QualityRow) float64 { return q.F1 }},
}

// Candidates extracts metric values from records in input order.
func Candidates[T any](records []T, metric Metric[T]) []Candidate {
	out := make([]Candidate, 0, len(records))
	for _, r := range records {
		out = append(out, Candidate{Database: metric.Database(r), Value: metric.Value(r)})
	}
	return out
}

// AggregateWinner selects the best record for metric.
func AggregateWinner[T any](records []T, metric Metric[T]) Result {
	return Winner(Candidates(records, metric), metric.Polarity)
}

// Best returns the best value of metric over records, ignoring the tie policy
// and NaN values. ok is false when no value was usable.
func Best[T any](records []T, metric Metric[T]) (best float64, ok bool) {
	for _, r := range records {
		v := metric.Value(r)
		if math.IsNaN(v) {
			continue
		}
		if !ok || metric.Polarity.better(v, best) {
			best, ok = v, true
		}
	}
	return best, ok
}

// Entry is one row of a scoreboard.
type Entry struct {
	Section    string      `json:"section" yaml:"section"`
	Metric     string      `json:"metric" yaml:"metric"`
	Label      string      `json:"label" yaml:"label"`
	Unit       string      `json:"unit,omitempty" yaml:"unit,omitempty"`
	Polarity   string      `json:"polarity" yaml:"polarity"`
	Winner     Result      `json:"winner" yaml:"winner"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

func entryFor[T any](section string, records []T, m Metric[T]) Entry {
	cands := Candidates(records, m)
	return Entry{
		Section:    section,
		Metric:     m.Name,
		Label:      m.Label,
		Unit:       m.Unit,
		Polarity:   m.Polarity.String(),
		Winner:     Winner(cands, m.Polarity),
		Candidates: cands,
	}
}

// Scoreboard computes the winner of every catalogued metric, followed by the
// fastest database at the largest tested top_k.
func Scoreboard(doc *fixture.Document) []Entry {
	if doc == nil {
		return nil
	}
	var entries []Entry
	for _, m := range SummaryMetrics {
		entries = append(entries, entryFor("speed", doc.SpeedTest.Summary, m))
	}
	quality := doc.QualityRows()
	for _, m := range QualityMetrics {
		entries = append(entries, entryFor("quality", quality, m))
	}
	if e, ok := scalabilityEntry(doc); ok {
		entries = append(entries, e)
	}
	return entries
}

func scalabilityEntry(doc *fixture.Document) (Entry, bool) {
	rows := doc.ScalabilityRows()
	maxK := 0
	for _, r := range rows {
		if r.TopK > maxK {
			maxK = r.TopK
		}
	}
	if maxK == 0 {
		return Entry{}, false
	}
	var cands []Candidate
	for _, r := range rows {
		if r.TopK == maxK {
			cands = append(cands, Candidate{Database: r.Database, Value: r.AvgTime})
		}
	}
	return Entry{
		Section:    "scalability",
		Metric:     "avg_time",
		Label:      "Avg Time @ top_k " + strconv.Itoa(maxK),
		Unit:       "ms",
		Polarity:   LowerIsBetter.String(),
		Winner:     Winner(cands, LowerIsBetter),
		Candidates: cands,
	}, true
}

// Growth is how much avg_time of one database rose across its tested top_k range.
type Growth struct {
	Database string  `json:"database" yaml:"database"`
	FromTopK int     `json:"from_top_k" yaml:"from_top_k"`
	ToTopK   int     `json:"to_top_k" yaml:"to_top_k"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// GrowthByDatabase reports ScalabilityGrowth for every database with at least
// two distinct top_k values, in Document.Databases order.
func GrowthByDatabase(doc *fixture.Document) []Growth {
	if doc == nil {
		return nil
	}
	var out []Growth
	for _, name := range doc.Databases() {
		records := doc.ScalabilityTest[name]
		lo, hi, ok := topKRange(records)
		if !ok {
			continue
		}
		growth, _ := ScalabilityGrowth(records)
		out = append(out, Growth{Database: name, FromTopK: lo.TopK, ToTopK: hi.TopK, Percent: growth})
	}
	return out
}

func topKRange(records []fixture.ScalabilityRecord) (lo, hi fixture.ScalabilityRecord, ok bool) {
	if len(records) == 0 {
		return lo, hi, false
	}
	lo, hi = records[0], records[0]
	for _, r := range records[1:] {
		if r.TopK < lo.TopK {
			lo = r
		}
		if r.TopK > hi.TopK {
			hi = r
		}
	}
	return lo, hi, lo.TopK != hi.TopK
}

// ScalabilityGrowth is the PercentDelta of avg_time from the smallest to the
// largest top_k. ok is false when fewer than two distinct top_k values exist.
func ScalabilityGrowth(records []fixture.ScalabilityRecord) (growth float64, ok bool) {
	lo, hi, ok := topKRange(records)
	if !ok {
		return 0, false
	}
	return PercentDelta(lo.AvgTime, hi.AvgTime), true
}
