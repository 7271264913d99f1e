// internal/metrics/compare.go
package metrics

import (
	"math"

	"github.com/mwiater/ragbench/internal/fixture"
)

// Delta is the change of one metric for one database between two datasets.
type Delta struct {
	Database     string  `json:"database" yaml:"database"`
	Metric       string  `json:"metric" yaml:"metric"`
	Label        string  `json:"label" yaml:"label"`
	Unit         string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Polarity     string  `json:"polarity" yaml:"polarity"`
	Before       float64 `json:"before" yaml:"before"`
	After        float64 `json:"after" yaml:"after"`
	PercentDelta float64 `json:"percent_delta" yaml:"percent_delta"`
	Improvement  float64 `json:"improvement" yaml:"improvement"`
	Better       bool    `json:"better" yaml:"better"`
}

// Status is "better", "worse" or "same"; changes below TieTolerance are "same".
func (d Delta) Status() string {
	switch {
	case math.Abs(d.After-d.Before) < TieTolerance:
		return "same"
	case d.Better:
		return "better"
	default:
		return "worse"
	}
}

// Comparison holds the deltas between two datasets.
type Comparison struct {
	Deltas     []Delta  `json:"deltas" yaml:"deltas"`
	OnlyBefore []string `json:"only_before,omitempty" yaml:"only_before,omitempty"`
	OnlyAfter  []string `json:"only_after,omitempty" yaml:"only_after,omitempty"`
}

func deltaFor[T any](database string, before, after T, m Metric[T]) Delta {
	b, a := m.Value(before), m.Value(after)
	imp := Improvement(b, a, m.Polarity)
	return Delta{
		Database:     database,
		Metric:       m.Name,
		Label:        m.Label,
		Unit:         m.Unit,
		Polarity:     m.Polarity.String(),
		Before:       b,
		After:        a,
		PercentDelta: PercentDelta(b, a),
		Improvement:  imp,
		Better:       math.Abs(a-b) >= TieTolerance && m.Polarity.better(a, b),
	}
}

// Compare computes per-metric deltas for every database present in both
// documents, in the after document's database order.
func Compare(before, after *fixture.Document) Comparison {
	var cmp Comparison
	if before == nil || after == nil {
		return cmp
	}

	beforeQuality := indexQuality(before.QualityRows())
	afterQuality := indexQuality(after.QualityRows())

	inBefore := make(map[string]struct{})
	for _, db := range before.Databases() {
		inBefore[db] = struct{}{}
	}
	inAfter := make(map[string]struct{})

	for _, db := range after.Databases() {
		inAfter[db] = struct{}{}
		if _, ok := inBefore[db]; !ok {
			cmp.OnlyAfter = append(cmp.OnlyAfter, db)
			continue
		}
		bs, okB := before.SummaryFor(db)
		as, okA := after.SummaryFor(db)
		if okB && okA {
			for _, m := range SummaryMetrics {
				cmp.Deltas = append(cmp.Deltas, deltaFor(db, bs, as, m))
			}
		}
		bq, okB := beforeQuality[db]
		aq, okA := afterQuality[db]
		if okB && okA {
			for _, m := range QualityMetrics {
				cmp.Deltas = append(cmp.Deltas, deltaFor(db, bq, aq, m))
			}
		}
	}
	for _, db := range before.Databases() {
		if _, ok := inAfter[db]; !ok {
			cmp.OnlyBefore = append(cmp.OnlyBefore, db)
		}
	}
	return cmp
}

func indexQuality(rows []fixture.QualityRow) map[string]fixture.QualityRow {
	out := make(map[string]fixture.QualityRow, len(rows))
	for _, r := range rows {
		out[r.Database] = r
	}
	return out
}
