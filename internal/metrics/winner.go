// internal/metrics/winner.go
// Package metrics derives winners and deltas from benchmark aggregates.
package metrics

import (
	"math"
)

// TieTolerance is the spread below which every candidate is considered equal.
const TieTolerance = 0.001

// Polarity tells whether a smaller or a larger value is better.
type Polarity int

const (
	LowerIsBetter Polarity = iota
	HigherIsBetter
)

func (p Polarity) String() string {
	if p == HigherIsBetter {
		return "higher-is-better"
	}
	return "lower-is-better"
}

// better reports whether a beats b strictly.
func (p Polarity) better(a, b float64) bool {
	if p == HigherIsBetter {
		return a > b
	}
	return a < b
}

// Candidate is one database's value for a metric.
type Candidate struct {
	Database string  `json:"database" yaml:"database"`
	Value    float64 `json:"value" yaml:"value"`
}

// Result is the outcome of a winner selection. When AllEqual is set no
// database is named; when no candidate had a usable value both are empty.
type Result struct {
	Database   string  `json:"database,omitempty" yaml:"database,omitempty"`
	Value      float64 `json:"value" yaml:"value"`
	AllEqual   bool    `json:"all_equal" yaml:"all_equal"`
	Candidates int     `json:"candidates" yaml:"candidates"`
}

// Found reports whether a single winner was selected.
func (r Result) Found() bool { return r.Database != "" }

// String renders the result for console output.
func (r Result) String() string {
	switch {
	case r.AllEqual:
		return "all equal"
	case r.Found():
		return r.Database
	default:
		return "n/a"
	}
}

// Winner selects the best candidate under polarity. NaN values are skipped.
// If two or more candidates remain and their spread is below TieTolerance the
// result is AllEqual. Ties for best beyond that go to the earliest candidate.
func Winner(candidates []Candidate, polarity Polarity) Result {
	var (
		best   Candidate
		lo, hi float64
		n      int
	)
	for _, c := range candidates {
		if math.IsNaN(c.Value) {
			continue
		}
		if n == 0 {
			best, lo, hi = c, c.Value, c.Value
		} else {
			if polarity.better(c.Value, best.Value) {
				best = c
			}
			lo = math.Min(lo, c.Value)
			hi = math.Max(hi, c.Value)
		}
		n++
	}

	switch {
	case n == 0:
		return Result{}
	case n > 1 && hi-lo < TieTolerance:
		return Result{AllEqual: true, Value: best.Value, Candidates: n}
	default:
		return Result{Database: best.Database, Value: best.Value, Candidates: n}
	}
}

// PercentDelta is (after-before)/before*100, or 0 when before is 0.
func PercentDelta(before, after float64) float64 {
	if before == 0 {
		return 0
	}
	return (after - before) / before * 100
}

// Improvement is PercentDelta signed so that a positive value is always a
// change for the better under polarity.
func Improvement(before, after float64, polarity Polarity) float64 {
	d := PercentDelta(before, after)
	if polarity == LowerIsBetter {
		return -d
	}
	return d
}

// RelativeBar returns the width, in percent, of a bar for value when the best
// value fills the bar. The result is clamped to [0,100].
func RelativeBar(best, value float64, polarity Polarity) float64 {
	var w float64
	switch polarity {
	case HigherIsBetter:
		if best == 0 {
			return 0
		}
		w = value / best * 100
	default:
		if value == 0 {
			return 100
		}
		w = best / value * 100
	}
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	return math.Min(w, 100)
}
