// internal/fixture/load.go
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvariant is wrapped by every invariant violation returned from Check.
var ErrInvariant = errors.New("fixture invariant violated")

// timeSlackMs absorbs rounding in writers that round each timing independently.
const timeSlackMs = 0.01

// Load reads, validates and decodes the fixture at path.
func Load(path string) (*Document, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("fixture path is required")
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", trimmed, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", trimmed, err)
	}
	return doc, nil
}

// Parse validates and decodes fixture bytes, then checks invariants.
func Parse(data []byte) (*Document, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if _, err := Check(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Check verifies the cross-reference invariants of a decoded document. Hard
// violations are joined into the returned error; soft expectations that do not
// hold are returned as warnings.
func Check(doc *Document) ([]string, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrInvariant)
	}

	summaries := make(map[string]struct{}, len(doc.SpeedTest.Summary))
	for _, s := range doc.SpeedTest.Summary {
		summaries[s.Database] = struct{}{}
	}

	var (
		errs     []error
		warnings []string
		missing  = make(map[string]struct{})
	)

	for i, r := range doc.SpeedTest.RawResults {
		if _, ok := summaries[r.Database]; !ok {
			if _, reported := missing["summary:"+r.Database]; !reported {
				missing["summary:"+r.Database] = struct{}{}
				errs = append(errs, fmt.Errorf("%w: database %q in raw_results has no summary", ErrInvariant, r.Database))
			}
		}
		if _, ok := doc.RetrievalQuality[r.Database]; !ok {
			if _, reported := missing["quality:"+r.Database]; !reported {
				missing["quality:"+r.Database] = struct{}{}
				errs = append(errs, fmt.Errorf("%w: database %q in raw_results has no retrieval_quality entry", ErrInvariant, r.Database))
			}
		}
		if r.TotalTime+timeSlackMs < r.RetrievalTime+r.LLMTime {
			warnings = append(warnings, fmt.Sprintf("raw_results[%d] (%s #%d): total_time %.2fms is below retrieval_time+llm_time %.2fms",
				i, r.Database, r.QueryNum, r.TotalTime, r.RetrievalTime+r.LLMTime))
		}
	}

	for name, q := range doc.RetrievalQuality {
		for i, pq := range q.PerQuery {
			if pq.RelevantRetrieved > pq.TotalRetrieved {
				errs = append(errs, fmt.Errorf("%w: retrieval_quality[%s].per_query[%d]: relevant_retrieved %d exceeds total_retrieved %d",
					ErrInvariant, name, i, pq.RelevantRetrieved, pq.TotalRetrieved))
			}
		}
	}

	if w := doc.SpeedTest.Winner.Database; w != "" {
		if _, ok := summaries[w]; !ok {
			warnings = append(warnings, fmt.Sprintf("declared winner %q has no summary record", w))
		}
	}

	return warnings, errors.Join(errs...)
}

// Name derives a dataset name from a fixture path.
func Name(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
