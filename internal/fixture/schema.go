// internal/fixture/schema.go
package fixture

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaError lists every JSON Schema violation found in a fixture.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("fixture failed schema validation: %s", strings.Join(e.Violations, "; "))
}

func nonNegative() map[string]any {
	return map[string]any{"type": "number", "minimum": 0}
}

func count() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}

func unitInterval() map[string]any {
	return map[string]any{"type": "number", "minimum": 0, "maximum": 1}
}

// DocumentSchema returns the JSON Schema a fixture must satisfy before it is decoded.
func DocumentSchema() map[string]any {
	benchmarkRecord := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query_num":      count(),
			"query":          map[string]any{"type": "string"},
			"database":       map[string]any{"type": "string", "minLength": 1},
			"retrieval_time": nonNegative(),
			"llm_time":       nonNegative(),
			"total_time":     nonNegative(),
			"num_docs":       count(),
			"success":        map[string]any{"type": "boolean"},
		},
		"required": []string{"query_num", "query", "database", "retrieval_time", "llm_time", "total_time"},
	}

	summaryRecord := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"database":          map[string]any{"type": "string", "minLength": 1},
			"mean_total_ms":     nonNegative(),
			"median_total_ms":   nonNegative(),
			"std_total_ms":      nonNegative(),
			"min_total_ms":      nonNegative(),
			"max_total_ms":      nonNegative(),
			"mean_retrieval_ms": nonNegative(),
			"mean_llm_ms":       nonNegative(),
			"successful_queries": map[string]any{
				"type": []string{"integer", "string"},
			},
			"total_queries": count(),
		},
		"required": []string{"database", "mean_total_ms", "mean_retrieval_ms", "mean_llm_ms"},
	}

	scalabilityRecord := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"top_k":    map[string]any{"type": "integer", "minimum": 1},
			"avg_time": nonNegative(),
			"std_time": nonNegative(),
			"min_time": nonNegative(),
			"max_time": nonNegative(),
		},
		"required": []string{"top_k", "avg_time"},
	}

	queryQuality := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query_num":          count(),
			"query":              map[string]any{"type": "string"},
			"precision":          unitInterval(),
			"recall":             unitInterval(),
			"f1":                 unitInterval(),
			"relevant_retrieved": count(),
			"total_retrieved":    count(),
		},
	}

	qualityRecord := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"precision": unitInterval(),
			"recall":    unitInterval(),
			"f1":        unitInterval(),
			"per_query": map[string]any{"type": "array", "items": queryQuality},
		},
		"required": []string{"precision", "recall", "f1"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"benchmark_date":  map[string]any{"type": "string"},
					"llm_model":       map[string]any{"type": "string"},
					"embedding_model": map[string]any{"type": "string"},
					"num_queries":     count(),
					"top_k":           count(),
					"databases_tested": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required": []string{"databases_tested"},
			},
			"speed_test": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"summary":     map[string]any{"type": "array", "items": summaryRecord},
					"raw_results": map[string]any{"type": "array", "items": benchmarkRecord},
					"winner": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"database":                  map[string]any{"type": "string"},
							"speed_improvement_percent": map[string]any{"type": "number"},
							"avg_retrieval_ms":          nonNegative(),
						},
					},
				},
				"required": []string{"summary", "raw_results"},
			},
			"scalability_test": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "array", "items": scalabilityRecord},
			},
			"retrieval_quality": map[string]any{
				"type":                 "object",
				"additionalProperties": qualityRecord,
			},
		},
		"required": []string{"metadata", "speed_test", "scalability_test", "retrieval_quality"},
	}
}

// validateSchema checks raw fixture bytes against DocumentSchema.
func validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(DocumentSchema())
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return &SchemaError{Violations: violations}
}
