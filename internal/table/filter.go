// internal/table/filter.go
package table

import "strings"

// AllDatabases is the database filter value that keeps every row.
const AllDatabases = "all"

// Filter returns the rows whose search text contains term, ignoring case, and
// whose category equals database. The term is matched literally. An empty term
// or a nil search accessor matches every row; AllDatabases, an empty database
// or a nil category accessor skips the category check. Input order is kept.
func Filter[T any](rows []T, term, database string, search, category func(T) string) []T {
	needle := strings.ToLower(term)
	matchAllDB := database == "" || database == AllDatabases || category == nil
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if needle != "" && search != nil && !strings.Contains(strings.ToLower(search(row)), needle) {
			continue
		}
		if !matchAllDB && category(row) != database {
			continue
		}
		out = append(out, row)
	}
	return out
}
