// internal/commands/helpers.go
package ragbench

import (
	"fmt"
	"strings"

	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/logging"
	"github.com/mwiater/ragbench/internal/table"
)

// viewFlags are the filter and sort flags shared by report and table.
type viewFlags struct {
	search    string
	database  string
	sortKey   string
	direction string
}

// sortConfig returns the sort requested on the command line, falling back to
// the configured default sort when withDefault is set.
func (f viewFlags) sortConfig(withDefault bool) (*table.SortConfig, error) {
	key := strings.TrimSpace(f.sortKey)
	if key == "" {
		if withDefault {
			return config().DefaultSortConfig(), nil
		}
		return nil, nil
	}
	dir, err := table.ParseDirection(f.direction)
	if err != nil {
		return nil, err
	}
	return &table.SortConfig{Key: key, Direction: dir}, nil
}

// loadFixture loads path, or the configured fixture when path is empty.
func loadFixture(path string) (*fixture.Document, string, error) {
	if strings.TrimSpace(path) == "" {
		path = config().FixturePath()
	}
	doc, err := fixture.Load(path)
	if err != nil {
		return nil, path, err
	}
	logging.LogDebug("loaded fixture %s: %d raw results", path, len(doc.SpeedTest.RawResults))
	return doc, path, nil
}

func formatValue(v float64, unit string) string {
	switch unit {
	case "ms":
		return table.FormatMs(v)
	case "%":
		return table.FormatPercent(v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
