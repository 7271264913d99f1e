// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mwiater/ragbench/internal/table"
	"golang.org/x/text/language"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the configuration file location checked when the default is missing.
	legacyConfigPath = "config.json"
	// defaultFixturePath is the benchmark fixture read when none is configured.
	defaultFixturePath = "data/benchmark_results.json"
	// defaultReportPath is where the static dashboard is written.
	defaultReportPath = "reports/benchmark-report.html"
	defaultListenAddr = ":8080"
	defaultLocale     = "en"
)

// Config represents the top-level application configuration.
type Config struct {
	Fixture          string   `json:"fixture,omitempty"`
	Datasets         []string `json:"datasets,omitempty"`
	ReportPath       string   `json:"reportPath,omitempty"`
	LogFile          string   `json:"logFile,omitempty"`
	Debug            bool     `json:"debug"`
	Addr             string   `json:"addr,omitempty"`
	Watch            bool     `json:"watch"`
	Locale           string   `json:"locale,omitempty"`
	DefaultSort      string   `json:"defaultSort,omitempty"`
	DefaultDirection string   `json:"defaultDirection,omitempty"`
	ConfigPath       string   `json:"-"`
}

// FixturePath returns the primary benchmark fixture, applying a default if not set.
func (c Config) FixturePath() string {
	if p := strings.TrimSpace(c.Fixture); p != "" {
		return p
	}
	return defaultFixturePath
}

// DatasetPaths returns the primary fixture followed by every extra dataset, without duplicates.
func (c Config) DatasetPaths() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range append([]string{c.FixturePath()}, c.Datasets...) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ReportOutputPath returns the HTML dashboard destination.
func (c Config) ReportOutputPath() string {
	if p := strings.TrimSpace(c.ReportPath); p != "" {
		return p
	}
	return defaultReportPath
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "ragbench.log"
}

// ListenAddr returns the HTTP listen address.
func (c Config) ListenAddr() string {
	if a := strings.TrimSpace(c.Addr); a != "" {
		return a
	}
	return defaultListenAddr
}

// CollationLocale returns the locale used to collate text columns. Unparseable
// values fall back to English; Validate reports them.
func (c Config) CollationLocale() language.Tag {
	value := strings.TrimSpace(c.Locale)
	if value == "" {
		value = defaultLocale
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.English
	}
	return tag
}

// DefaultSortConfig returns the initial raw-results sort, or nil when unsorted.
func (c Config) DefaultSortConfig() *table.SortConfig {
	key := strings.TrimSpace(c.DefaultSort)
	if key == "" {
		return nil
	}
	dir, err := table.ParseDirection(c.DefaultDirection)
	if err != nil {
		dir = table.Ascending
	}
	return &table.SortConfig{Key: key, Direction: dir}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if v := strings.TrimSpace(c.Locale); v != "" {
		if _, err := language.Parse(v); err != nil {
			errs = append(errs, fmt.Errorf("invalid locale %q: %w", v, err))
		}
	}
	if v := strings.TrimSpace(c.DefaultDirection); v != "" {
		if _, err := table.ParseDirection(v); err != nil {
			errs = append(errs, err)
		}
	}
	if key := strings.TrimSpace(c.DefaultSort); key != "" {
		if _, err := table.Results.Columns.Lookup(key); err != nil {
			errs = append(errs, fmt.Errorf("defaultSort: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ResolvePath returns the config file to read for path. When path is the
// default and only the legacy ./config.json exists, the legacy file is used.
func ResolvePath(path string) string {
	if path == "" {
		path = DefaultConfigPath
	}
	if path != DefaultConfigPath {
		return path
	}
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return path
	}
	if _, err := os.Stat(legacyConfigPath); err == nil {
		return legacyConfigPath
	}
	return path
}
