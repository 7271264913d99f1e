// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		cfg = &fallback
	}

	sort := cfg.DefaultSortConfig().String()
	datasets := cfg.DatasetPaths()

	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Fixture:         %s\n", cfg.FixturePath())
	fmt.Fprintf(out, "  Datasets:        %s\n", strings.Join(datasets, ", "))
	fmt.Fprintf(out, "  Report Path:     %s\n", cfg.ReportOutputPath())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Listen Addr:     %s\n", cfg.ListenAddr())
	fmt.Fprintf(out, "  Watch:           %v\n", cfg.Watch)
	fmt.Fprintf(out, "  Locale:          %s\n", cfg.CollationLocale())
	fmt.Fprintf(out, "  Default Sort:    %s\n", sort)
}
