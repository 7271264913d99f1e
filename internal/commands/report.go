// internal/commands/report.go
package ragbench

import (
	"fmt"

	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/logging"
	"github.com/mwiater/ragbench/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportFlags  viewFlags
	reportOutput string
	reportTitle  string
)

// reportCmd writes the static HTML dashboard for the configured fixture.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the static HTML benchmark dashboard",
	Long: `Render the benchmark fixture as a self-contained HTML dashboard: winner
spotlight, per-database cards, and the raw results, retrieval quality and
scalability tables. Search, database and sort flags fix the initial view of the
raw results table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, path, err := loadFixture("")
		if err != nil {
			return err
		}
		sortCfg, err := reportFlags.sortConfig(true)
		if err != nil {
			return err
		}

		state := report.NewState()
		state.Search = reportFlags.search
		if reportFlags.database != "" {
			state.Database = reportFlags.database
		}
		state = state.WithSort(report.ResultsTable, sortCfg)

		cfg := config()
		dash, err := report.Build(doc, state, report.Options{
			Title:   reportTitle,
			Dataset: fixture.Name(path),
			Locale:  cfg.CollationLocale(),
		})
		if err != nil {
			return err
		}

		out := reportOutput
		if out == "" {
			out = cfg.ReportOutputPath()
		}
		if err := report.WriteHTMLFile(out, dash); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logging.LogEvent("report written: %s (%d of %d raw results)", out, len(dash.Results.Rows), dash.Results.Total)
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "destination HTML path (default reportPath from config)")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "dashboard title")
	reportCmd.Flags().StringVar(&reportFlags.search, "search", "", "case-insensitive substring filter on queries")
	reportCmd.Flags().StringVar(&reportFlags.database, "database", "", "show only this database (default all)")
	reportCmd.Flags().StringVar(&reportFlags.sortKey, "sort", "", "raw results sort column")
	reportCmd.Flags().StringVar(&reportFlags.direction, "dir", "asc", "sort direction: asc or desc")

	rootCmd.AddCommand(reportCmd)
}
