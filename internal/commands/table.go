// internal/commands/table.go
package ragbench

import (
	"fmt"
	"strings"

	"github.com/mwiater/ragbench/internal/report"
	"github.com/spf13/cobra"
)

var (
	tableFlags  viewFlags
	tableKind   string
	tableFormat string
)

// tableCmd prints one filtered and sorted fixture table.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print a filtered, sorted benchmark table",
	Long: `Project one table of the fixture (results, summary, quality or scalability)
through the filter and sort engine and print it as an aligned text table, JSON
or YAML. Search matches queries for the results table and database names for
the others.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := report.ParseKind(tableKind)
		if err != nil {
			return err
		}
		format, err := report.ParseFormat(tableFormat)
		if err != nil {
			return err
		}
		sortCfg, err := tableFlags.sortConfig(kind == report.KindResults)
		if err != nil {
			return err
		}
		doc, _, err := loadFixture("")
		if err != nil {
			return err
		}

		proj, err := report.Project(doc, report.Query{
			Kind:     kind,
			Search:   tableFlags.search,
			Database: tableFlags.database,
			Sort:     sortCfg,
			Locale:   config().CollationLocale(),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format != report.FormatText {
			return report.Encode(out, format, proj)
		}
		if proj.Count == 0 {
			fmt.Fprintln(out, report.EmptyMessage)
			return nil
		}
		if err := report.WriteTable(out, proj.Headers, proj.Cells); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d of %d rows (sort: %s)\n", proj.Count, proj.Total, proj.Sort)
		return nil
	},
}

func init() {
	tableCmd.Flags().StringVarP(&tableKind, "kind", "k", string(report.KindResults), "table to print: results, summary, quality or scalability")
	tableCmd.Flags().StringVar(&tableFormat, "format", string(report.FormatText), "output format: table, json or yaml")
	tableCmd.Flags().StringVar(&tableFlags.search, "search", "", "case-insensitive substring filter")
	tableCmd.Flags().StringVar(&tableFlags.database, "database", "", "show only this database (default all)")
	tableCmd.Flags().StringVar(&tableFlags.sortKey, "sort", "", "sort column ("+strings.Join(report.Columns(report.KindResults), ", ")+" for results)")
	tableCmd.Flags().StringVar(&tableFlags.direction, "dir", "asc", "sort direction: asc or desc")

	rootCmd.AddCommand(tableCmd)
}
