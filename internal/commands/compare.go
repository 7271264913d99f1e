// internal/commands/compare.go
package ragbench

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/ragbench/internal/metrics"
	"github.com/mwiater/ragbench/internal/report"
	"github.com/spf13/cobra"
)

var compareOpts struct {
	before string
	after  string
	format string
}

// compareCmd prints per-metric deltas between two benchmark runs.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two benchmark fixtures metric by metric",
	Long: `Load two fixtures and report, for every database present in both, the
before and after value of each metric, the percent change and whether the
change is an improvement for that metric.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if compareOpts.before == "" || compareOpts.after == "" {
			return errors.New("both --before and --after are required")
		}
		format, err := report.ParseFormat(compareOpts.format)
		if err != nil {
			return err
		}
		before, _, err := loadFixture(compareOpts.before)
		if err != nil {
			return err
		}
		after, _, err := loadFixture(compareOpts.after)
		if err != nil {
			return err
		}

		cmp := metrics.Compare(before, after)
		out := cmd.OutOrStdout()
		if format != report.FormatText {
			return report.Encode(out, format, cmp)
		}

		if len(cmp.Deltas) == 0 {
			fmt.Fprintln(out, "No databases in common.")
		} else {
			rows := make([][]string, 0, len(cmp.Deltas))
			for _, d := range cmp.Deltas {
				rows = append(rows, []string{
					d.Database,
					d.Label,
					formatValue(d.Before, d.Unit),
					formatValue(d.After, d.Unit),
					fmt.Sprintf("%+.1f%%", d.PercentDelta),
					d.Status(),
				})
			}
			if err := report.WriteTable(out, []string{"Database", "Metric", "Before", "After", "Change", "Status"}, rows); err != nil {
				return err
			}
		}
		if len(cmp.OnlyBefore) > 0 {
			fmt.Fprintf(out, "\nOnly in before: %s\n", strings.Join(cmp.OnlyBefore, ", "))
		}
		if len(cmp.OnlyAfter) > 0 {
			fmt.Fprintf(out, "\nOnly in after: %s\n", strings.Join(cmp.OnlyAfter, ", "))
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareOpts.before, "before", "", "baseline fixture JSON (required)")
	compareCmd.Flags().StringVar(&compareOpts.after, "after", "", "candidate fixture JSON (required)")
	compareCmd.Flags().StringVar(&compareOpts.format, "format", string(report.FormatText), "output format: table, json or yaml")

	rootCmd.AddCommand(compareCmd)
}
