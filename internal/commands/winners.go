// internal/commands/winners.go
package ragbench

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/metrics"
	"github.com/mwiater/ragbench/internal/report"
	"github.com/spf13/cobra"
)

var winnersFormat string

// winnersCmd prints the winner of every catalogued metric.
var winnersCmd = &cobra.Command{
	Use:   "winners",
	Short: "Print the best database for every metric",
	Long: `Compute the winner of each latency, reliability, retrieval quality and
scalability metric. Metrics where every database is within 0.001 of each other
are reported as "all equal".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(winnersFormat)
		if err != nil {
			return err
		}
		doc, path, err := loadFixture("")
		if err != nil {
			return err
		}
		entries := metrics.Scoreboard(doc)
		if format != report.FormatText {
			return report.Encode(cmd.OutOrStdout(), format, entries)
		}
		printScoreboard(cmd.OutOrStdout(), fixture.Name(path), doc, entries)
		printGrowth(cmd.OutOrStdout(), metrics.GrowthByDatabase(doc))
		return nil
	},
}

func printScoreboard(out io.Writer, dataset string, doc *fixture.Document, entries []metrics.Entry) {
	heading := color.New(color.Bold)
	winner := color.New(color.FgGreen, color.Bold)
	tie := color.New(color.FgYellow)
	muted := color.New(color.Faint)

	heading.Fprintf(out, "Winners by Metric (%s)\n", dataset)
	if w := doc.SpeedTest.Winner; w.Database != "" {
		fmt.Fprintf(out, "Declared speed winner: %s (%.1f%% faster, %s avg retrieval)\n\n",
			winner.Sprint(w.Database), w.SpeedImprovementPercent, formatValue(w.AvgRetrievalMs, "ms"))
	}

	for _, e := range entries {
		label := fmt.Sprintf("  %-12s %-24s ", e.Section, e.Label)
		switch {
		case e.Winner.AllEqual:
			fmt.Fprintf(out, "%s%s\n", label, tie.Sprintf("%-14s", "all equal"))
		case e.Winner.Found():
			fmt.Fprintf(out, "%s%s %s\n", label, winner.Sprintf("%-14s", e.Winner.Database), formatValue(e.Winner.Value, e.Unit))
		default:
			fmt.Fprintf(out, "%s%s\n", label, muted.Sprintf("%-14s", "n/a"))
		}
	}
}

func printGrowth(out io.Writer, growth []metrics.Growth) {
	if len(growth) == 0 {
		return
	}
	color.New(color.Bold).Fprintln(out, "\nLatency Growth by top_k")
	for _, g := range growth {
		fmt.Fprintf(out, "  %-14s top_k %d -> %d: %+.1f%%\n", g.Database, g.FromTopK, g.ToTopK, g.Percent)
	}
}

func init() {
	winnersCmd.Flags().StringVar(&winnersFormat, "format", string(report.FormatText), "output format: table, json or yaml")

	rootCmd.AddCommand(winnersCmd)
}
