// internal/commands/list_datasets.go
package ragbench

import (
	"strconv"
	"strings"

	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/report"
	"github.com/spf13/cobra"
)

// datasetsCmd implements 'list datasets', one line per configured fixture.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List configured benchmark datasets",
	Long:  `List the configured fixture and every extra dataset with its benchmark date, models and databases. Fixtures that fail to load are listed with their error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := config().DatasetPaths()
		rows := make([][]string, 0, len(paths))
		for _, path := range paths {
			doc, err := fixture.Load(path)
			if err != nil {
				rows = append(rows, []string{fixture.Name(path), path, "error: " + err.Error(), "", "", ""})
				continue
			}
			rows = append(rows, []string{
				fixture.Name(path),
				path,
				doc.Metadata.BenchmarkDate,
				doc.Metadata.LLMModel,
				strings.Join(doc.Databases(), ", "),
				strconv.Itoa(len(doc.SpeedTest.RawResults)),
			})
		}
		return report.WriteTable(cmd.OutOrStdout(), []string{"Name", "Path", "Date", "LLM", "Databases", "Results"}, rows)
	},
}

func init() {
	listCmd.AddCommand(datasetsCmd)
}
