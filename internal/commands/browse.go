// internal/commands/browse.go
package ragbench

import (
	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/mwiater/ragbench/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd opens the terminal browser on the raw results.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse raw results in the terminal",
	Long: `Open an interactive terminal table of the raw results. Press / to search
queries, tab to cycle the database filter, a column number to toggle its sort,
esc to clear filters and q to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, path, err := loadFixture("")
		if err != nil {
			return err
		}
		cfg := config()
		return tui.Run(contextOrBackground(cmd), doc, tui.Options{
			Dataset: fixture.Name(path),
			Locale:  cfg.CollationLocale(),
			Sort:    cfg.DefaultSortConfig(),
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
