// internal/commands/validate.go
package ragbench

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mwiater/ragbench/internal/fixture"
	"github.com/spf13/cobra"
)

// validateCmd checks fixtures against the schema and cross-reference invariants.
var validateCmd = &cobra.Command{
	Use:   "validate [fixture...]",
	Short: "Validate benchmark fixtures",
	Long: `Validate one or more fixtures against the embedded JSON Schema and the
cross-reference invariants. Soft expectations, such as total_time covering
retrieval plus generation time, are listed as warnings. Without arguments the
configured fixture is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			paths = []string{config().FixturePath()}
		}

		out := cmd.OutOrStdout()
		ok := color.New(color.FgGreen).SprintFunc()
		warn := color.New(color.FgYellow).SprintFunc()
		bad := color.New(color.FgRed).SprintFunc()

		failed := 0
		for _, path := range paths {
			doc, err := fixture.Load(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s %s\n  %v\n", bad("FAIL"), path, err)
				continue
			}
			warnings, _ := fixture.Check(doc)
			fmt.Fprintf(out, "%s %s: %d raw results, %d databases\n",
				ok("OK"), path, len(doc.SpeedTest.RawResults), len(doc.Databases()))
			for _, w := range warnings {
				fmt.Fprintf(out, "  %s %s\n", warn("warning:"), w)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d fixture(s) failed validation", failed, len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
