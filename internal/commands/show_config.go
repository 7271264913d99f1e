// internal/commands/show_config.go
package ragbench

import (
	"github.com/k0kubun/pp"
	"github.com/mwiater/ragbench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showConfigDump bool

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags and RAGBENCH_* environment variables accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fallback := appconfig.Config{
			Fixture: viper.GetString("fixture"),
			LogFile: viper.GetString("logFile"),
			Debug:   viper.GetBool("debug"),
			Addr:    viper.GetString("addr"),
			Watch:   viper.GetBool("watch"),
			Locale:  viper.GetString("locale"),
		}
		out := cmd.OutOrStdout()
		if showConfigDump {
			cfg := GetConfig()
			if cfg == nil {
				cfg = &fallback
			}
			pp.ColoringEnabled = false
			_, err := pp.Fprintln(out, cfg)
			return err
		}
		appconfig.ShowConfig(out, viper.ConfigFileUsed(), GetConfig(), fallback)
		return nil
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigDump, "dump", false, "pretty-print the full configuration struct")

	showCmd.AddCommand(showConfigCmd)
}
