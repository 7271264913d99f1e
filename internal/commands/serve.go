// internal/commands/serve.go
package ragbench

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/ragbench/internal/logging"
	"github.com/mwiater/ragbench/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveDatasets []string
	serveTitle    string
)

// serveCmd serves the interactive dashboard and JSON projections over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Start an HTTP server with the dashboard of every loaded dataset. Column
headers and the filter form re-project the tables on each request; the same
projections are available as JSON under /api/datasets/:name/results. With
--watch, fixtures are reloaded when their files change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		paths := append(cfg.DatasetPaths(), serveDatasets...)
		store, err := server.NewStore(paths...)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Watch {
			if err := store.Watch(ctx, nil); err != nil {
				return err
			}
			logging.LogEvent("watching %d fixture(s) for changes", len(store.Names()))
		}

		srv := server.New(store, server.Config{
			Addr:        cfg.ListenAddr(),
			Title:       serveTitle,
			Locale:      cfg.CollationLocale(),
			DefaultSort: cfg.DefaultSortConfig(),
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("watch", false, "reload fixtures when their files change")
	serveCmd.Flags().StringSliceVar(&serveDatasets, "dataset", nil, "additional fixture to serve (repeatable)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "dashboard title")

	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("watch", serveCmd.Flags().Lookup("watch"))

	rootCmd.AddCommand(serveCmd)
}

// contextOrBackground guards commands executed without a context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
