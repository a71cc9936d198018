package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/diatax/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the taxonomy API and review pages over HTTP",
	Long: `Serve starts the HTTP API (categories, taxonomy, unclassified keywords,
classify, scan, calls, analysis, suggestions, lint), the HTML review page
at /review/<call-id>, and Prometheus metrics at /metrics. The discovery
scan runs first unless --no-scan is given.

Example:
  diatax serve
  diatax serve --addr :8089`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, log, err := openEngine(ctx, true)
	if err != nil {
		return err
	}

	return server.New(e, log).Start(ctx, e.Config().Server.Addr)
}
