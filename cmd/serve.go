package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"commission/internal/invoice"
	"commission/internal/logger"
	"commission/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the invoice upload form",
	Long: `Start a small web server with an upload form. Uploading a payout report
(CSV) returns the commission invoice workbook as a download.

Endpoints:
  GET  /         upload form
  POST /invoice  multipart upload in field "file", responds with Airtel.xlsx
  GET  /healthz  liveness probe

Optional environment variables:
  LISTEN_ADDR - Address to listen on (default: :8080)`,
	Example: `  # Listen on the default address
  commission serve

  # Listen on a custom port
  commission serve --addr :9000`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: LISTEN_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")
	addr = firstNonEmpty(addr, configValue(func() string { return cfg.ListenAddr }), ":8080")

	// Handle interrupt signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", addr).Msg("Starting web shell")

	server := web.NewServer(addr, invoice.NewGenerator())
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("web shell stopped: %w", err)
	}

	log.Info().Msg("Web shell stopped")
	return nil
}
