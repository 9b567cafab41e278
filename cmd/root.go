package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"commission/internal/config"
	"commission/internal/logger"
)

var version = "1.0.0"

// cfg is set by main before Execute runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "commission",
	Short: "Commission CLI - turn payout reports into commission invoices",
	Long: `Commission CLI reads an agent payout report (CSV) and produces the
commission invoice as an Excel workbook.

The invoice is derived from the sum of the "Net Amount Payable(CR)" column:
a 0.25% commission plus 18% GST on that commission. The workbook contains a
formatted "Summary" sheet and the original report on a "Data" sheet.`,
	Version:       version,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Commission CLI executed")

		fmt.Println("Welcome to Commission CLI!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the CLI with the loaded configuration. Command errors are
// printed here once, so cobra's own error output is silenced.
func Execute(c *config.Config) {
	log := logger.WithComponent("cmd")
	cfg = c

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
