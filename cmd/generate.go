package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"commission/internal/invoice"
	"commission/internal/logger"
	"commission/internal/report"
	"commission/internal/sheets"
	"commission/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate [csv-file]",
	Short: "Generate the commission invoice workbook from a payout report",
	Long: `Read a payout report (CSV) and write the commission invoice workbook.

The report must contain a numeric "Net Amount Payable(CR)" column. The
workbook gets a formatted "Summary" sheet (Agent Total, 0.25%, 18%,
Total Invoice) and a "Data" sheet with the report as it was read. An
existing workbook at the output path is overwritten.

Instead of a CSV file the report can be read from a Google Sheet with
--from-sheet; the first row of --source-range is the header.

Optionally the four summary lines are appended to a Google Sheet.

Optional environment variables:
  INVOICE_OUTPUT_PATH - Default output path (default: Airtel.xlsx)
  GOOGLE_SHEET_URL - Google Sheets URL to publish the summary to
  GOOGLE_SHEET_WORKSHEET - Worksheet receiving the summary (default: Invoices)
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Generate Airtel.xlsx in the current directory
  commission generate payouts.csv

  # Write the workbook somewhere else
  commission generate payouts.csv -o invoices/march.xlsx

  # Also append the summary to a Google Sheet
  commission generate payouts.csv --sheet-url https://docs.google.com/spreadsheets/d/<id>/edit

  # Read the payout report from a Google Sheet instead of a CSV file
  commission generate --from-sheet https://docs.google.com/spreadsheets/d/<id>/edit --source-range Payouts`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "Output workbook path (default: INVOICE_OUTPUT_PATH or Airtel.xlsx)")
	generateCmd.Flags().String("sheet-url", "", "Google Sheets URL to publish the summary to (default: GOOGLE_SHEET_URL)")
	generateCmd.Flags().String("worksheet", "", "Worksheet receiving the summary (default: GOOGLE_SHEET_WORKSHEET)")
	generateCmd.Flags().String("from-sheet", "", "Google Sheets URL to read the payout report from instead of a CSV file")
	generateCmd.Flags().String("source-range", "Payouts", "Range holding the payout report when reading from a Google Sheet")
	generateCmd.Flags().Int("timeout", 60, "Google Sheets publishing timeout in seconds")
	generateCmd.Flags().BoolP("quiet", "q", false, "Do not print the summary table")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	outputPath, _ := cmd.Flags().GetString("output")
	sheetURL, _ := cmd.Flags().GetString("sheet-url")
	worksheet, _ := cmd.Flags().GetString("worksheet")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	quiet, _ := cmd.Flags().GetBool("quiet")
	fromSheet, _ := cmd.Flags().GetString("from-sheet")
	sourceRange, _ := cmd.Flags().GetString("source-range")

	outputPath = firstNonEmpty(outputPath, configValue(func() string { return cfg.OutputPath }), invoice.DefaultOutputFile)
	sheetURL = firstNonEmpty(sheetURL, configValue(func() string { return cfg.GoogleSheetURL }))
	worksheet = firstNonEmpty(worksheet, configValue(func() string { return cfg.GoogleSheetWorksheet }), "Invoices")

	var inputPath string
	if len(args) == 1 {
		inputPath = args[0]
	}
	if (inputPath == "") == (fromSheet == "") {
		return fmt.Errorf("provide either a CSV file or --from-sheet")
	}

	if !strings.EqualFold(filepath.Ext(outputPath), ".xlsx") {
		return fmt.Errorf("output path must end in .xlsx: %s", outputPath)
	}
	if timeoutSecs <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	log.Info().
		Str("input", inputPath).
		Str("from_sheet", fromSheet).
		Str("output", outputPath).
		Bool("publish", sheetURL != "").
		Msg("Starting invoice generation")

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	generator := invoice.NewGenerator()
	var (
		result *invoice.Result
		err    error
		source string
	)
	if fromSheet != "" {
		source = sourceRange
		ds, readErr := readSheetDataset(ctx, fromSheet, sourceRange, log)
		if readErr != nil {
			return readErr
		}
		result, err = generator.GenerateFromDataset(ds, source, outputPath)
	} else {
		source = filepath.Base(inputPath)
		if err := validateInputFile(inputPath, log); err != nil {
			return err
		}
		result, err = generator.Generate(inputPath, outputPath)
	}
	if err != nil {
		log.Error().Err(err).Msg("Invoice generation failed")
		return errors.New(invoice.UserMessage(err))
	}

	if !quiet {
		if err := printSummary(cmd.OutOrStdout(), result.Summary); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Summary table saved to: %s\n", result.OutputPath)

	log.Info().
		Str("output", result.OutputPath).
		Int("rows", result.RowCount).
		Float64("invoice", result.Summary.Invoice).
		Dur("duration", result.ProcessingDuration).
		Msg("Invoice generation completed successfully")

	if sheetURL == "" {
		return nil
	}

	return publishSummary(ctx, sheetURL, worksheet, source, result.Summary, log)
}

// readSheetDataset loads the payout report from a Google Sheet range
func readSheetDataset(ctx context.Context, sheetURL, sourceRange string, log zerolog.Logger) (*models.Dataset, error) {
	sheetsService, err := sheets.NewSheetsService(ctx, sheetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}

	ds, err := sheetsService.ReadDataset(ctx, sourceRange)
	if err != nil {
		err = invoice.WrapProcessingError("ReadDataset", err, sourceRange)
		log.Error().Err(err).Msg("Failed to read payout report from Google Sheet")
		return nil, errors.New(invoice.UserMessage(err))
	}
	return ds, nil
}

// validateInputFile checks the payout report exists and is a regular file
func validateInputFile(path string, log zerolog.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", path).Msg("Payout report not found")
			return fmt.Errorf("payout report not found: %s", path)
		}
		if os.IsPermission(err) {
			log.Error().Str("file", path).Msg("Permission denied accessing payout report")
			return fmt.Errorf("permission denied accessing payout report: %s", path)
		}
		return fmt.Errorf("error accessing payout report: %w", err)
	}

	if !info.Mode().IsRegular() {
		log.Error().Str("file", path).Msg("Path is not a regular file")
		return fmt.Errorf("path is not a regular file: %s", path)
	}

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		log.Warn().Str("file", path).Msg("File does not have .csv extension")
	}

	return nil
}

// publishSummary appends the summary lines to the configured Google Sheet
func publishSummary(ctx context.Context, sheetURL, worksheet, source string, summary *models.Summary, log zerolog.Logger) error {
	sheetsService, err := sheets.NewSheetsService(ctx, sheetURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}

	if err := sheetsService.PublishSummary(ctx, worksheet, source, summary); err != nil {
		return fmt.Errorf("failed to publish summary: %w", err)
	}

	log.Info().
		Str("worksheet", worksheet).
		Msg("Summary published to Google Sheet")
	return nil
}

// printSummary writes the Summary sheet as a plain table
func printSummary(w io.Writer, summary *models.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", report.DescriptionHeader, report.PayoutHeader)
	for _, row := range summary.Rows() {
		fmt.Fprintf(tw, "%s\t%v\n", row.Description, row.Payout)
	}
	return tw.Flush()
}

func configValue(get func() string) string {
	if cfg == nil {
		return ""
	}
	return get()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
