// Package invoice turns a payout report into a commission invoice workbook.
//
// The payout report is a CSV file that must contain a numeric
// "Net Amount Payable(CR)" column. The column is summed and the invoice is
// derived from the total:
//
//   - commission (0.25%) = total * 0.0025
//   - GST (18%)          = commission * 0.18
//   - invoice            = commission + GST
//
// Errors:
//   - ErrEmptyInput: the report has no data rows
//   - ErrSchema:     the payable column is missing or not numeric
//   - ErrRender:     the workbook could not be written
//
// All of them come back wrapped in a *ProcessingError; use errors.Is to
// check the kind and UserMessage to build the text shown to the user.
package invoice

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"commission/internal/logger"
	"commission/internal/report"
	"commission/pkg/models"
)

// DefaultOutputFile is the workbook name used when the caller does not pick one.
const DefaultOutputFile = "Airtel.xlsx"

// InvoiceGenerator defines the interface for producing invoice workbooks.
type InvoiceGenerator interface {
	// Generate reads the payout report at inputPath and writes the workbook to outputPath.
	Generate(inputPath, outputPath string) (*Result, error)

	// GenerateFromReader reads the payout report from r and writes the workbook to outputPath.
	GenerateFromReader(r io.Reader, outputPath string) (*Result, error)

	// GenerateFromDataset writes the workbook for an already loaded payout report.
	GenerateFromDataset(ds *models.Dataset, source, outputPath string) (*Result, error)
}

// Result contains the outcome of a successful generation.
type Result struct {
	// OutputPath is where the workbook was written.
	OutputPath string

	// Summary holds the computed invoice amounts.
	Summary *models.Summary

	// RowCount is the number of data rows in the payout report.
	RowCount int

	// ProcessingDuration is how long the generation took.
	ProcessingDuration time.Duration
}

// Generator is the default InvoiceGenerator
type Generator struct {
	reader   *DatasetReader
	renderer *report.Renderer
	log      zerolog.Logger
}

// NewGenerator creates a generator using the fixed invoice theme.
func NewGenerator() *Generator {
	return NewGeneratorWithTheme(report.InvoiceTheme())
}

// NewGeneratorWithTheme creates a generator with a custom Summary sheet theme.
func NewGeneratorWithTheme(theme report.Theme) *Generator {
	return &Generator{
		reader:   NewDatasetReader(),
		renderer: report.NewRenderer(theme),
		log:      logger.WithComponent("invoice-generator"),
	}
}

// Generate reads the payout report at inputPath and writes the workbook to outputPath.
func (g *Generator) Generate(inputPath, outputPath string) (*Result, error) {
	ds, err := g.reader.ReadFile(inputPath)
	if err != nil {
		return nil, WrapProcessingError("ReadDataset", err, inputPath)
	}
	return g.process(ds, inputPath, outputPath)
}

// GenerateFromReader reads the payout report from r and writes the workbook to outputPath.
func (g *Generator) GenerateFromReader(r io.Reader, outputPath string) (*Result, error) {
	ds, err := g.reader.Read(r)
	if err != nil {
		return nil, WrapProcessingError("ReadDataset", err, "")
	}
	return g.process(ds, "", outputPath)
}

// GenerateFromDataset writes the workbook for an already loaded payout report.
// source only labels log lines and errors.
func (g *Generator) GenerateFromDataset(ds *models.Dataset, source, outputPath string) (*Result, error) {
	return g.process(ds, source, outputPath)
}

func (g *Generator) process(ds *models.Dataset, inputPath, outputPath string) (*Result, error) {
	start := time.Now()

	summary, err := ComputeSummary(ds)
	if err != nil {
		g.log.Warn().
			Err(err).
			Str("input", inputPath).
			Int("rows", ds.Len()).
			Msg("Payout report rejected")
		return nil, WrapProcessingError("ComputeSummary", err, inputPath)
	}

	g.log.Info().
		Int("rows", ds.Len()).
		Float64("total_amount", summary.TotalAmount).
		Float64("invoice", summary.Invoice).
		Msg("Invoice summary computed")

	path, err := g.renderer.Render(summary, ds, outputPath)
	if err != nil {
		g.log.Error().
			Err(err).
			Str("output", outputPath).
			Msg("Failed to render invoice workbook")
		return nil, WrapProcessingError("Render", err, inputPath)
	}

	return &Result{
		OutputPath:         path,
		Summary:            summary,
		RowCount:           ds.Len(),
		ProcessingDuration: time.Since(start),
	}, nil
}
