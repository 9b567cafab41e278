// Package report writes the commission invoice workbook.
//
// The workbook has two sheets: "Summary" with the four invoice lines under a
// merged title, and "Data" with the payout report exactly as it was read.
// The look of the Summary sheet is described by a Theme and applied in one
// pass, so it can be inspected without building a workbook.
package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"commission/internal/logger"
	"commission/pkg/models"
)

// Sheet names and Summary sheet header.
const (
	SummarySheet = "Summary"
	DataSheet    = "Data"

	DescriptionHeader = "Description"
	PayoutHeader      = "Payout"

	// ContentType is the MIME type of the produced workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Renderer builds invoice workbooks
type Renderer struct {
	theme Theme
	log   zerolog.Logger
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{
		theme: theme,
		log:   logger.WithComponent("report-renderer"),
	}
}

// Render writes the workbook to outputPath, replacing any existing file,
// and returns outputPath.
func (r *Renderer) Render(summary *models.Summary, ds *models.Dataset, outputPath string) (string, error) {
	const op = "Render"

	f, err := r.Build(summary, ds)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			r.log.Warn().Err(closeErr).Msg("Failed to close workbook")
		}
	}()

	if err := f.SaveAs(outputPath); err != nil {
		return "", NewRenderError(op, fmt.Errorf("failed to save %s: %w", outputPath, err))
	}

	r.log.Info().
		Str("output", outputPath).
		Int("data_rows", ds.Len()).
		Msg("Invoice workbook written")

	return outputPath, nil
}

// Build creates the workbook in memory. The caller owns the returned file.
func (r *Renderer) Build(summary *models.Summary, ds *models.Dataset) (*excelize.File, error) {
	const op = "Build"

	if summary == nil || ds == nil {
		return nil, NewRenderError(op, fmt.Errorf("summary and dataset are required"))
	}

	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			_ = f.Close()
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, NewRenderError(op, fmt.Errorf("failed to name summary sheet: %w", err))
	}
	if _, err := f.NewSheet(DataSheet); err != nil {
		return nil, NewRenderError(op, fmt.Errorf("failed to create data sheet: %w", err))
	}

	if err := writeSummary(f, summary); err != nil {
		return nil, NewRenderError("writeSummary", err)
	}
	if err := writeData(f, ds); err != nil {
		return nil, NewRenderError("writeData", err)
	}
	if err := r.applyTheme(f, SummarySheet); err != nil {
		return nil, NewRenderError("applyTheme", err)
	}
	f.SetActiveSheet(0)

	ok = true
	return f, nil
}

func writeSummary(f *excelize.File, summary *models.Summary) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &[]interface{}{DescriptionHeader, PayoutHeader}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range summary.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &[]interface{}{row.Description, row.Payout}); err != nil {
			return fmt.Errorf("failed to write %q: %w", row.Description, err)
		}
	}
	return nil
}

// writeData copies the dataset verbatim. Missing cells stay empty. Columns
// whose other cells are all numbers are written as numbers, everything else
// as text.
func writeData(f *excelize.File, ds *models.Dataset) error {
	numeric := numericColumns(ds)

	for i, h := range ds.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(DataSheet, cell, h); err != nil {
			return err
		}
	}

	for r, row := range ds.Rows {
		for c, v := range row {
			if models.IsMissing(v) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			var err error
			if numeric[c] {
				n, _ := parseNumber(v)
				err = f.SetCellFloat(DataSheet, cell, n, -1, 64)
			} else {
				err = f.SetCellStr(DataSheet, cell, v)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func numericColumns(ds *models.Dataset) []bool {
	numeric := make([]bool, len(ds.Columns))
	for c := range ds.Columns {
		seen := false
		numeric[c] = true
		for _, row := range ds.Rows {
			if c >= len(row) || models.IsMissing(row[c]) {
				continue
			}
			seen = true
			if _, ok := parseNumber(row[c]); !ok {
				numeric[c] = false
				break
			}
		}
		if !seen {
			numeric[c] = false
		}
	}
	return numeric
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// applyTheme styles the sheet, sets column widths, then merges the title
// range and writes the title into its anchor cell.
func (r *Renderer) applyTheme(f *excelize.File, sheet string) error {
	styles, err := r.theme.Resolve()
	if err != nil {
		return err
	}

	// Sorted for a stable style table in the output.
	cells := make([]string, 0, len(styles))
	for cell := range styles {
		cells = append(cells, cell)
	}
	sort.Strings(cells)

	ids := make(map[CellStyle]int)
	for _, cell := range cells {
		style := styles[cell]
		if cell == r.titleAnchor() {
			// The anchor is styled after the merge, below.
			continue
		}
		id, err := r.styleID(f, ids, style)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
			return fmt.Errorf("failed to style %s: %w", cell, err)
		}
	}

	cols := make([]string, 0, len(r.theme.ColumnWidths))
	for col := range r.theme.ColumnWidths {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		if err := f.SetColWidth(sheet, col, col, r.theme.ColumnWidths[col]); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	return r.applyTitle(f, sheet, ids, styles)
}

func (r *Renderer) applyTitle(f *excelize.File, sheet string, ids map[CellStyle]int, styles map[string]CellStyle) error {
	title := r.theme.Title
	if title.Range == "" {
		return nil
	}

	from, to, err := splitRange(title.Range)
	if err != nil {
		return err
	}
	if from != to {
		if err := f.MergeCell(sheet, from, to); err != nil {
			return fmt.Errorf("failed to merge %s: %w", title.Range, err)
		}
		// Only the anchor of a merged range keeps a value.
		covered, err := expandRange(title.Range)
		if err != nil {
			return err
		}
		for _, cell := range covered[1:] {
			if err := f.SetCellValue(sheet, cell, nil); err != nil {
				return fmt.Errorf("failed to clear %s: %w", cell, err)
			}
		}
	}

	if err := f.SetCellValue(sheet, from, title.Text); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	id, err := r.styleID(f, ids, styles[from])
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, from, from, id); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}
	return nil
}

func (r *Renderer) titleAnchor() string {
	from, _, err := splitRange(r.theme.Title.Range)
	if err != nil {
		return ""
	}
	return from
}

func (r *Renderer) styleID(f *excelize.File, ids map[CellStyle]int, style CellStyle) (int, error) {
	if id, ok := ids[style]; ok {
		return id, nil
	}
	id, err := f.NewStyle(style.toExcelize())
	if err != nil {
		return 0, fmt.Errorf("failed to create style: %w", err)
	}
	ids[style] = id
	return id, nil
}
