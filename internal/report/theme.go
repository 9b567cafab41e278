package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Fill colours used by the invoice theme.
const (
	HeaderFill = "FFFF00"
	TotalFill  = "FFFF99"
)

// CellStyle is the visual style of a single cell. Zero fields mean "unset"
// so rules can be layered on top of each other.
type CellStyle struct {
	Bold     bool
	FontSize float64
	Fill     string // RGB hex, solid pattern
	Border   bool   // thin border on all four sides
	Center   bool   // centered horizontally and vertically
}

// merge layers o on top of s.
func (s CellStyle) merge(o CellStyle) CellStyle {
	if o.Bold {
		s.Bold = true
	}
	if o.FontSize > 0 {
		s.FontSize = o.FontSize
	}
	if o.Fill != "" {
		s.Fill = o.Fill
	}
	if o.Border {
		s.Border = true
	}
	if o.Center {
		s.Center = true
	}
	return s
}

// StyleRule applies a style to every cell of an A1-style range ("A2:B5" or "A1").
type StyleRule struct {
	Range string
	Style CellStyle
}

// Title is written into the top-left cell of Range after Range is merged.
type Title struct {
	Text  string
	Range string
	Style CellStyle
}

// Theme is the declarative description of how the Summary sheet looks.
// Rules are layered in order; the title is applied last.
type Theme struct {
	Rules        []StyleRule
	ColumnWidths map[string]float64
	Title        Title
}

// InvoiceTheme returns the fixed theme of the commission invoice.
func InvoiceTheme() Theme {
	return Theme{
		Rules: []StyleRule{
			{Range: "A1:B1", Style: CellStyle{Bold: true, FontSize: 14, Center: true, Border: true, Fill: HeaderFill}},
			{Range: "A2:B5", Style: CellStyle{Center: true, Border: true}},
			// Agent Total and Total Invoice
			{Range: "A2:B2", Style: CellStyle{Bold: true, Fill: TotalFill}},
			{Range: "A5:B5", Style: CellStyle{Bold: true, Fill: TotalFill}},
		},
		ColumnWidths: map[string]float64{
			"A": 30,
			"B": 20,
		},
		Title: Title{
			Text:  "Airtel Invoice",
			Range: "A1:B1",
			Style: CellStyle{Bold: true, FontSize: 16, Center: true, Fill: HeaderFill},
		},
	}
}

// Resolve computes the effective style of every cell the theme touches.
func (t Theme) Resolve() (map[string]CellStyle, error) {
	styles := make(map[string]CellStyle)
	for _, rule := range t.Rules {
		cells, err := expandRange(rule.Range)
		if err != nil {
			return nil, err
		}
		for _, cell := range cells {
			styles[cell] = styles[cell].merge(rule.Style)
		}
	}

	if t.Title.Range != "" {
		anchor, _, err := splitRange(t.Title.Range)
		if err != nil {
			return nil, err
		}
		styles[anchor] = styles[anchor].merge(t.Title.Style)
	}

	return styles, nil
}

// expandRange lists the cells of a range in row-major order.
func expandRange(rng string) ([]string, error) {
	from, to, err := splitRange(rng)
	if err != nil {
		return nil, err
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}

	cells := make([]string, 0, (c2-c1+1)*(r2-r1+1))
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

// splitRange returns the first and last cell of "A1:B2"; a single cell is its own range.
func splitRange(rng string) (string, string, error) {
	if rng == "" {
		return "", "", fmt.Errorf("empty range")
	}
	if from, to, ok := strings.Cut(rng, ":"); ok {
		return from, to, nil
	}
	return rng, rng, nil
}

// toExcelize converts a CellStyle into the excelize style definition.
func (s CellStyle) toExcelize() *excelize.Style {
	style := &excelize.Style{}

	if s.Bold || s.FontSize > 0 {
		style.Font = &excelize.Font{Bold: s.Bold, Size: s.FontSize}
	}
	if s.Center {
		style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	}
	if s.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}
	if s.Fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{s.Fill}, Pattern: 1}
	}

	return style
}
