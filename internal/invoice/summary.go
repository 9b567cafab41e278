package invoice

import (
	"math"
	"strconv"
	"strings"

	"commission/pkg/models"
)

const (
	// PayableColumn is the payout report column that is summed.
	PayableColumn = "Net Amount Payable(CR)"

	// CommissionRate is the agent commission applied to the total payout (0.25%).
	CommissionRate = 0.0025

	// GSTRate is the goods and services tax applied to the commission (18%).
	GSTRate = 0.18
)

// ComputeSummary sums the payable column and derives the invoice amounts.
// Missing cells (blank or an NA marker such as "NA", "N/A", "nan") are
// skipped; negative values are summed as-is.
func ComputeSummary(ds *models.Dataset) (*models.Summary, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyInput
	}

	col := ds.ColumnIndex(PayableColumn)
	if col < 0 {
		return nil, NewSchemaError(PayableColumn, 0, "", "required column is missing")
	}

	var total float64
	for i, row := range ds.Rows {
		if col >= len(row) {
			continue
		}
		if models.IsMissing(row[col]) {
			continue
		}
		value, err := parsePayable(strings.TrimSpace(row[col]))
		if err != nil {
			return nil, NewSchemaError(PayableColumn, i+1, row[col], "value is not a number")
		}
		total += value
	}

	return summarize(total), nil
}

func summarize(total float64) *models.Summary {
	commercialValue := total * CommissionRate
	gst := commercialValue * GSTRate
	return &models.Summary{
		TotalAmount:     total,
		CommercialValue: commercialValue,
		GST:             gst,
		Invoice:         gst + commercialValue,
	}
}

// parsePayable accepts plain decimal notation only; Inf and any NaN spelling
// not caught by IsMissing are rejected.
func parsePayable(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
