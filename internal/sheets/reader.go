package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"commission/internal/invoice"
	"commission/pkg/models"
)

// ReadRange returns the unformatted cell values of a range, row by row.
// Google omits trailing empty cells, so rows can be shorter than the range.
func (s *Service) ReadRange(ctx context.Context, readRange string) ([][]interface{}, error) {
	const op = "ReadRange"

	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read range %s: %w", op, readRange, err)
	}

	return resp.Values, nil
}

// ReadDataset reads a payout report kept in a worksheet. The first row of the
// range is the header, every following row is a data row.
func (s *Service) ReadDataset(ctx context.Context, readRange string) (*models.Dataset, error) {
	const op = "ReadDataset"

	s.log.Info().Str("range", readRange).Msg("Reading payout report from Google Sheet")

	values, err := s.ReadRange(ctx, readRange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ds, err := valuesToDataset(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info().
		Int("columns", len(ds.Columns)).
		Int("rows", ds.Len()).
		Str("range", readRange).
		Msg("Payout report read successfully")

	return ds, nil
}

// valuesToDataset lays sheet values out like a parsed CSV: short rows are
// padded to the header width, rows wider than the header are rejected with
// the same schema error the CSV reader returns.
func valuesToDataset(values [][]interface{}) (*models.Dataset, error) {
	if len(values) == 0 {
		return &models.Dataset{}, nil
	}

	ds := &models.Dataset{Columns: make([]string, len(values[0]))}
	for i, v := range values[0] {
		ds.Columns[i] = cellString(v)
	}

	for i, row := range values[1:] {
		rowNum := i + 1 // Data row number, as the CSV reader counts them

		if len(row) > len(ds.Columns) {
			return nil, wideRowError(ds.Columns, row, rowNum)
		}

		record := make([]string, len(ds.Columns))
		for j, v := range row {
			record[j] = cellString(v)
		}
		ds.Rows = append(ds.Rows, record)
	}

	return ds, nil
}

func wideRowError(header []string, row []interface{}, rowNum int) error {
	var column string
	if len(header) > 0 {
		column = header[len(header)-1]
	}

	extra := make([]string, 0, len(row)-len(header))
	for _, v := range row[len(header):] {
		extra = append(extra, cellString(v))
	}

	return invoice.NewSchemaError(column, rowNum, strings.Join(extra, ","),
		fmt.Sprintf("row has %d fields, header has %d", len(row), len(header)))
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
