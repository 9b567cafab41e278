package invoice

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"commission/internal/logger"
	"commission/pkg/models"
)

const utf8BOM = "\ufeff"

// DatasetReader reads payout reports from delimited files
type DatasetReader struct {
	log zerolog.Logger
}

// NewDatasetReader creates a new payout report reader
func NewDatasetReader() *DatasetReader {
	return &DatasetReader{
		log: logger.WithComponent("dataset-reader"),
	}
}

// ReadFile opens and reads a payout report from disk.
func (dr *DatasetReader) ReadFile(path string) (*models.Dataset, error) {
	const op = "ReadFile"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open %s: %w", op, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			dr.log.Warn().Err(closeErr).Str("file", path).Msg("Failed to close input file")
		}
	}()

	return dr.Read(f)
}

// Read parses a comma separated payout report. The first record is the header.
// A stream without a header fails with ErrEmptyInput; a header without rows
// yields an empty dataset, which the aggregator rejects.
func (dr *DatasetReader) Read(r io.Reader) (*models.Dataset, error) {
	const op = "Read"

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", op, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	if len(header) == 1 && strings.TrimSpace(header[0]) == "" {
		return nil, ErrEmptyInput
	}

	ds := &models.Dataset{Columns: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read row %d: %w", op, len(ds.Rows)+1, err)
		}

		rowNum := len(ds.Rows) + 1
		switch {
		case len(record) > len(header):
			return nil, NewSchemaError(header[len(header)-1], rowNum, strings.Join(record[len(header):], ","),
				fmt.Sprintf("row has %d fields, header has %d", len(record), len(header)))
		case len(record) < len(header):
			dr.log.Debug().
				Int("row", rowNum).
				Int("columns", len(record)).
				Msg("Padding short row with empty cells")
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		ds.Rows = append(ds.Rows, record)
	}

	dr.log.Debug().
		Int("columns", len(ds.Columns)).
		Int("rows", len(ds.Rows)).
		Msg("Payout report read")

	return ds, nil
}
