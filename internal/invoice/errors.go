package invoice

import (
	"errors"
	"fmt"

	"commission/internal/report"
)

// Common invoice processing errors
var (
	// ErrEmptyInput is returned when the payout report has no data rows
	// (or no header at all).
	ErrEmptyInput = errors.New("the file contains no data")

	// ErrSchema is returned when the required payable column is missing
	// or holds a value that is not a number.
	ErrSchema = errors.New("invalid payout report schema")

	// ErrRender is returned when the output workbook could not be written.
	ErrRender = report.ErrRender
)

// SchemaError describes which column (and, when known, which cell) broke the schema.
type SchemaError struct {
	// Column is the column that was required or failed to parse.
	Column string

	// Row is the 1-based data row number (0 when the column itself is missing).
	Row int

	// Value is the offending raw cell value, if any.
	Value string

	// Reason explains the failure.
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("column '%s' row %d: %s (value: %q)", e.Column, e.Row, e.Reason, e.Value)
	}
	return fmt.Sprintf("column '%s': %s", e.Column, e.Reason)
}

// Is reports ErrSchema as matching so callers can test the error kind.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(column string, row int, value, reason string) *SchemaError {
	return &SchemaError{
		Column: column,
		Row:    row,
		Value:  value,
		Reason: reason,
	}
}

// ProcessingError wraps errors with the operation that failed while generating an invoice.
type ProcessingError struct {
	// Op is the operation that failed (e.g., "ReadDataset", "ComputeSummary").
	Op string

	// Err is the underlying error.
	Err error

	// Input is the input file being processed (if available).
	Input string
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invoice: %s failed (input: %s): %v", e.Op, e.Input, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// WrapProcessingError wraps an error as a ProcessingError if it isn't already one.
func WrapProcessingError(op string, err error, input string) error {
	if err == nil {
		return nil
	}

	var procErr *ProcessingError
	if errors.As(err, &procErr) {
		return err // Already wrapped
	}

	return &ProcessingError{Op: op, Err: err, Input: input}
}

// UserMessage converts a processing error into the message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var schemaErr *SchemaError
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "The file contains no data."
	case errors.As(err, &schemaErr) && schemaErr.Row == 0:
		return fmt.Sprintf("The file has no '%s' column.", schemaErr.Column)
	default:
		return fmt.Sprintf("An error occurred while processing the file: %v", unwrapProcessing(err))
	}
}

func unwrapProcessing(err error) error {
	var procErr *ProcessingError
	if errors.As(err, &procErr) {
		return procErr.Err
	}
	return err
}
