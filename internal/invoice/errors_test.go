package invoice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"commission/internal/report"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "empty input",
			err:  WrapProcessingError("ComputeSummary", ErrEmptyInput, "in.csv"),
			want: "The file contains no data.",
		},
		{
			name: "missing column",
			err:  WrapProcessingError("ComputeSummary", NewSchemaError(PayableColumn, 0, "", "required column is missing"), ""),
			want: "The file has no 'Net Amount Payable(CR)' column.",
		},
		{
			name: "bad cell",
			err:  WrapProcessingError("ComputeSummary", NewSchemaError(PayableColumn, 3, "x", "value is not a number"), ""),
			want: `An error occurred while processing the file: column 'Net Amount Payable(CR)' row 3: value is not a number (value: "x")`,
		},
		{
			name: "render failure",
			err:  WrapProcessingError("Render", report.NewRenderError("Render", errors.New("disk full")), ""),
			want: "An error occurred while processing the file: report: Render failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestWrapProcessingError(t *testing.T) {
	assert.Nil(t, WrapProcessingError("op", nil, ""))

	inner := WrapProcessingError("ReadDataset", ErrEmptyInput, "a.csv")
	outer := WrapProcessingError("Generate", fmt.Errorf("context: %w", inner), "")

	var procErr *ProcessingError
	assert.ErrorAs(t, outer, &procErr)
	assert.Equal(t, "ReadDataset", procErr.Op)
	assert.Equal(t, "invoice: ReadDataset failed (input: a.csv): the file contains no data", inner.Error())
	assert.ErrorIs(t, outer, ErrEmptyInput)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	schemaErr := NewSchemaError(PayableColumn, 0, "", "required column is missing")
	renderErr := report.NewRenderError("Build", errors.New("boom"))

	assert.ErrorIs(t, schemaErr, ErrSchema)
	assert.NotErrorIs(t, schemaErr, ErrEmptyInput)
	assert.NotErrorIs(t, schemaErr, ErrRender)
	assert.ErrorIs(t, renderErr, ErrRender)
	assert.NotErrorIs(t, renderErr, ErrSchema)
}
