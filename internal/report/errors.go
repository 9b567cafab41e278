package report

import (
	"errors"
	"fmt"
)

// ErrRender is matched by every RenderError.
var ErrRender = errors.New("failed to render invoice workbook")

// RenderError wraps a failure while writing or styling the workbook.
type RenderError struct {
	// Op is the rendering step that failed (e.g., "writeData", "applyTheme").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("report: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is implements error matching for ErrRender.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// NewRenderError creates a new RenderError.
func NewRenderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}
