package sheetpack

import (
	"errors"
	"fmt"
)

// ErrUnsupportedExtension indicates the input file extension has no
// back-end.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// ParseError represents a failure while parsing a spreadsheet document.
type ParseError struct {
	Format string // "excel", "ods", "csv"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing %s file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
