package csvimport

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when the CSV payload has no bytes
	ErrEmptyFile = errors.New("csv file is empty")

	// ErrInvalidEncoding is returned when the payload is not valid UTF-8
	ErrInvalidEncoding = errors.New("csv file is not valid UTF-8")

	// ErrMissingHeader is returned when the payload has no header row
	ErrMissingHeader = errors.New("csv file has no header row")
)

// RowError describes a problem in one data row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a RowError for one row and column
func NewRowError(row int, column, message string) RowError {
	return RowError{Row: row, Column: column, Message: message}
}
