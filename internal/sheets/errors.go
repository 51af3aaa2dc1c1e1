package sheets

import "errors"

var (
	// ErrInvalidColumn indicates a column number below 1 or malformed column letters.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrInvalidRow indicates a row number below 1.
	ErrInvalidRow = errors.New("invalid row")

	// ErrEmptyTable indicates a table without rows or with an empty first row.
	ErrEmptyTable = errors.New("table is empty")
)
