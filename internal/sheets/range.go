package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// alphabetSize is the number of letters used for column names.
	alphabetSize = 26

	// maxColumnLetters is the longest column name whose number fits a 64-bit int.
	maxColumnLetters = 13
)

// Cell is one value of a table placed at its A1 reference.
type Cell struct {
	// Ref is the A1 reference of the cell, e.g. "B3".
	Ref string
	// Column is the 1-based column number.
	Column int
	// Row is the 1-based row number.
	Row int
	// Value is the table value, nil for cells past the end of a short row.
	Value any
}

// ColumnLetters converts a 1-based column number to its letters: 1 is "A", 27 is "AA".
func ColumnLetters(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidColumn, n)
	}

	var letters []byte

	for q := n - 1; q >= 0; q = q/alphabetSize - 1 {
		letters = append(letters, byte('A'+q%alphabetSize))
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}

	return string(letters), nil
}

// ColumnNumber converts column letters back to the 1-based column number.
// Lowercase letters are accepted.
func ColumnNumber(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column letters", ErrInvalidColumn)
	}

	if len(letters) > maxColumnLetters {
		return 0, fmt.Errorf("%w: %q is longer than %d letters", ErrInvalidColumn, letters, maxColumnLetters)
	}

	n := 0

	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, letters)
		}

		n = n*alphabetSize + int(r-'A') + 1
	}

	return n, nil
}

// CellRef returns the A1 reference of the cell at col and row, e.g. "B3".
func CellRef(col, row int) (string, error) {
	if row < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}

	letters, err := ColumnLetters(col)
	if err != nil {
		return "", err
	}

	return letters + strconv.Itoa(row), nil
}

// TableRange returns the A1 range covering table when its top-left cell is at left and top.
// The column count is taken from the first row.
func TableRange(left, top int, table [][]any) (string, error) {
	rows, cols, err := tableSize(table)
	if err != nil {
		return "", err
	}

	topLeft, err := CellRef(left, top)
	if err != nil {
		return "", err
	}

	bottomRight, err := CellRef(left+cols-1, top+rows-1)
	if err != nil {
		return "", err
	}

	return topLeft + ":" + bottomRight, nil
}

// Cells lays table out from left and top and returns every cell of the covered range
// in row-major order.
func Cells(left, top int, table [][]any) ([]Cell, error) {
	rows, cols, err := tableSize(table)
	if err != nil {
		return nil, err
	}

	if _, err = CellRef(left, top); err != nil {
		return nil, err
	}

	cells := make([]Cell, 0, rows*cols)

	for i := range rows {
		for j := range cols {
			var value any
			if j < len(table[i]) {
				value = table[i][j]
			}

			ref, refErr := CellRef(left+j, top+i)
			if refErr != nil {
				return nil, refErr
			}

			cells = append(cells, Cell{
				Ref:    ref,
				Column: left + j,
				Row:    top + i,
				Value:  value,
			})
		}
	}

	return cells, nil
}

func tableSize(table [][]any) (int, int, error) {
	if len(table) == 0 || len(table[0]) == 0 {
		return 0, 0, ErrEmptyTable
	}

	return len(table), len(table[0]), nil
}
