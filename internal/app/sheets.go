package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oshokin/somegotools/internal/sheets"
)

// ExecuteColumnCommand converts every argument between column numbers and letters:
// numbers are printed as letters and letters as numbers.
func ExecuteColumnCommand(out io.Writer, values []string) error {
	for _, value := range values {
		var converted string

		if n, err := strconv.Atoi(value); err == nil {
			converted, err = sheets.ColumnLetters(n)
			if err != nil {
				return err
			}
		} else {
			number, numberErr := sheets.ColumnNumber(value)
			if numberErr != nil {
				return numberErr
			}

			converted = strconv.Itoa(number)
		}

		if _, err := fmt.Fprintf(out, "%s\t%s\n", value, converted); err != nil {
			return err
		}
	}

	return nil
}

// ExecuteRangeCommand prints the A1 range of a rows-by-cols table whose top-left cell is at left and top.
// With listCells it prints the reference of every cell instead, one table row per line.
func ExecuteRangeCommand(out io.Writer, left, top, rows, cols int, listCells bool) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: %d rows, %d columns", sheets.ErrEmptyTable, rows, cols)
	}

	table := make([][]any, rows)
	for i := range table {
		table[i] = make([]any, cols)
	}

	if listCells {
		return printCells(out, left, top, table)
	}

	tableRange, err := sheets.TableRange(left, top, table)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, tableRange)

	return err
}

func printCells(out io.Writer, left, top int, table [][]any) error {
	cells, err := sheets.Cells(left, top, table)
	if err != nil {
		return err
	}

	refs := make([]string, 0, len(table[0]))

	for i, cell := range cells {
		refs = append(refs, cell.Ref)

		if i+1 < len(cells) && cells[i+1].Row == cell.Row {
			continue
		}

		if _, err = fmt.Fprintln(out, strings.Join(refs, "\t")); err != nil {
			return err
		}

		refs = refs[:0]
	}

	return nil
}
