// Package sheets converts between spreadsheet column numbers and letters
// and builds A1-notation ranges that cover a table of values.
package sheets
