package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oshokin/somegotools/internal/app"
)

//nolint:gochecknoglobals // Cobra commands are defined globally and registered in init.
var (
	columnCmd = &cobra.Command{
		Use:   "column N|LETTERS...",
		Short: "Convert spreadsheet column numbers to letters and back.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ExecuteColumnCommand(cmd.OutOrStdout(), args)
		},
	}

	rangeCmd = &cobra.Command{
		Use:   "range LEFT TOP ROWS COLS",
		Short: "Print the A1 range covering a table placed at LEFT and TOP.",
		Args:  cobra.ExactArgs(4), //nolint:mnd // Left, top, rows and columns.
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers := make([]int, len(args))

			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}

				numbers[i] = n
			}

			listCells, _ := cmd.Flags().GetBool("cells")

			return app.ExecuteRangeCommand(cmd.OutOrStdout(), numbers[0], numbers[1], numbers[2], numbers[3], listCells)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rangeCmd.Flags().Bool("cells", false, "print the reference of every cell, one table row per line.")

	rootCmd.AddCommand(columnCmd, rangeCmd)
}
