package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/somegotools/internal/app"
)

//nolint:gochecknoglobals // Cobra commands are defined globally and registered in init.
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the version.",
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		full, _ := cmd.Flags().GetBool("full")

		return app.ExecuteVersionCommand(cmd.OutOrStdout(), full)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	versionCmd.Flags().Bool("full", false, "include the commit and build time.")

	rootCmd.AddCommand(versionCmd)
}
