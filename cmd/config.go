package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/somegotools/internal/app"
	"github.com/oshokin/somegotools/internal/config"
)

//nolint:gochecknoglobals // Cobra commands are defined globally and registered in init.
var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration file management commands.",
		// The file may not exist yet, so it is not loaded.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file holding the defaults.",
		Long: `Writes the default settings, each with a short description, to the file given by
--config or to '` + config.DefaultConfigFilename + `' in the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			return app.ExecuteConfigInitCommand(cmd.Context(), cmd.OutOrStdout(), configFilenameFromFlag, force)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file.")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
