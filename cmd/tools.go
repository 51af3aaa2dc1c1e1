package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/somegotools/internal/tools"
)

//nolint:gochecknoglobals // Cobra commands are defined globally and registered in init.
var (
	cpCmd = &cobra.Command{
		Use:   "cp SOURCE DEST",
		Short: "Copy a file or a directory tree.",
		Long: `Copies SOURCE to DEST and prints the path written.
A directory is merged into DEST. A file keeps its mode and modification time
and lands inside DEST when DEST is an existing directory.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // Source and destination.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, tools.CopyTool, args)
		},
	}

	rmCmd = &cobra.Command{
		Use:   "rm-r DIR",
		Short: "Remove a directory tree; a missing directory is ignored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, tools.RemoveTool, args)
		},
	}

	duCmd = &cobra.Command{
		Use:   "du DIR",
		Short: "Print the total size of files in a directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, tools.DirSizeTool, args)
		},
	}

	unzipCmd = &cobra.Command{
		Use:   "unzip ZIP DIR",
		Short: "Extract a zip archive into a directory.",
		Args:  cobra.ExactArgs(2), //nolint:mnd // Archive and target directory.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, tools.UnzipTool, args)
		},
	}

	downloadCmd = &cobra.Command{
		Use:   "download URL PATH",
		Short: "Download a URL to a file or into a directory.",
		Args:  cobra.ExactArgs(2), //nolint:mnd // URL and save path.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, tools.DownloadTool, args)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	cpCmd.Flags().Bool("no-parents", false, "fail instead of creating missing parent directories.")

	duCmd.Flags().StringP("units", "u", "", "size units: Bytes, KB, MB, GB, TB, KiB, MiB, GiB, TiB.")
	duCmd.Flags().BoolP("follow-symlinks", "l", false, "count the targets of symbolic links.")

	downloadFlags := downloadCmd.Flags()
	downloadFlags.StringP("speed-limit", "s", "", "set download speed limit, for example: 500KB, 1MB, 1.5MB.")
	downloadFlags.Duration("timeout", 0, "timeout of the whole download, for example: 30s, 10m.")
	downloadFlags.BoolP("replace", "r", false, "overwrite the file if it already exists.")
	downloadFlags.Bool("no-progress", false, "do not draw a progress bar.")

	rootCmd.AddCommand(cpCmd, rmCmd, duCmd, unzipCmd, downloadCmd)
}
