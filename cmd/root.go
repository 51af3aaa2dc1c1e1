package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/somegotools/internal/app"
	"github.com/oshokin/somegotools/internal/config"
	"github.com/oshokin/somegotools/internal/logger"
	"github.com/oshokin/somegotools/internal/utils"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "somegotools",
		Short: "Small filesystem, download and spreadsheet helpers.",
		Long: `somegotools bundles everyday helpers behind one command:
- cp, rm-r, du and unzip for files and directories
- download for saving a URL to disk
- column and range for spreadsheet A1 arithmetic

Every path argument is given as plain text and converted to a path before the helper runs.
Defaults come from the configuration file; flags override them per call.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	cobra.CheckErr(err)
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s' when present)",
			config.DefaultConfigFilename))

	rootCmd.PersistentFlags().StringP(
		"log-level",
		"L",
		"",
		"logging verbosity: debug, info, warn, error.")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)

	return nil
}

// bindFlagsToConfig copies every changed flag known to the configuration into cfg and validates the result.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("units"); flag != nil && flag.Changed {
		cfg.SizeUnits, _ = flags.GetString("units")
	}

	if flag := flags.Lookup("follow-symlinks"); flag != nil && flag.Changed {
		cfg.FollowSymlinks, _ = flags.GetBool("follow-symlinks")
	}

	if flag := flags.Lookup("no-parents"); flag != nil && flag.Changed {
		noParents, _ := flags.GetBool("no-parents")
		cfg.CopyParents = !noParents
	}

	if flag := flags.Lookup("speed-limit"); flag != nil && flag.Changed {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		cfg.DownloadTimeout, _ = flags.GetDuration("timeout")
	}

	if flag := flags.Lookup("replace"); flag != nil && flag.Changed {
		cfg.ReplaceFiles, _ = flags.GetBool("replace")
	}

	if flag := flags.Lookup("no-progress"); flag != nil && flag.Changed {
		noProgress, _ := flags.GetBool("no-progress")
		cfg.ShowProgress = !noProgress
	}

	return config.ValidateConfig(cfg)
}

// runTool passes the command line arguments as text to the named tool.
func runTool(cmd *cobra.Command, name string, args []string) error {
	runner, err := app.NewToolRunner(appConfig, nil, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	return runner.Run(cmd.Context(), name, utils.Map(args, func(arg string) any { return arg }), nil)
}
