package app

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/somegotools/internal/config"
	"github.com/oshokin/somegotools/internal/logger"
)

// ExecuteConfigInitCommand writes a configuration file holding the defaults.
func ExecuteConfigInitCommand(ctx context.Context, out io.Writer, path string, force bool) error {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.SaveDefaultConfig(path, force); err != nil {
		return err
	}

	logger.Debugf(ctx, "Default configuration written to '%s'", path)

	_, err := fmt.Fprintf(out, "Configuration written to %s\n", path)

	return err
}
