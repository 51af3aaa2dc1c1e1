package fsutil

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/logger"
)

// RemoveAll removes a directory and everything below it, like `rm -r`.
// A missing path is not an error; a path that is not a directory is.
func RemoveAll(ctx context.Context, dir fspath.Path) error {
	if !dir.Exists() {
		logger.Debugf(ctx, "Directory '%s' does not exist, nothing to remove", dir)

		return nil
	}

	if !dir.IsDir() || dir.IsSymlink() {
		return fmt.Errorf("%w: '%s'", ErrNotADirectory, dir)
	}

	if err := os.RemoveAll(dir.String()); err != nil {
		return fmt.Errorf("failed to remove directory: %w", err)
	}

	logger.Debugf(ctx, "Removed directory '%s'", dir)

	return nil
}
