package fsutil

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/somegotools/internal/constants"
	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/logger"
)

// ExtractZip unpacks every entry of the archive at zipPath into saveDir.
// Entries whose names would land outside saveDir are rejected.
func ExtractZip(ctx context.Context, zipPath, saveDir fspath.Path) error {
	reader, err := zip.OpenReader(zipPath.String())
	if err != nil {
		return fmt.Errorf("failed to open zip archive: %w", err)
	}

	defer reader.Close() //nolint:errcheck // Read-only archive, error on close is not critical here.

	if err = saveDir.MkdirAll(); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	for _, entry := range reader.File {
		if err = ctx.Err(); err != nil {
			return err
		}

		target := saveDir.Join(filepath.FromSlash(entry.Name))
		if !target.IsWithin(saveDir) {
			return fmt.Errorf("%w: '%s'", ErrUnsafeArchivePath, entry.Name)
		}

		if err = extractEntry(entry, target); err != nil {
			return fmt.Errorf("failed to extract '%s': %w", entry.Name, err)
		}
	}

	logger.Debugf(ctx, "Extracted %d entries from '%s' to '%s'", len(reader.File), zipPath, saveDir)

	return nil
}

func extractEntry(entry *zip.File, target fspath.Path) (err error) {
	if entry.FileInfo().IsDir() {
		return target.MkdirAll()
	}

	if err = target.Parent().MkdirAll(); err != nil {
		return err
	}

	in, err := entry.Open()
	if err != nil {
		return err
	}

	defer in.Close() //nolint:errcheck // Read-only entry, error on close is not critical here.

	perm := entry.Mode().Perm()
	if perm == 0 {
		perm = constants.DefaultFilePermissions
	}

	out, err := os.OpenFile(filepath.Clean(target.String()), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // Archives are user-supplied local files; size is bounded by the archive itself.
	_, err = io.Copy(out, in)

	return err
}
