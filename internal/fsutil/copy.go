package fsutil

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oshokin/somegotools/internal/constants"
	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/logger"
)

// Copy copies a file or a directory tree to dest and returns the path written.
//
// A directory source is merged into dest, which may already exist.
// A file source is copied with its mode and modification time; if dest is an
// existing directory the file is placed inside it. With parents set, missing
// parent directories of dest are created first.
func Copy(ctx context.Context, source, dest fspath.Path, parents bool) (fspath.Path, error) {
	info, err := source.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat copy source: %w", err)
	}

	if info.IsDir() {
		if err = checkTreeTarget(source, dest); err != nil {
			return "", err
		}

		if err = copyTree(ctx, source, dest); err != nil {
			return "", err
		}

		logger.Debugf(ctx, "Copied directory '%s' to '%s'", source, dest)

		return dest, nil
	}

	if parents {
		parent := dest.Parent()
		if dest.IsDir() {
			parent = dest
		}

		if err = parent.MkdirAll(); err != nil {
			return "", fmt.Errorf("failed to create parent directories: %w", err)
		}
	}

	target := dest
	if dest.IsDir() {
		target = dest.Join(source.Base())
	}

	if err = copyFile(source, target, info); err != nil {
		return "", err
	}

	logger.Debugf(ctx, "Copied file '%s' to '%s'", source, target)

	return target, nil
}

func copyTree(ctx context.Context, source, dest fspath.Path) error {
	return filepath.WalkDir(source.String(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err = ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(source.String(), path)
		if err != nil {
			return err
		}

		target := dest.Join(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target.String(), info.Mode().Perm()|0o700) //nolint:mnd // Owner must keep access to fill the tree.
		case d.Type()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		case d.Type().IsRegular():
			return copyFile(fspath.Path(path), target, info)
		default:
			logger.Warnf(ctx, "Skipping special file '%s'", path)

			return nil
		}
	})
}

// checkTreeTarget rejects a dest that is the source directory or lies inside it.
func checkTreeTarget(source, dest fspath.Path) error {
	resolvedSource, err := source.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve copy source: %w", err)
	}

	resolvedDest, err := resolveExisting(dest)
	if err != nil {
		return fmt.Errorf("failed to resolve copy destination: %w", err)
	}

	switch {
	case resolvedDest == resolvedSource:
		return fmt.Errorf("%w: '%s' and '%s'", ErrSameFile, source, dest)
	case resolvedDest.IsWithin(resolvedSource):
		return fmt.Errorf("%w: '%s' is inside '%s'", ErrCopyIntoItself, dest, source)
	default:
		return nil
	}
}

// resolveExisting resolves the longest existing prefix of p and appends the rest.
func resolveExisting(p fspath.Path) (fspath.Path, error) {
	if p.Exists() {
		return p.Resolve()
	}

	parent := p.Parent()
	if parent == p {
		return p.Abs()
	}

	resolvedParent, err := resolveExisting(parent)
	if err != nil {
		return "", err
	}

	return resolvedParent.Join(p.Base()), nil
}

func copySymlink(source string, target fspath.Path) error {
	link, err := os.Readlink(source)
	if err != nil {
		return err
	}

	if target.Exists() {
		if err = os.Remove(target.String()); err != nil {
			return err
		}
	}

	return os.Symlink(link, target.String())
}

func copyFile(source, target fspath.Path, info fs.FileInfo) (err error) {
	// Opening the target truncates it, which would empty the source too.
	if targetInfo, statErr := target.Stat(); statErr == nil && os.SameFile(info, targetInfo) {
		return fmt.Errorf("%w: '%s' and '%s'", ErrSameFile, source, target)
	}

	in, err := os.Open(filepath.Clean(source.String()))
	if err != nil {
		return fmt.Errorf("failed to open copy source: %w", err)
	}

	defer in.Close() //nolint:errcheck // Read-only file, error on close is not critical here.

	out, err := os.OpenFile(filepath.Clean(target.String()),
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create copy target: %w", err)
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if err = out.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to copy file mode: %w", err)
	}

	modTime := info.ModTime()

	if err = os.Chtimes(target.String(), modTime, modTime); err != nil {
		return fmt.Errorf("failed to copy file times: %w", err)
	}

	return nil
}
