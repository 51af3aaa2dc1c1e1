package fsutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/logger"
)

// DefaultSizeCacheEntries is the default number of symlinked directory sizes remembered per walk.
const DefaultSizeCacheEntries = 256

// Sizer computes directory sizes.
type Sizer struct {
	// cacheEntries bounds the per-walk cache of symlinked directory sizes.
	cacheEntries int
}

// sizeWalk is the state of a single DirSize call.
type sizeWalk struct {
	// followSymlinks tells whether symlink targets are counted.
	followSymlinks bool
	// targets caches sizes of symlinked directories by resolved path,
	// so several links to one directory walk it once.
	targets *lru.Cache[fspath.Path, int64]
	// visiting holds resolved directories on the current descent, to break link cycles.
	visiting map[fspath.Path]struct{}
}

// NewSizer creates a Sizer. A non-positive cacheEntries selects DefaultSizeCacheEntries.
func NewSizer(cacheEntries int) *Sizer {
	if cacheEntries <= 0 {
		cacheEntries = DefaultSizeCacheEntries
	}

	return &Sizer{cacheEntries: cacheEntries}
}

// DirSize returns the total size of regular files under dir, expressed in unit.
//
// With followSymlinks, a symlink to a file adds the target's size and a symlink
// to a directory adds that directory's size; each resolved directory is walked
// once per call and link cycles are skipped. Without it, symlinks add nothing.
func (s *Sizer) DirSize(ctx context.Context, dir fspath.Path, unit SizeUnit, followSymlinks bool) (float64, error) {
	if !dir.IsDir() {
		if !dir.Exists() {
			return 0, fmt.Errorf("failed to size directory '%s': %w", dir, fs.ErrNotExist)
		}

		return 0, fmt.Errorf("%w: '%s'", ErrNotADirectory, dir)
	}

	targets, err := lru.New[fspath.Path, int64](s.cacheEntries)
	if err != nil {
		return 0, fmt.Errorf("failed to create size cache: %w", err)
	}

	walk := &sizeWalk{
		followSymlinks: followSymlinks,
		targets:        targets,
		visiting:       make(map[fspath.Path]struct{}),
	}

	root := dir
	if resolved, resolveErr := dir.Resolve(); resolveErr == nil {
		root = resolved
		walk.visiting[resolved] = struct{}{}
	}

	total, err := walk.bytes(ctx, root)
	if err != nil {
		return 0, err
	}

	logger.Debugf(ctx, "Directory '%s' holds %d bytes", dir, total)

	return unit.Convert(total), nil
}

func (w *sizeWalk) bytes(ctx context.Context, dir fspath.Path) (int64, error) {
	var total int64

	err := filepath.WalkDir(dir.String(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err = ctx.Err(); err != nil {
			return err
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			if !w.followSymlinks {
				return nil
			}

			size, linkErr := w.symlinkBytes(ctx, fspath.Path(path))
			if linkErr != nil {
				return linkErr
			}

			total += size
		case d.Type().IsRegular():
			info, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}

			total += info.Size()
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk directory '%s': %w", dir, err)
	}

	return total, nil
}

func (w *sizeWalk) symlinkBytes(ctx context.Context, link fspath.Path) (int64, error) {
	info, err := os.Stat(link.String())
	if err != nil {
		logger.Debugf(ctx, "Skipping dangling symlink '%s': %v", link, err)

		return 0, nil
	}

	if info.Mode().IsRegular() {
		return info.Size(), nil
	}

	if !info.IsDir() {
		return 0, nil
	}

	target, err := link.Resolve()
	if err != nil {
		return 0, err
	}

	if _, ok := w.visiting[target]; ok {
		logger.Debugf(ctx, "Skipping symlink cycle '%s' -> '%s'", link, target)

		return 0, nil
	}

	if size, ok := w.targets.Get(target); ok {
		return size, nil
	}

	w.visiting[target] = struct{}{}
	size, err := w.bytes(ctx, target)
	delete(w.visiting, target)

	if err != nil {
		return 0, err
	}

	w.targets.Add(target, size)

	return size, nil
}
