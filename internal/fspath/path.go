package fspath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/somegotools/internal/constants"
)

// Path is a cleaned filesystem path.
// The zero value is not a valid path; use New to build one from text.
type Path string

// ErrInvalidPath indicates that text cannot be turned into a path.
var ErrInvalidPath = errors.New("invalid path")

// New builds a Path from text.
// Empty text denotes the current directory, mirroring how shells treat it.
// Text containing a NUL byte is rejected because no filesystem accepts it.
func New(text string) (Path, error) {
	if strings.IndexByte(text, 0) >= 0 {
		return "", fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidPath, text)
	}

	if text == "" {
		return Path("."), nil
	}

	return Path(filepath.Clean(text)), nil
}

// MustNew is like New but panics on invalid text.
func MustNew(text string) Path {
	p, err := New(text)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the path as text.
func (p Path) String() string {
	return string(p)
}

// Join appends elements to the path.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Parent returns the directory containing the path.
func (p Path) Parent() Path {
	return Path(filepath.Dir(string(p)))
}

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Ext returns the file name extension, including the dot.
func (p Path) Ext() string {
	return filepath.Ext(string(p))
}

// Abs returns an absolute representation of the path.
func (p Path) Abs() (Path, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", err
	}

	return Path(abs), nil
}

// Resolve returns the absolute path with every symlink evaluated.
func (p Path) Resolve() (Path, error) {
	resolved, err := filepath.EvalSymlinks(string(p))
	if err != nil {
		return "", err
	}

	return Path(resolved).Abs()
}

// Stat returns file info, following symlinks.
func (p Path) Stat() (fs.FileInfo, error) {
	return os.Stat(string(p))
}

// Exists reports whether anything exists at the path.
// A dangling symlink counts as existing.
func (p Path) Exists() bool {
	_, err := os.Lstat(string(p))

	return err == nil
}

// IsDir reports whether the path is a directory, following symlinks.
func (p Path) IsDir() bool {
	info, err := os.Stat(string(p))

	return err == nil && info.IsDir()
}

// IsFile reports whether the path is a regular file, following symlinks.
func (p Path) IsFile() bool {
	info, err := os.Stat(string(p))

	return err == nil && info.Mode().IsRegular()
}

// IsSymlink reports whether the path itself is a symbolic link.
func (p Path) IsSymlink() bool {
	info, err := os.Lstat(string(p))

	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// MkdirAll creates the directory and any missing parents.
func (p Path) MkdirAll() error {
	return os.MkdirAll(string(p), constants.DefaultFolderPermissions)
}

// IsWithin reports whether the path lies inside root (or equals it).
// Both paths are compared lexically after cleaning.
func (p Path) IsWithin(root Path) bool {
	rel, err := filepath.Rel(string(root), string(p))
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
