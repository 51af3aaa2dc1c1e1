package fsutil

import "errors"

var (
	// ErrUnknownSizeUnit indicates a size unit name that is not recognized.
	ErrUnknownSizeUnit = errors.New("unknown size unit")
	// ErrNotADirectory indicates that a directory was expected.
	ErrNotADirectory = errors.New("not a directory")
	// ErrUnsafeArchivePath indicates an archive entry that would be written outside the target directory.
	ErrUnsafeArchivePath = errors.New("archive entry escapes target directory")
	// ErrSameFile indicates a copy whose source and destination are the same file or directory.
	ErrSameFile = errors.New("source and destination are the same")
	// ErrCopyIntoItself indicates a directory copy whose destination lies inside the source.
	ErrCopyIntoItself = errors.New("cannot copy a directory into itself")
)
