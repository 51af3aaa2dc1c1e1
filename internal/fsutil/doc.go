// Package fsutil implements filesystem helpers over fspath.Path values:
// copying files and trees, recursive removal, directory sizing in
// configurable units and zip extraction.
package fsutil
