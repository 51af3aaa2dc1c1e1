// Package tools registers the filesystem and download helpers under short names
// and exposes them with a uniform call shape. Every helper is described by a
// parameter table, so path-bearing arguments may be passed as plain text.
package tools
