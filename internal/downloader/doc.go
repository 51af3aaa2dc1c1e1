// Package downloader saves the content of a URL to a local path.
// Data is streamed into a temporary .part file that is renamed into place only after
// the whole body has arrived, so an interrupted download never leaves a truncated file behind.
package downloader
