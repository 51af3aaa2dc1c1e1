package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// truncatedSuffix marks a log dump cut at the configured length.
	truncatedSuffix = "... [truncated]"
)
