// Package http provides the HTTP client used for downloads
// and its transport decorators: request/response debug logging and User-Agent injection.
package http
