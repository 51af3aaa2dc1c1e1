package downloader

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates that the server answered with a status other than 200 OK.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")

	// ErrIncompleteDownload indicates that fewer or more bytes arrived than the server announced.
	ErrIncompleteDownload = errors.New("incomplete download")
)
