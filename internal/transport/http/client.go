package http

import (
	"net/http"
	"time"

	"github.com/oshokin/somegotools/internal/utils"
)

// ClientOptions configures NewClient.
type ClientOptions struct {
	// Timeout bounds a whole request including the body read. Zero disables it.
	Timeout time.Duration
	// MaxLogLength caps logged dumps; see NewLogTransport.
	MaxLogLength int64
	// UserAgentProvider supplies the User-Agent for requests that have none.
	UserAgentProvider utils.UserAgentProvider
	// Base is the innermost transport. Nil selects http.DefaultTransport.
	Base http.RoundTripper
}

// NewClient builds an HTTP client whose transport injects the User-Agent and logs traffic at debug level.
func NewClient(opts ClientOptions) *http.Client {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}

	provider := opts.UserAgentProvider
	if provider == nil {
		provider = utils.NewUserAgentProvider("")
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: NewUserAgentInjector(NewLogTransport(base, opts.MaxLogLength), provider),
	}
}
