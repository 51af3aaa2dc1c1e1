package app

import (
	"fmt"
	"io"

	"github.com/oshokin/somegotools/internal/version"
)

// ExecuteVersionCommand prints the build information; full adds the commit and build time.
func ExecuteVersionCommand(out io.Writer, full bool) error {
	text := version.Short()
	if full {
		text = version.Full()
	}

	_, err := fmt.Fprintln(out, text)

	return err
}
