package tools

import "errors"

// ErrUnknownTool indicates that no tool is registered under the requested name.
var ErrUnknownTool = errors.New("unknown tool")
