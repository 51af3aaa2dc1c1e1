// Package app implements the CLI commands: it builds the tool registry from the
// configuration, runs the requested tool with text arguments and prints the result.
package app
