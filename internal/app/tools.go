package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/somegotools/internal/config"
	"github.com/oshokin/somegotools/internal/downloader"
	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/logger"
	"github.com/oshokin/somegotools/internal/tools"
)

const (
	// sizePrecision is the number of decimals printed for directory sizes.
	sizePrecision = 3

	// durationPrecision is the rounding of printed download durations.
	durationPrecision = time.Millisecond
)

// ToolRunner runs registered tools and prints their results.
type ToolRunner struct {
	cfg      *config.Config
	registry *tools.Registry
	out      io.Writer
}

// NewToolRunner builds the registry for cfg. A nil dl selects the HTTP downloader.
func NewToolRunner(cfg *config.Config, dl downloader.Downloader, out io.Writer) (*ToolRunner, error) {
	if dl == nil {
		dl = downloader.NewDownloader(cfg, nil)
	}

	registry, err := tools.NewRegistry(cfg, dl)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	return &ToolRunner{
		cfg:      cfg,
		registry: registry,
		out:      out,
	}, nil
}

// Run calls the tool registered under name and prints its result.
func (r *ToolRunner) Run(ctx context.Context, name string, args []any, kwargs map[string]any) error {
	ctx = logger.WithKV(ctx, "tool", name)

	result, err := r.registry.Call(ctx, name, args, kwargs)
	if err != nil {
		return err
	}

	return r.print(ctx, name, result, kwargs)
}

// Names returns the registered tool names.
func (r *ToolRunner) Names() []string {
	return r.registry.Names()
}

func (r *ToolRunner) print(ctx context.Context, name string, result any, kwargs map[string]any) error {
	var err error

	switch value := result.(type) {
	case fspath.Path:
		_, err = fmt.Fprintln(r.out, value)
	case float64:
		units := r.cfg.SizeUnits
		if requested, ok := kwargs["units"].(string); ok && requested != "" {
			units = requested
		}

		_, err = fmt.Fprintf(r.out, "%s %s\n", humanize.FtoaWithDigits(value, sizePrecision), units)
	case *downloader.Result:
		if value.IsExist {
			_, err = fmt.Fprintf(r.out, "%s already exists, skipped\n", value.Path)

			break
		}

		_, err = fmt.Fprintf(r.out, "%s saved (%s in %s)\n",
			value.Path,
			humanize.Bytes(uint64(value.BytesDownloaded)), //nolint:gosec // Byte counts are never negative.
			value.Duration.Round(durationPrecision))
	case nil:
		logger.Debugf(ctx, "Tool '%s' finished without output", name)
	default:
		_, err = fmt.Fprintln(r.out, value)
	}

	return err
}
