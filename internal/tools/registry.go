package tools

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/oshokin/somegotools/internal/config"
	"github.com/oshokin/somegotools/internal/downloader"
	"github.com/oshokin/somegotools/internal/fsutil"
	"github.com/oshokin/somegotools/internal/logger"
	"github.com/oshokin/somegotools/internal/pathargs"
)

// Defaults are the configurable parameter defaults of the registered tools.
type Defaults struct {
	// CopyParents is the default of cp's parents parameter.
	CopyParents bool
	// SizeUnits is the default of du's units parameter.
	SizeUnits string
	// FollowSymlinks is the default of du's check_softlinks parameter.
	FollowSymlinks bool
}

// DefaultsFromConfig takes the tool defaults from cfg.
func DefaultsFromConfig(cfg *config.Config) Defaults {
	return Defaults{
		CopyParents:    cfg.CopyParents,
		SizeUnits:      cfg.SizeUnits,
		FollowSymlinks: cfg.FollowSymlinks,
	}
}

// Tool is a registered helper together with its parameter table.
type Tool struct {
	sig  pathargs.Signature
	call pathargs.Func
}

// Name returns the tool name.
func (t *Tool) Name() string {
	return t.sig.Name
}

// Doc returns the tool description.
func (t *Tool) Doc() string {
	return t.sig.Doc
}

// Signature returns the parameter table of the tool.
func (t *Tool) Signature() pathargs.Signature {
	return t.sig
}

// PathParams returns the parameters whose text arguments arrive as paths.
func (t *Tool) PathParams() []string {
	return t.sig.PathParams()
}

// Call runs the tool.
func (t *Tool) Call(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	return t.call(ctx, args, kwargs)
}

// Registry maps tool names to tools.
type Registry struct {
	tools map[string]*Tool
}

// NewRegistry registers every tool. Each helper is bound to its parameter table
// and layered so text arguments of path-bearing parameters are converted to paths
// first and the call is logged after that.
func NewRegistry(cfg *config.Config, dl downloader.Downloader) (*Registry, error) {
	set := &toolset{
		sizer:      fsutil.NewSizer(cfg.DirSizeCacheEntries),
		downloader: dl,
	}

	definitions, err := set.definitions(DefaultsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	registry := &Registry{tools: make(map[string]*Tool, len(definitions))}

	for _, def := range definitions {
		bound, bindErr := pathargs.Bind(def.fn, def.sig)
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind tool %q: %w", def.sig.Name, bindErr)
		}

		coercion, layerErr := pathargs.CoercionLayer(def.sig)
		if layerErr != nil {
			return nil, fmt.Errorf("failed to wrap tool %q: %w", def.sig.Name, layerErr)
		}

		registry.tools[def.sig.Name] = &Tool{
			sig:  def.sig,
			call: pathargs.Chain(bound, coercion, loggingLayer(def.sig.Name, pathargs.FuncName(def.fn))),
		}
	}

	return registry, nil
}

// Call runs the tool registered under name.
func (r *Registry) Call(ctx context.Context, name string, args []any, kwargs map[string]any) (any, error) {
	tool, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	return tool.Call(ctx, args, kwargs)
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	tool, ok := r.tools[name]

	return tool, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.tools))
}

// loggingLayer logs every call of a tool together with its arguments and outcome.
// funcName is the Go function behind the tool.
func loggingLayer(name, funcName string) pathargs.Layer {
	return func(next pathargs.Func) pathargs.Func {
		return func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
			logger.DebugKV(ctx, "Calling tool", "tool", name, "func", funcName, "args", args, "kwargs", kwargs)

			startTime := time.Now()
			result, err := next(ctx, args, kwargs)
			duration := time.Since(startTime)

			if err != nil {
				logger.DebugKV(ctx, "Tool failed", "tool", name, "duration", duration, "error", err)
			} else {
				logger.DebugKV(ctx, "Tool finished", "tool", name, "duration", duration)
			}

			return result, err
		}
	}
}
