package pathargs

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/oshokin/somegotools/internal/fspath"
)

// Func is the uniform callable shape: positional and keyword arguments in,
// one result and an error out.
type Func func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// Layer wraps a Func into another Func.
type Layer func(next Func) Func

// pathParam is the wrap-time record of a path-bearing parameter.
type pathParam struct {
	// name is the parameter name.
	name string
	// index is the positional index, or -1 for keyword-only parameters.
	index int
	// hasDefault reports whether def should be injected when the parameter is omitted.
	hasDefault bool
	// def is the declared default, already converted when it was text.
	def any
}

// Wrapped is a callable whose path-bearing arguments are converted from text
// before the original function runs.
type Wrapped struct {
	fn         Func
	sig        Signature
	pathParams []pathParam
}

// Wrap returns a callable that converts text arguments of path-bearing
// parameters of sig into fspath.Path values before calling fn.
// The set of path-bearing parameters and their converted defaults are computed
// here, once; the only error is a textual default that is not a valid path.
func Wrap(fn Func, sig Signature) (*Wrapped, error) {
	var (
		indexes    = sig.positionalIndexes()
		pathParams = make([]pathParam, 0, len(sig.Params))
	)

	for i, p := range sig.Params {
		if !p.Type.IsPathBearing() {
			continue
		}

		pp := pathParam{
			name:       p.Name,
			index:      indexes[i],
			hasDefault: p.HasDefault,
		}

		if p.HasDefault {
			def, err := Coerce(p.Default)
			if err != nil {
				return nil, fmt.Errorf("default of parameter %q of %q: %w", p.Name, sig.Name, err)
			}

			pp.def = def
		}

		pathParams = append(pathParams, pp)
	}

	return &Wrapped{
		fn:         fn,
		sig:        sig,
		pathParams: pathParams,
	}, nil
}

// MustWrap is like Wrap but panics when a default is not a valid path.
func MustWrap(fn Func, sig Signature) *Wrapped {
	w, err := Wrap(fn, sig)
	if err != nil {
		panic(err)
	}

	return w
}

// CoercionLayer returns Wrap as a Layer, for use with Chain.
func CoercionLayer(sig Signature) (Layer, error) {
	// Validate defaults up front so the layer itself cannot fail.
	if _, err := Wrap(nil, sig); err != nil {
		return nil, err
	}

	return func(next Func) Func {
		return MustWrap(next, sig).Call
	}, nil
}

// Call converts path-bearing arguments and calls the original function.
// The caller's args and kwargs are left untouched; the function receives copies.
// Errors from the original function are returned as is.
func (w *Wrapped) Call(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	args = slices.Clone(args)

	kwargs = maps.Clone(kwargs)
	if kwargs == nil {
		kwargs = make(map[string]any, len(w.pathParams))
	}

	for _, p := range w.pathParams {
		if value, ok := kwargs[p.name]; ok {
			coerced, err := Coerce(value)
			if err != nil {
				return nil, err
			}

			kwargs[p.name] = coerced

			continue
		}

		if p.index >= 0 && p.index < len(args) {
			if isAbsent(args[p.index]) {
				continue
			}

			coerced, err := Coerce(args[p.index])
			if err != nil {
				return nil, err
			}

			args[p.index] = coerced

			continue
		}

		if p.hasDefault {
			kwargs[p.name] = p.def
		}
	}

	return w.fn(ctx, args, kwargs)
}

// Func returns the wrapped callable as a plain Func.
func (w *Wrapped) Func() Func {
	return w.Call
}

// Name returns the name of the original callable.
func (w *Wrapped) Name() string {
	return w.sig.Name
}

// Doc returns the description of the original callable.
func (w *Wrapped) Doc() string {
	return w.sig.Doc
}

// Signature returns the parameter table the callable was wrapped with.
func (w *Wrapped) Signature() Signature {
	return w.sig
}

// PathParams returns the names of the path-bearing parameters in declaration order.
func (w *Wrapped) PathParams() []string {
	names := make([]string, len(w.pathParams))
	for i, p := range w.pathParams {
		names[i] = p.name
	}

	return names
}

// Coerce converts text into an fspath.Path and returns any other value unchanged.
// The error, if any, is the one fspath.New returns.
func Coerce(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return value, nil
	}

	return fspath.New(text)
}

// isAbsent reports whether a positional value is an absence marker or empty text.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}

	text, ok := value.(string)

	return ok && text == ""
}

// Chain composes layers around fn. The first layer is the outermost, so it sees
// the arguments first.
func Chain(fn Func, layers ...Layer) Func {
	for i := len(layers) - 1; i >= 0; i-- {
		fn = layers[i](fn)
	}

	return fn
}
