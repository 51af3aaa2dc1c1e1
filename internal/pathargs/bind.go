package pathargs

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strings"
)

//nolint:gochecknoglobals // Immutable reflect types used for comparisons.
var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// binding holds everything Bind derives from the function and its table.
type binding struct {
	fn        reflect.Value
	fnType    reflect.Type
	sig       Signature
	indexes   []int
	withCtx   bool
	maxArgs   int
	resultFmt resultFormat
}

type resultFormat uint8

const (
	resultsNone resultFormat = iota
	resultsValue
	resultsError
	resultsValueError
)

// Bind adapts a typed Go function to Func using sig for parameter names,
// positions and defaults. The function may take a leading context.Context,
// which is filled from the call, followed by exactly one Go parameter per
// entry of sig. An empty sig.Name is replaced by FuncName(fn). Accepted result lists are (), (T), (error) and (T, error).
//
// The returned Func resolves every parameter from its positional slot, then its
// keyword, then its default, and reports a missing required parameter with
// ErrMissingArgument. Values are passed when assignable to the Go parameter
// type; numbers are converted between numeric kinds when the value fits exactly
// (ErrArgumentType otherwise), nil becomes the zero value,
// and a value assignable to *T's element is passed by pointer.
func Bind(fn any, sig Signature) (Func, error) {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func || fnValue.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotAFunction, fn)
	}

	if sig.Name == "" {
		sig.Name = FuncName(fn)
	}

	fnType := fnValue.Type()
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("%w: %s", ErrVariadicFunction, fnType)
	}

	withCtx := fnType.NumIn() > 0 && fnType.In(0) == contextType

	goParams := fnType.NumIn()
	if withCtx {
		goParams--
	}

	if goParams != len(sig.Params) {
		return nil, fmt.Errorf("%w: %s has %d parameters, signature %q declares %d",
			ErrParamCountMismatch, fnType, goParams, sig.Name, len(sig.Params))
	}

	format, err := parseResults(fnType)
	if err != nil {
		return nil, err
	}

	b := &binding{
		fn:        fnValue,
		fnType:    fnType,
		sig:       sig,
		indexes:   sig.positionalIndexes(),
		withCtx:   withCtx,
		maxArgs:   sig.PositionalCount(),
		resultFmt: format,
	}

	return b.call, nil
}

func parseResults(fnType reflect.Type) (resultFormat, error) {
	switch fnType.NumOut() {
	case 0:
		return resultsNone, nil
	case 1:
		if fnType.Out(0) == errorType {
			return resultsError, nil
		}

		return resultsValue, nil
	case 2: //nolint:mnd // (T, error) is the only two-result form.
		if fnType.Out(1) == errorType {
			return resultsValueError, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupportedResults, fnType)
}

func (b *binding) call(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	if len(args) > b.maxArgs {
		return nil, fmt.Errorf("%w: %q takes %d, got %d", ErrTooManyArguments, b.sig.Name, b.maxArgs, len(args))
	}

	for name := range kwargs {
		if _, ok := b.sig.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q for %q", ErrUnexpectedKeyword, name, b.sig.Name)
		}
	}

	var (
		in     = make([]reflect.Value, 0, b.fnType.NumIn())
		offset int
	)

	if b.withCtx {
		if ctx == nil {
			ctx = context.Background()
		}

		in = append(in, reflect.ValueOf(&ctx).Elem())
		offset = 1
	}

	for i, p := range b.sig.Params {
		value, err := b.resolve(i, p, args, kwargs)
		if err != nil {
			return nil, err
		}

		converted, err := convertArgument(value, b.fnType.In(i+offset))
		if err != nil {
			return nil, fmt.Errorf("parameter %q of %q: %w", p.Name, b.sig.Name, err)
		}

		in = append(in, converted)
	}

	return b.unpack(b.fn.Call(in))
}

func (b *binding) resolve(i int, p Param, args []any, kwargs map[string]any) (any, error) {
	keywordValue, hasKeyword := kwargs[p.Name]

	if index := b.indexes[i]; index >= 0 && index < len(args) {
		if hasKeyword {
			return nil, fmt.Errorf("%w: %q for %q", ErrMultipleValues, p.Name, b.sig.Name)
		}

		return args[index], nil
	}

	if hasKeyword {
		return keywordValue, nil
	}

	if p.HasDefault {
		return p.Default, nil
	}

	return nil, fmt.Errorf("%w: %q for %q", ErrMissingArgument, p.Name, b.sig.Name)
}

func (b *binding) unpack(out []reflect.Value) (any, error) {
	switch b.resultFmt {
	case resultsValue:
		return out[0].Interface(), nil
	case resultsError:
		return nil, asError(out[0])
	case resultsValueError:
		return out[0].Interface(), asError(out[1])
	default:
		return nil, nil
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}

	err, _ := v.Interface().(error)

	return err
}

func convertArgument(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	v := reflect.ValueOf(value)

	switch {
	case v.Type().AssignableTo(target):
		converted := reflect.New(target).Elem()
		converted.Set(v)

		return converted, nil
	case isNumeric(v.Kind()) && isNumeric(target.Kind()):
		converted, ok := convertNumber(v, target)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrArgumentType, value, target)
		}

		return converted, nil
	case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Elem()):
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(v)

		return ptr, nil
	}

	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrArgumentType, value, target)
}

// convertNumber converts v to the numeric type target when the value is kept exactly:
// no fraction dropped, no sign lost, no overflow.
func convertNumber(v reflect.Value, target reflect.Type) (reflect.Value, bool) {
	zero := reflect.Zero(target)

	switch {
	case v.CanInt():
		n := v.Int()

		switch {
		case zero.CanInt():
			if zero.OverflowInt(n) {
				return reflect.Value{}, false
			}
		case zero.CanUint():
			if n < 0 || zero.OverflowUint(uint64(n)) {
				return reflect.Value{}, false
			}
		case zero.CanFloat():
			if zero.OverflowFloat(float64(n)) {
				return reflect.Value{}, false
			}
		}
	case v.CanUint():
		n := v.Uint()

		switch {
		case zero.CanInt():
			if n > math.MaxInt64 || zero.OverflowInt(int64(n)) {
				return reflect.Value{}, false
			}
		case zero.CanUint():
			if zero.OverflowUint(n) {
				return reflect.Value{}, false
			}
		}
	case v.CanFloat():
		f := v.Float()

		switch {
		case zero.CanFloat():
			if zero.OverflowFloat(f) {
				return reflect.Value{}, false
			}
		case math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f):
			return reflect.Value{}, false
		case zero.CanInt():
			if f < math.MinInt64 || f >= math.MaxInt64 || zero.OverflowInt(int64(f)) {
				return reflect.Value{}, false
			}
		case zero.CanUint():
			if f < 0 || f >= math.MaxUint64 || zero.OverflowUint(uint64(f)) {
				return reflect.Value{}, false
			}
		}
	}

	return v.Convert(target), true
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// FuncName returns the short package-qualified name of a function, such as
// "fsutil.Copy", or an empty string when fn is not a function.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}

	name := f.Name()
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		name = name[slash+1:]
	}

	return strings.TrimSuffix(name, "-fm")
}
