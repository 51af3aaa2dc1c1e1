package pathargs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/somegotools/internal/fspath"
)

type ctxKey struct{}

func joinUnder(root fspath.Path, name string, depth int) fspath.Path {
	p := root
	for range depth {
		p = p.Join(name)
	}

	return p
}

func describe(ctx context.Context, p fspath.Path, verbose bool) (string, error) {
	if p == "" {
		return "", errors.New("empty path")
	}

	prefix, _ := ctx.Value(ctxKey{}).(string)
	if verbose {
		return prefix + "verbose:" + p.String(), nil
	}

	return prefix + p.String(), nil
}

func mustBind(t *testing.T, fn any, sig Signature) Func {
	t.Helper()

	bound, err := Bind(fn, sig)
	require.NoError(t, err)

	return bound
}

// TestBind_ResolvesArguments tests positional, keyword and default resolution.
func TestBind_ResolvesArguments(t *testing.T) {
	t.Parallel()

	sig := MustSignature("joinUnder", "",
		Required("root", TypePath),
		Required("name", TypeText),
		Optional("depth", TypeOther, 1))

	fn, err := Bind(joinUnder, sig)
	require.NoError(t, err)

	tests := []struct {
		name     string
		args     []any
		kwargs   map[string]any
		expected fspath.Path
	}{
		{
			name:     "all positional",
			args:     []any{fspath.Path("r"), "x", 2},
			expected: fspath.MustNew("r/x/x"),
		},
		{
			name:     "default used",
			args:     []any{fspath.Path("r"), "x"},
			expected: fspath.MustNew("r/x"),
		},
		{
			name:     "keyword for positional parameter",
			args:     []any{fspath.Path("r")},
			kwargs:   map[string]any{"name": "k", "depth": int64(3)},
			expected: fspath.MustNew("r/k/k/k"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := fn(context.Background(), tt.args, tt.kwargs)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestBind_Errors tests the errors a bound function reports for bad calls.
func TestBind_Errors(t *testing.T) {
	t.Parallel()

	sig := MustSignature("joinUnder", "",
		Required("root", TypePath),
		Required("name", TypeText),
		KeywordOnlyParam("depth", TypeOther, 1))

	fn, err := Bind(joinUnder, sig)
	require.NoError(t, err)

	tests := []struct {
		name     string
		args     []any
		kwargs   map[string]any
		expected error
	}{
		{
			name:     "missing required",
			args:     []any{fspath.Path("r")},
			expected: ErrMissingArgument,
		},
		{
			name:     "too many positional",
			args:     []any{fspath.Path("r"), "x", 2},
			expected: ErrTooManyArguments,
		},
		{
			name:     "unknown keyword",
			args:     []any{fspath.Path("r"), "x"},
			kwargs:   map[string]any{"width": 3},
			expected: ErrUnexpectedKeyword,
		},
		{
			name:     "same parameter twice",
			args:     []any{fspath.Path("r"), "x"},
			kwargs:   map[string]any{"name": "y"},
			expected: ErrMultipleValues,
		},
		{
			name:     "text where a path is expected",
			args:     []any{"r", "x"},
			expected: ErrArgumentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := fn(context.Background(), tt.args, tt.kwargs)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

// TestBind_NumericConversion tests that numbers are converted only when the value fits.
func TestBind_NumericConversion(t *testing.T) {
	t.Parallel()

	type sized struct {
		count int
		size  uint
		small int8
		ratio float32
	}

	sig := MustSignature("sized", "",
		Optional("count", TypeOther, 0),
		Optional("size", TypeOther, uint(0)),
		Optional("small", TypeOther, int8(0)),
		Optional("ratio", TypeOther, float32(0)))

	fn, err := Bind(func(count int, size uint, small int8, ratio float32) sized {
		return sized{count: count, size: size, small: small, ratio: ratio}
	}, sig)
	require.NoError(t, err)

	tests := []struct {
		name     string
		kwargs   map[string]any
		expected sized
		err      error
	}{
		{
			name:     "whole numbers convert",
			kwargs:   map[string]any{"count": 3.0, "size": 7, "small": int64(-128), "ratio": 2},
			expected: sized{count: 3, size: 7, small: -128, ratio: 2},
		},
		{
			name:     "unsigned into signed",
			kwargs:   map[string]any{"count": uint64(42), "small": uint8(127)},
			expected: sized{count: 42, small: 127},
		},
		{
			name:   "fraction into int",
			kwargs: map[string]any{"count": 3.9},
			err:    ErrArgumentType,
		},
		{
			name:   "negative into uint",
			kwargs: map[string]any{"size": -1},
			err:    ErrArgumentType,
		},
		{
			name:   "negative float into uint",
			kwargs: map[string]any{"size": -2.0},
			err:    ErrArgumentType,
		},
		{
			name:   "overflow of a narrow int",
			kwargs: map[string]any{"small": 300},
			err:    ErrArgumentType,
		},
		{
			name:   "huge unsigned into int",
			kwargs: map[string]any{"count": uint64(1 << 63)},
			err:    ErrArgumentType,
		},
		{
			name:   "overflow of float32",
			kwargs: map[string]any{"ratio": 1e300},
			err:    ErrArgumentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fn(context.Background(), nil, tt.kwargs)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestBind_Context tests that a leading context parameter receives the call context.
func TestBind_Context(t *testing.T) {
	t.Parallel()

	sig := MustSignature("describe", "",
		Required("p", TypePath),
		KeywordOnlyParam("verbose", TypeOther, false))

	fn, err := Bind(describe, sig)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "ctx:")

	result, err := fn(ctx, []any{fspath.Path("a")}, map[string]any{"verbose": true})
	require.NoError(t, err)
	assert.Equal(t, "ctx:verbose:a", result)

	//nolint:staticcheck // A nil context must be replaced rather than passed through.
	result, err = fn(nil, []any{fspath.Path("b")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", result)
}

// TestBind_ErrorPassthrough tests that the function's own error is returned unchanged.
func TestBind_ErrorPassthrough(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("disk full")

	fn := mustBind(t, func(fspath.Path) error { return expectedErr },
		MustSignature("fails", "", Required("p", TypePath)))

	result, err := fn(context.Background(), []any{fspath.Path("x")}, nil)
	assert.Nil(t, result)
	assert.Same(t, expectedErr, err)
}

// TestBind_ResultShapes tests every supported result list.
func TestBind_ResultShapes(t *testing.T) {
	t.Parallel()

	sig := MustSignature("shape", "", Required("n", TypeOther))

	none := mustBind(t, func(int) {}, sig)
	value := mustBind(t, func(n int) int { return n * 2 }, sig)
	onlyErr := mustBind(t, func(int) error { return nil }, sig)
	both := mustBind(t, func(n int) (int, error) { return n + 1, nil }, sig)

	ctx := context.Background()

	result, err := none(ctx, []any{1}, nil)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = value(ctx, []any{2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, result)

	result, err = onlyErr(ctx, []any{3}, nil)
	require.NoError(t, err)
	assert.Nil(t, result)

	result, err = both(ctx, []any{4}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, result)
}

// TestBind_OptionalPointer tests nil and value arguments for a pointer parameter.
func TestBind_OptionalPointer(t *testing.T) {
	t.Parallel()

	fn := mustBind(t, func(p *fspath.Path) string {
		if p == nil {
			return "none"
		}

		return p.String()
	}, MustSignature("opt", "", Optional("p", OptionalPath, nil)))

	result, err := fn(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "none", result)

	result, err = fn(context.Background(), []any{fspath.Path("given")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "given", result)
}

// TestBind_InvalidFunctions tests that Bind rejects shapes it cannot call.
func TestBind_InvalidFunctions(t *testing.T) {
	t.Parallel()

	one := MustSignature("one", "", Required("p", TypePath))

	tests := []struct {
		name     string
		fn       any
		expected error
	}{
		{name: "not a function", fn: 42, expected: ErrNotAFunction},
		{name: "nil function", fn: (func())(nil), expected: ErrNotAFunction},
		{name: "variadic", fn: func(...string) {}, expected: ErrVariadicFunction},
		{name: "count mismatch", fn: func(fspath.Path, int) {}, expected: ErrParamCountMismatch},
		{name: "two values", fn: func(fspath.Path) (int, int) { return 0, 0 }, expected: ErrUnsupportedResults},
		{name: "three results", fn: func(fspath.Path) (int, int, error) { return 0, 0, nil }, expected: ErrUnsupportedResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn, err := Bind(tt.fn, one)
			require.ErrorIs(t, err, tt.expected)
			assert.Nil(t, fn)
		})
	}

}

// TestWrapThenBind tests wrapping a bound typed function so it accepts text.
func TestWrapThenBind(t *testing.T) {
	t.Parallel()

	sig := MustSignature("joinUnder", "",
		Required("root", TypePath),
		Required("name", TypeText),
		KeywordOnlyParam("depth", TypeOther, 2))

	w := MustWrap(mustBind(t, joinUnder, sig), sig)

	result, err := w.Call(context.Background(), []any{"base", "leaf"}, nil)
	require.NoError(t, err)
	assert.Equal(t, fspath.MustNew("base/leaf/leaf"), result)
}

// TestFuncName tests the FuncName function.
func TestFuncName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pathargs.joinUnder", FuncName(joinUnder))
	assert.Equal(t, "pathargs.Coerce", FuncName(Coerce))
	assert.Empty(t, FuncName("not a function"))
	assert.Empty(t, FuncName((func())(nil)))
}

// TestBind_DefaultName tests that an unnamed signature takes the function name.
func TestBind_DefaultName(t *testing.T) {
	t.Parallel()

	fn := mustBind(t, joinUnder, MustSignature("", "",
		Required("root", TypePath),
		Required("name", TypeText),
		Required("depth", TypeOther)))

	_, err := fn(context.Background(), []any{fspath.Path("r")}, nil)
	require.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), `"pathargs.joinUnder"`)
}
