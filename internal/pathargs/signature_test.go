package pathargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTypeSet tests membership checks and formatting of declared types.
func TestTypeSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		typ         TypeSet
		pathBearing bool
		text        string
	}{
		{name: "path", typ: TypePath, pathBearing: true, text: "path"},
		{name: "text", typ: TypeText, pathBearing: false, text: "text"},
		{name: "optional path", typ: OptionalPath, pathBearing: true, text: "path|none"},
		{name: "path or text", typ: PathOrText, pathBearing: true, text: "path|text"},
		{name: "other", typ: TypeOther, pathBearing: false, text: "other"},
		{name: "unknown", typ: 0, pathBearing: false, text: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.pathBearing, tt.typ.IsPathBearing())
			assert.Equal(t, tt.text, tt.typ.String())
		})
	}

	assert.True(t, OptionalPath.Has(TypeNone))
	assert.False(t, TypePath.Has(0))
	assert.Equal(t, TypePath, File)
	assert.Equal(t, TypePath, Directory)
}

// TestNewSignature tests validation of parameter tables.
func TestNewSignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   []Param
		expected error
	}{
		{
			name: "valid table",
			params: []Param{
				Required("source", TypePath),
				Optional("parents", TypeOther, true),
				KeywordOnlyParam("units", TypeText, "Bytes"),
			},
		},
		{
			name:     "empty name",
			params:   []Param{Required("", TypePath)},
			expected: ErrEmptyParamName,
		},
		{
			name:     "duplicate name",
			params:   []Param{Required("a", TypePath), Required("a", TypeText)},
			expected: ErrDuplicateParam,
		},
		{
			name:     "positional after keyword-only",
			params:   []Param{KeywordOnlyRequired("k", TypeText), Required("p", TypePath)},
			expected: ErrParamOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sig, err := NewSignature("fn", "doc", tt.params...)
			if tt.expected != nil {
				require.ErrorIs(t, err, tt.expected)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "fn", sig.Name)
			assert.Len(t, sig.Params, len(tt.params))
		})
	}
}

// TestSignatureHelpers tests Lookup, PositionalCount and String.
func TestSignatureHelpers(t *testing.T) {
	t.Parallel()

	sig := MustSignature("cp", "copies",
		Required("source", TypePath),
		Required("dest", TypePath),
		Optional("parents", TypeOther, true),
		KeywordOnlyRequired("mode", TypeText))

	p, ok := sig.Lookup("parents")
	require.True(t, ok)
	assert.True(t, p.HasDefault)
	assert.Equal(t, true, p.Default)

	_, ok = sig.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, 3, sig.PositionalCount())
	assert.Equal(t, []int{0, 1, 2, -1}, sig.positionalIndexes())
	assert.Equal(t, "cp(source path, dest path, parents other = true, *mode text)", sig.String())
	assert.Equal(t, "keyword-only", KeywordOnly.String())
	assert.Equal(t, "positional", Positional.String())

	assert.Panics(t, func() { MustSignature("bad", "", Required("", TypePath)) })
}
