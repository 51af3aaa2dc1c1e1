package fspath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/somegotools/internal/constants"
)

// TestNew tests the New function.
func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expected    Path
		expectError bool
	}{
		{
			name:     "relative path",
			input:    "a/b.txt",
			expected: Path(filepath.Join("a", "b.txt")),
		},
		{
			name:     "redundant separators are cleaned",
			input:    "a//b/./c/",
			expected: Path(filepath.Join("a", "b", "c")),
		},
		{
			name:     "empty text is the current directory",
			input:    "",
			expected: Path("."),
		},
		{
			name:        "NUL byte is rejected",
			input:       "bad\x00name",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := New(tt.input)
			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidPath)
				assert.Empty(t, result)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestMustNew tests that MustNew panics on invalid text.
func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Path("x"), MustNew("x"))
	assert.Panics(t, func() { MustNew("\x00") })
}

// TestComposition tests Join, Parent, Base and Ext.
func TestComposition(t *testing.T) {
	t.Parallel()

	p := MustNew("dir/sub")

	joined := p.Join("file.tar.gz")
	assert.Equal(t, Path(filepath.Join("dir", "sub", "file.tar.gz")), joined)
	assert.Equal(t, p, joined.Parent())
	assert.Equal(t, "file.tar.gz", joined.Base())
	assert.Equal(t, ".gz", joined.Ext())
	assert.Equal(t, filepath.Join("dir", "sub"), p.String())
}

// TestKindQueries tests Exists, IsDir, IsFile and IsSymlink.
func TestKindQueries(t *testing.T) {
	t.Parallel()

	root := Path(t.TempDir())
	file := root.Join("file.txt")
	link := root.Join("link")
	missing := root.Join("missing")

	require.NoError(t, os.WriteFile(file.String(), []byte("x"), constants.DefaultFilePermissions))
	require.NoError(t, os.Symlink(file.String(), link.String()))

	assert.True(t, root.Exists())
	assert.True(t, root.IsDir())
	assert.False(t, root.IsFile())

	assert.True(t, file.Exists())
	assert.True(t, file.IsFile())
	assert.False(t, file.IsDir())
	assert.False(t, file.IsSymlink())

	assert.True(t, link.IsSymlink())
	assert.True(t, link.IsFile())

	assert.False(t, missing.Exists())
	assert.False(t, missing.IsDir())
	assert.False(t, missing.IsFile())
}

// TestResolve tests that Resolve follows symlinks.
func TestResolve(t *testing.T) {
	t.Parallel()

	root, err := Path(t.TempDir()).Resolve()
	require.NoError(t, err)

	target := root.Join("target")
	link := root.Join("link")

	require.NoError(t, target.MkdirAll())
	require.NoError(t, os.Symlink(target.String(), link.String()))

	resolved, err := link.Resolve()
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

// TestIsWithin tests the IsWithin method.
func TestIsWithin(t *testing.T) {
	t.Parallel()

	root := MustNew("/data/out")

	assert.True(t, MustNew("/data/out").IsWithin(root))
	assert.True(t, MustNew("/data/out/a/b").IsWithin(root))
	assert.True(t, MustNew("/data/out/..a").IsWithin(root))
	assert.False(t, MustNew("/data/outside").IsWithin(root))
	assert.False(t, MustNew("/data").IsWithin(root))
	assert.False(t, MustNew("/data/out/../../etc").IsWithin(root))
}
