package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/somegotools/internal/config"
	"github.com/oshokin/somegotools/internal/downloader"
	mock_downloader "github.com/oshokin/somegotools/internal/downloader/mocks"
	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/sheets"
	"github.com/oshokin/somegotools/internal/tools"
	"github.com/oshokin/somegotools/internal/version"
)

// TestToolRunner_Run tests printing of tool results.
func TestToolRunner_Run(t *testing.T) {
	t.Parallel()

	root := fspath.Path(t.TempDir())
	require.NoError(t, os.WriteFile(root.Join("a.bin").String(), []byte("12345"), 0o600))

	ctrl := gomock.NewController(t)
	mockDownloader := mock_downloader.NewMockDownloader(ctrl)
	mockDownloader.EXPECT().
		Download(gomock.Any(), "https://example.com/x.bin", root.Join("x.bin")).
		Return(&downloader.Result{Path: root.Join("x.bin"), BytesDownloaded: 2048, Duration: time.Second}, nil)
	mockDownloader.EXPECT().
		Download(gomock.Any(), "https://example.com/a.bin", root).
		Return(&downloader.Result{Path: root.Join("a.bin"), IsExist: true}, nil)

	runner, err := NewToolRunner(config.DefaultConfig(), mockDownloader, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		tool     string
		args     []any
		kwargs   map[string]any
		expected string
	}{
		{
			name:     "size in default units",
			tool:     tools.DirSizeTool,
			args:     []any{root.String()},
			expected: "5 Bytes\n",
		},
		{
			name:     "size in requested units",
			tool:     tools.DirSizeTool,
			args:     []any{root.String()},
			kwargs:   map[string]any{"units": "KB"},
			expected: "0.005 KB\n",
		},
		{
			name:     "copied path",
			tool:     tools.CopyTool,
			args:     []any{root.Join("a.bin").String(), root.Join("b", "c.bin").String()},
			expected: root.Join("b", "c.bin").String() + "\n",
		},
		{
			name:     "download saved",
			tool:     tools.DownloadTool,
			args:     []any{"https://example.com/x.bin", root.Join("x.bin").String()},
			expected: root.Join("x.bin").String() + " saved (2.0 kB in 1s)\n",
		},
		{
			name:     "download skipped",
			tool:     tools.DownloadTool,
			args:     []any{"https://example.com/a.bin", root.String()},
			expected: root.Join("a.bin").String() + " already exists, skipped\n",
		},
		{
			name:     "no output",
			tool:     tools.RemoveTool,
			args:     []any{root.Join("b").String()},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			runner.out = &out

			require.NoError(t, runner.Run(context.Background(), tt.tool, tt.args, tt.kwargs))
			assert.Equal(t, tt.expected, out.String())
		})
	}

	assert.Contains(t, runner.Names(), tools.UnzipTool)
	require.ErrorIs(t, runner.Run(context.Background(), "nope", nil, nil), tools.ErrUnknownTool)
}

// TestExecuteColumnCommand tests conversion in both directions.
func TestExecuteColumnCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, ExecuteColumnCommand(&out, []string{"1", "28", "AB", "zz"}))
	assert.Equal(t, "1\tA\n28\tAB\nAB\t28\nzz\t702\n", out.String())

	require.ErrorIs(t, ExecuteColumnCommand(&out, []string{"0"}), sheets.ErrInvalidColumn)
	require.ErrorIs(t, ExecuteColumnCommand(&out, []string{"A-"}), sheets.ErrInvalidColumn)
}

// TestExecuteRangeCommand tests the range printer.
func TestExecuteRangeCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, ExecuteRangeCommand(&out, 2, 3, 4, 27, false))
	assert.Equal(t, "B3:AB6\n", out.String())

	require.ErrorIs(t, ExecuteRangeCommand(&out, 1, 1, 0, 3, false), sheets.ErrEmptyTable)
	require.ErrorIs(t, ExecuteRangeCommand(&out, 1, 0, 1, 1, false), sheets.ErrInvalidRow)
	require.ErrorIs(t, ExecuteRangeCommand(&out, 0, 1, 1, 1, true), sheets.ErrInvalidColumn)
}

// TestExecuteRangeCommand_Cells tests listing every cell of the range.
func TestExecuteRangeCommand_Cells(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, ExecuteRangeCommand(&out, 26, 9, 2, 3, true))
	assert.Equal(t, "Z9\tAA9\tAB9\nZ10\tAA10\tAB10\n", out.String())
}

// TestExecuteConfigInitCommand tests writing and protecting the default config file.
func TestExecuteConfigInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")

	var out bytes.Buffer

	require.NoError(t, ExecuteConfigInitCommand(context.Background(), &out, path, false))
	assert.Contains(t, out.String(), path)
	assert.FileExists(t, path)

	require.ErrorIs(t, ExecuteConfigInitCommand(context.Background(), &out, path, false), config.ErrConfigExists)
	require.NoError(t, ExecuteConfigInitCommand(context.Background(), &out, path, true))
}

// TestExecuteVersionCommand tests the version printer.
func TestExecuteVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, ExecuteVersionCommand(&out, false))
	require.NoError(t, ExecuteVersionCommand(&out, true))
	assert.Equal(t, version.Short()+"\n"+version.Full()+"\n", out.String())
}
