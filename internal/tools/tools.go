package tools

import (
	"context"
	"fmt"

	"github.com/oshokin/somegotools/internal/downloader"
	"github.com/oshokin/somegotools/internal/fsutil"
	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/pathargs"
)

// Tool names.
const (
	// CopyTool copies files and directory trees.
	CopyTool = "cp"
	// RemoveTool removes a directory tree.
	RemoveTool = "rm-r"
	// DirSizeTool measures a directory.
	DirSizeTool = "du"
	// UnzipTool extracts a zip archive.
	UnzipTool = "unzip"
	// DownloadTool saves a URL to a file.
	DownloadTool = "download"
)

// toolset holds the dependencies the helpers close over.
type toolset struct {
	sizer      *fsutil.Sizer
	downloader downloader.Downloader
}

// definition pairs a helper with its parameter table.
type definition struct {
	fn  any
	sig pathargs.Signature
}

func (s *toolset) definitions(defaults Defaults) ([]definition, error) {
	signatures := []struct {
		fn     any
		name   string
		doc    string
		params []pathargs.Param
	}{
		{
			fn:   fsutil.Copy,
			name: CopyTool,
			doc:  "Copies a file or a directory tree and returns the path written.",
			params: []pathargs.Param{
				pathargs.Required("source", pathargs.TypePath),
				pathargs.Required("dest", pathargs.TypePath),
				pathargs.Optional("parents", pathargs.TypeOther, defaults.CopyParents),
			},
		},
		{
			fn:   fsutil.RemoveAll,
			name: RemoveTool,
			doc:  "Removes a directory tree. A missing directory is ignored.",
			params: []pathargs.Param{
				pathargs.Required("folder", pathargs.Directory),
			},
		},
		{
			fn:   s.dirSize,
			name: DirSizeTool,
			doc:  "Returns the total size of files in a directory, in the given units.",
			params: []pathargs.Param{
				pathargs.Required("directory", pathargs.Directory),
				pathargs.Optional("units", pathargs.TypeText, defaults.SizeUnits),
				pathargs.Optional("check_softlinks", pathargs.TypeOther, defaults.FollowSymlinks),
			},
		},
		{
			fn:   fsutil.ExtractZip,
			name: UnzipTool,
			doc:  "Extracts a zip archive into a directory.",
			params: []pathargs.Param{
				pathargs.Required("zip_path", pathargs.File),
				pathargs.Required("save_dir", pathargs.Directory),
			},
		},
		{
			fn:   s.download,
			name: DownloadTool,
			doc:  "Downloads a URL to a file or into a directory.",
			params: []pathargs.Param{
				pathargs.Required("url", pathargs.TypeText),
				pathargs.Required("save_path", pathargs.File),
			},
		},
	}

	result := make([]definition, 0, len(signatures))

	for _, item := range signatures {
		sig, err := pathargs.NewSignature(item.name, item.doc, item.params...)
		if err != nil {
			return nil, fmt.Errorf("failed to describe tool %q: %w", item.name, err)
		}

		result = append(result, definition{fn: item.fn, sig: sig})
	}

	return result, nil
}

func (s *toolset) dirSize(ctx context.Context, directory fspath.Path, units string, checkSoftlinks bool) (float64, error) {
	unit, err := fsutil.ParseSizeUnit(units)
	if err != nil {
		return 0, err
	}

	return s.sizer.DirSize(ctx, directory, unit, checkSoftlinks)
}

func (s *toolset) download(ctx context.Context, url string, savePath fspath.Path) (*downloader.Result, error) {
	return s.downloader.Download(ctx, url, savePath)
}
