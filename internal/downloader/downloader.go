package downloader

//go:generate $MOCKGEN -source=downloader.go -destination=mocks/downloader_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/somegotools/internal/config"
	"github.com/oshokin/somegotools/internal/constants"
	"github.com/oshokin/somegotools/internal/fspath"
	"github.com/oshokin/somegotools/internal/logger"
	http_transport "github.com/oshokin/somegotools/internal/transport/http"
	"github.com/oshokin/somegotools/internal/utils"
)

// Downloader fetches URLs into local files.
type Downloader interface {
	// Download saves the body of url to savePath.
	// If savePath is an existing directory, the file name is taken from the URL.
	Download(ctx context.Context, url string, savePath fspath.Path) (*Result, error)
}

// Result describes a finished download.
type Result struct {
	// Path is the file that holds the content.
	Path fspath.Path
	// IsExist is true when the file was already present and the download was skipped.
	IsExist bool
	// BytesDownloaded is the number of bytes written.
	BytesDownloaded int64
	// Duration is the time spent on the transfer.
	Duration time.Duration
}

// DownloaderImpl implements Downloader over an HTTP client.
type DownloaderImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
}

// File options for overwriting the temporary file.
const overwriteFileOptions = os.O_CREATE | os.O_TRUNC | os.O_WRONLY

// throttleInterval is the period the speed limit is measured over.
const throttleInterval = time.Second

// NewDownloader creates a Downloader. A nil httpClient is replaced by one built from cfg.
func NewDownloader(cfg *config.Config, httpClient *http.Client) Downloader {
	if httpClient == nil {
		httpClient = http_transport.NewClient(http_transport.ClientOptions{
			Timeout:           cfg.DownloadTimeout,
			MaxLogLength:      cfg.ParsedMaxLogLength,
			UserAgentProvider: utils.NewUserAgentProvider(cfg.UserAgent),
		})
	}

	return &DownloaderImpl{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Download saves the body of url to savePath.
func (d *DownloaderImpl) Download(ctx context.Context, url string, savePath fspath.Path) (*Result, error) {
	target := savePath
	if savePath.IsDir() {
		target = savePath.Join(utils.FilenameFromURL(url))
	}

	if !d.cfg.ReplaceFiles && target.Exists() {
		logger.Infof(ctx, "File '%s' already exists, skipping download", target)

		return &Result{
			Path:    target,
			IsExist: true,
		}, nil
	}

	if err := target.Parent().MkdirAll(); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	response, err := d.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	startTime := time.Now()

	written, err := d.saveBody(ctx, response, target)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Path:            target,
		BytesDownloaded: written,
		Duration:        time.Since(startTime),
	}

	logger.InfoKV(ctx, "Download finished",
		"url", url,
		"path", target.String(),
		"size", humanize.Bytes(uint64(written)), //nolint:gosec // Written byte count is never negative.
		"duration", result.Duration.Round(time.Millisecond))

	return result, nil
}

func (d *DownloaderImpl) fetch(ctx context.Context, url string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	response, err := d.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch '%s': %w", url, err)
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return response, nil
}

// saveBody streams the response into a unique .part file next to target and renames it on success.
func (d *DownloaderImpl) saveBody(ctx context.Context, response *http.Response, target fspath.Path) (int64, error) {
	tempPath := fspath.Path(target.String() + "." + uuid.New().String() + constants.PartFileExtension)

	file, err := os.OpenFile(filepath.Clean(tempPath.String()), overwriteFileOptions, constants.DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}

	// If the download does not complete, the .part file is removed on exit.
	var downloadSucceeded bool

	defer func() {
		if downloadSucceeded {
			return
		}

		closeErr := file.Close()

		if removeErr := os.Remove(tempPath.String()); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v (close error: %v)",
				tempPath, removeErr, closeErr)
		}
	}()

	var writer io.Writer = file

	if d.cfg.ShowProgress && logger.Level() <= zap.InfoLevel {
		bar := progressbar.DefaultBytes(response.ContentLength, "Downloading")
		writer = io.MultiWriter(file, bar)
	}

	written, err := d.copyBody(ctx, writer, response.Body)
	if err != nil {
		return written, fmt.Errorf("failed to write file: %w", err)
	}

	// An unknown length is reported as -1 and cannot be verified.
	if response.ContentLength >= 0 && written != response.ContentLength {
		return written, fmt.Errorf("%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload, written, response.ContentLength)
	}

	if err = file.Close(); err != nil {
		return written, fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tempPath.String(), target.String()); err != nil {
		return written, fmt.Errorf("failed to rename temporary file: %w", err)
	}

	downloadSucceeded = true

	return written, nil
}

// copyBody copies body to writer, at most ParsedDownloadSpeedLimit bytes per second when a limit is set.
func (d *DownloaderImpl) copyBody(ctx context.Context, writer io.Writer, body io.Reader) (int64, error) {
	limit := d.cfg.ParsedDownloadSpeedLimit
	if limit <= 0 {
		return io.Copy(writer, body)
	}

	var written int64

	for {
		n, err := io.CopyN(writer, body, limit)
		written += n

		if errors.Is(err, io.EOF) {
			return written, nil
		}

		if err != nil {
			return written, err
		}

		// Throttle to respect speed limit.
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		case <-time.After(throttleInterval):
		}
	}
}
