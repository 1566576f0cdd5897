package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultUserAgent = "celestial-bootstrap"
	streamBufferSize = 32 * 1024
	staleSuffix      = ".stale"
)

// HTTPDownloader fetches artifacts over HTTP with digest verification.
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// DownloaderOption configures an HTTPDownloader.
type DownloaderOption func(*HTTPDownloader)

// WithHTTPClient sets the HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) DownloaderOption {
	return func(d *HTTPDownloader) {
		d.client = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) DownloaderOption {
	return func(d *HTTPDownloader) {
		d.userAgent = ua
	}
}

// WithLogger sets the logger for download events.
func WithLogger(l *slog.Logger) DownloaderOption {
	return func(d *HTTPDownloader) {
		d.logger = l
	}
}

// NewHTTPDownloader creates a new HTTP downloader. No timeout is set on the
// default client.
func NewHTTPDownloader(opts ...DownloaderOption) *HTTPDownloader {
	d := &HTTPDownloader{
		client:    &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch downloads url to dst.
//
// When expectedDigest is set and dst already hashes to it, Fetch returns
// without touching the network. Otherwise, once the GET succeeds, a
// mismatching dst is moved aside to dst+".stale" and the body is streamed into a freshly created file and the
// result is verified. A file that fails verification stays on disk.
func (d *HTTPDownloader) Fetch(ctx context.Context, url, dst, expectedDigest string, reporter ProgressReporter) (err error) {
	if reporter == nil {
		reporter = NopReporter{}
	}
	expectedDigest = strings.ToLower(strings.TrimSpace(expectedDigest))

	parent, err := parentDir(dst)
	if err != nil {
		return err
	}

	stale := false
	if expectedDigest != "" {
		matches, exists := d.matchesDigest(dst, expectedDigest)
		if matches {
			d.logger.Debug("artifact up to date", "path", dst, "sha256", expectedDigest)
			return nil
		}
		stale = exists
	}

	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", parent, err)
	}

	total, err := d.contentLength(ctx, url)
	if err != nil {
		return err
	}

	resp, err := d.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	// The installed copy stays in place until the server has answered.
	if stale {
		if err := moveAside(dst); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	d.logger.Info("downloading artifact", "url", url, "path", dst, "size", total)

	progress := NewProgress(dst, total)
	reporter.Start(progress)
	defer func() { reporter.Finish(progress, err) }()

	if err := stream(resp.Body, f, progress, reporter); err != nil {
		_ = f.Close()
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	if expectedDigest != "" {
		actual, err := SHA256File(dst)
		if err != nil {
			return err
		}
		if actual != expectedDigest {
			return &DigestMismatchError{Path: dst, Expected: expectedDigest, Actual: actual}
		}
	}

	d.logger.Debug("download complete", "path", dst)
	return nil
}

// matchesDigest reports whether path hashes to digest, and whether anything
// exists at path at all.
func (d *HTTPDownloader) matchesDigest(path, digest string) (matches, exists bool) {
	if _, err := os.Lstat(path); err != nil {
		return false, false
	}
	actual, err := SHA256File(path)
	if err != nil {
		d.logger.Warn("cannot hash existing artifact", "path", path, "error", err)
		return false, true
	}
	return actual == digest, true
}

// contentLength issues a HEAD request and returns the advertised size, or 0
// when the server does not say. Only transport failures are errors.
func (d *HTTPDownloader) contentLength(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating HEAD request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 || resp.ContentLength < 0 {
		return 0, nil
	}
	return resp.ContentLength, nil
}

func (d *HTTPDownloader) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating GET request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &HTTPStatusError{Method: http.MethodGet, URL: url, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// stream copies body into w chunk by chunk in arrival order, advancing
// progress after each successful write.
func stream(body io.Reader, w io.Writer, progress *Progress, reporter ProgressReporter) error {
	buf := make([]byte, streamBufferSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return fmt.Errorf("writing chunk: %w", err)
			}
			progress.Add(int64(n))
			reporter.Update(progress)
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("reading body: %w", readErr)
		}
	}
}

// parentDir returns the directory containing dst. Paths with no parent
// (empty, or a filesystem root) yield ErrNoParentDir.
func parentDir(dst string) (string, error) {
	if strings.TrimSpace(dst) == "" {
		return "", ErrNoParentDir
	}
	clean := filepath.Clean(dst)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", fmt.Errorf("%w: %s", ErrNoParentDir, dst)
	}
	return parent, nil
}

// moveAside renames a stale artifact out of the way so the fresh download
// can be created exclusively.
func moveAside(path string) error {
	backup := path + staleSuffix
	if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing old %s: %w", backup, err)
	}
	if err := os.Rename(path, backup); err != nil {
		return fmt.Errorf("moving stale %s aside: %w", path, err)
	}
	return nil
}
