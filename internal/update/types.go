// Package update fetches the launcher's pinned artifacts and keeps them
// verified against their SHA-256 digests.
package update

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoParentDir is returned when a destination path has no parent directory
// to create or write into (an empty path or a filesystem root).
var ErrNoParentDir = errors.New("no parent directory")

// Fetcher downloads a single artifact to disk.
// An empty expectedDigest disables both the short-circuit and the post-check.
type Fetcher interface {
	Fetch(ctx context.Context, url, dst, expectedDigest string, reporter ProgressReporter) error
}

// DigestMismatchError reports a downloaded file whose content does not match
// its pinned digest. The file is left on disk.
type DigestMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("digest mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// HTTPStatusError reports a non-success response from the distribution endpoint.
type HTTPStatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

// Report summarizes one update check.
type Report struct {
	FirstRun bool     `json:"first_run" yaml:"first_run"`
	Fetched  []string `json:"fetched" yaml:"fetched"`                     // Paths passed to the fetcher
	Skipped  []string `json:"skipped,omitempty" yaml:"skipped,omitempty"` // First-run artifacts gated off
}

func (r *Report) String() string {
	s := fmt.Sprintf("first run: %t", r.FirstRun)
	for _, p := range r.Fetched {
		s += "\n  ✓ " + p
	}
	for _, p := range r.Skipped {
		s += "\n  - " + p + " (first run only)"
	}
	return s
}
