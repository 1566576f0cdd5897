package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/earthsworth/celestial-bootstrap/internal/config"
)

// Orchestrator runs the update check for every artifact in a manifest.
type Orchestrator struct {
	fetcher  Fetcher
	manifest *config.Manifest
	reporter ProgressReporter
	logger   *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithReporter sets the progress reporter passed to every fetch.
func WithReporter(r ProgressReporter) OrchestratorOption {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// WithOrchestratorLogger sets the logger for update events.
func WithOrchestratorLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// NewOrchestrator creates an orchestrator fetching manifest's artifacts with f.
func NewOrchestrator(f Fetcher, manifest *config.Manifest, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		fetcher:  f,
		manifest: manifest,
		reporter: NopReporter{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CheckUpdate fetches the primary artifact to primaryPath, then the remaining
// artifacts under baseDir.
//
// First run means primaryPath did not exist before the check. First-run-only
// artifacts are fetched then and never again: a later check does not verify
// them even if they have gone missing or been corrupted. The first error
// aborts the check; artifacts already updated are not rolled back.
func (o *Orchestrator) CheckUpdate(ctx context.Context, baseDir, primaryPath string) (*Report, error) {
	if o.manifest == nil {
		return nil, errors.New("no manifest configured")
	}

	firstRun, err := isFirstRun(primaryPath)
	if err != nil {
		return nil, err
	}
	report := &Report{FirstRun: firstRun}

	o.logger.Debug("checking for updates", "base_dir", baseDir, "first_run", firstRun)

	primary := o.manifest.Primary
	if err := o.fetch(ctx, primary, primaryPath); err != nil {
		return report, err
	}
	report.Fetched = append(report.Fetched, primaryPath)

	for _, a := range o.manifest.Artifacts {
		dst := a.Resolve(baseDir)
		if a.Policy.IsFirstRun() && !firstRun {
			report.Skipped = append(report.Skipped, dst)
			continue
		}
		if err := o.fetch(ctx, a, dst); err != nil {
			return report, err
		}
		report.Fetched = append(report.Fetched, dst)
	}

	return report, nil
}

func (o *Orchestrator) fetch(ctx context.Context, a config.Artifact, dst string) error {
	if err := o.fetcher.Fetch(ctx, a.URL, dst, a.SHA256, o.reporter); err != nil {
		return fmt.Errorf("updating %s: %w", a.DisplayName(), err)
	}
	return nil
}

func isFirstRun(primaryPath string) (bool, error) {
	_, err := os.Stat(primaryPath)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, fmt.Errorf("checking %s: %w", primaryPath, err)
	}
}
