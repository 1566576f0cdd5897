// Package launcher wires runtime discovery, the update check and the jar
// launch into the bootstrap sequence.
package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/earthsworth/celestial-bootstrap/internal/java"
	"github.com/earthsworth/celestial-bootstrap/internal/update"
)

// RuntimeLocator finds the Java runtime to launch with.
type RuntimeLocator interface {
	Locate(ctx context.Context) (*java.Runtime, error)
}

// UpdateChecker brings the artifacts under baseDir up to date.
type UpdateChecker interface {
	CheckUpdate(ctx context.Context, baseDir, primaryPath string) (*update.Report, error)
}

// JarRunner runs a jar with a Java executable.
type JarRunner interface {
	Run(ctx context.Context, javaPath, jarPath string, args ...string) error
}

// RuntimeNotFoundError wraps a failed runtime search with install guidance.
type RuntimeNotFoundError struct {
	Hint string
	Err  error
}

func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf("%v\n%s", e.Err, e.Hint)
}

func (e *RuntimeNotFoundError) Unwrap() error {
	return e.Err
}

// Launcher runs the bootstrap sequence.
type Launcher struct {
	Locator     RuntimeLocator
	Updater     UpdateChecker
	Runner      JarRunner
	Platform    java.Platform
	BaseDir     string
	PrimaryPath string
	Args        []string // Passed through to the jar
	Logger      *slog.Logger
}

// Run locates Java, checks for updates and runs the primary jar.
//
// A failed update check is logged and the launch continues with whatever is
// on disk. A missing runtime and a failed launch are returned.
func (l *Launcher) Run(ctx context.Context) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rt, err := l.Locator.Locate(ctx)
	if err != nil {
		return &RuntimeNotFoundError{Hint: l.Platform.InstallHint(), Err: err}
	}
	logger.Info("using java runtime", "path", rt.Path, "version", rt.Version)

	if report, err := l.Updater.CheckUpdate(ctx, l.BaseDir, l.PrimaryPath); err != nil {
		logger.Warn("update check failed, launching installed version", "error", err)
	} else {
		logger.Debug("update check complete", "first_run", report.FirstRun, "fetched", len(report.Fetched))
	}

	logger.Info("launching", "jar", l.PrimaryPath)
	if err := l.Runner.Run(ctx, rt.Path, l.PrimaryPath, l.Args...); err != nil {
		return fmt.Errorf("launching %s: %w", l.PrimaryPath, err)
	}
	return nil
}
