package java

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// RequiredMajor is the Java major version the launched jar needs.
const RequiredMajor = 21

// ErrRuntimeNotFound is returned when no candidate passes the version probe.
var ErrRuntimeNotFound = errors.New("no matching Java runtime found")

// Runtime is a validated Java executable.
type Runtime struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

func (r *Runtime) String() string {
	if r.Version == "" {
		return r.Path
	}
	return fmt.Sprintf("%s (%s)", r.Path, r.Version)
}

// CommandRunner runs an executable and returns what it wrote to stderr.
// This allows for mocking in tests.
type CommandRunner interface {
	Stderr(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner uses os/exec. Stdout is discarded.
type DefaultCommandRunner struct{}

// Stderr runs name with args and captures its error stream.
func (DefaultCommandRunner) Stderr(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Locator searches for a Java runtime of a given major version.
type Locator struct {
	major      int
	executable string
	getenv     func(string) string
	runner     CommandRunner
	logger     *slog.Logger
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithPlatform resolves the executable name for p instead of the host.
func WithPlatform(p Platform) LocatorOption {
	return func(l *Locator) {
		l.executable = p.ExecutableName()
	}
}

// WithGetenv sets the environment lookup (useful for testing).
func WithGetenv(getenv func(string) string) LocatorOption {
	return func(l *Locator) {
		l.getenv = getenv
	}
}

// WithRunner sets the command runner used for version probes.
func WithRunner(r CommandRunner) LocatorOption {
	return func(l *Locator) {
		l.runner = r
	}
}

// WithMajor sets the required major version.
func WithMajor(major int) LocatorOption {
	return func(l *Locator) {
		l.major = major
	}
}

// WithLogger sets the logger for probe results.
func WithLogger(logger *slog.Logger) LocatorOption {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a locator for Java 21 on the host platform.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		major:      RequiredMajor,
		executable: Detect().ExecutableName(),
		getenv:     os.Getenv,
		runner:     DefaultCommandRunner{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Candidates returns the paths probed, in search order: JAVA_HOME/bin first,
// then each PATH entry.
func (l *Locator) Candidates() []string {
	var candidates []string

	if home := l.getenv("JAVA_HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, "bin", l.executable))
	}

	for _, dir := range filepath.SplitList(l.getenv("PATH")) {
		if dir == "" {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, l.executable))
	}

	return candidates
}

// Locate returns the first candidate whose version probe reports the
// required major version. Candidates that are missing or fail the probe are
// skipped.
func (l *Locator) Locate(ctx context.Context) (*Runtime, error) {
	for _, candidate := range l.Candidates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := os.Lstat(candidate); err != nil {
			continue
		}

		rt, err := l.probe(ctx, candidate)
		if err != nil {
			l.logger.Debug("skipping java candidate", "path", candidate, "reason", err)
			continue
		}

		l.logger.Debug("found java runtime", "path", rt.Path, "version", rt.Version)
		return rt, nil
	}

	return nil, fmt.Errorf("%w: need Java %d", ErrRuntimeNotFound, l.major)
}

// probe runs candidate -version and checks the reported major version.
func (l *Locator) probe(ctx context.Context, candidate string) (*Runtime, error) {
	stderr, err := l.runner.Stderr(ctx, candidate, "-version")
	if err != nil {
		return nil, fmt.Errorf("running -version: %w", err)
	}

	output := string(stderr)
	if !MatchesMajor(output, l.major) {
		return nil, fmt.Errorf("not Java %d: %q", l.major, firstLine(output))
	}

	rt := &Runtime{Path: candidate}
	if v, err := ParseVersionOutput(output); err == nil {
		rt.Version = v.String()
	}
	return rt, nil
}
