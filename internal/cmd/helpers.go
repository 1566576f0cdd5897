package cmd

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/earthsworth/celestial-bootstrap/internal/config"
	"github.com/earthsworth/celestial-bootstrap/internal/output"
)

// newLogger writes text records when w is a terminal and JSON otherwise.
// Verbose lowers the level to debug and quiet raises it to error.
func newLogger(w io.Writer, s *config.Settings) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case s.Verbose:
		level = slog.LevelDebug
	case s.Quiet:
		level = slog.LevelError
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// manifest loads the configured manifest, or the built-in one.
func (a *app) manifest() (*config.Manifest, error) {
	m, err := config.LoadManifest(a.settings.Manifest)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded manifest", "path", a.settings.Manifest, "artifacts", len(m.Artifacts)+1)
	return m, nil
}

func (a *app) primaryPath(m *config.Manifest) string {
	return m.Primary.Resolve(a.settings.BaseDir)
}

func (a *app) writer() *output.Writer {
	format, _ := output.ParseFormat(a.settings.Output)
	return output.NewWriter(a.stdout, format)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
