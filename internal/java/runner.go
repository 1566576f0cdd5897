package java

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExitError reports a jar that exited with a nonzero status. A jar killed by
// a signal has Code 1 and the signal's description in Signal.
type ExitError struct {
	Code   int
	Signal string
}

func (e *ExitError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("java terminated by %s", e.Signal)
	}
	return fmt.Sprintf("java exited with code %d", e.Code)
}

// JarRunner runs `java -jar` with the given standard streams.
type JarRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewJarRunner returns a runner inheriting the process's standard streams.
func NewJarRunner() *JarRunner {
	return &JarRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes `javaPath -jar jarPath args...` and waits for it. A nonzero
// exit status is returned as *ExitError.
func (r *JarRunner) Run(ctx context.Context, javaPath, jarPath string, args ...string) error {
	cmd := exec.CommandContext(ctx, javaPath, append([]string{"-jar", jarPath}, args...)...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return &ExitError{Code: code}
		}
		// ExitCode is -1 when the process did not exit on its own.
		return &ExitError{Code: 1, Signal: exitErr.String()}
	}
	return fmt.Errorf("running %s: %w", javaPath, err)
}
