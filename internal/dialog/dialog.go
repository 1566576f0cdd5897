// Package dialog shows native error dialogs by shelling out to the desktop's
// stock dialog tool.
package dialog

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrUnsupported is returned when no dialog tool is known for the platform.
var ErrUnsupported = errors.New("no dialog tool for this platform")

// timeout bounds how long a dialog may block the process.
const timeout = 10 * time.Minute

// Command is an external program invocation.
type Command struct {
	Name string
	Args []string
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Runner executes a dialog command. This allows for mocking in tests.
type Runner interface {
	Run(ctx context.Context, c Command) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, c Command) error {
	return exec.CommandContext(ctx, c.Name, c.Args...).Run()
}

// Dialog shows error messages on one platform.
type Dialog struct {
	goos   string
	runner Runner
}

// New returns a Dialog for the host platform.
func New() *Dialog {
	return &Dialog{goos: runtime.GOOS, runner: execRunner{}}
}

// ShowError blocks until the user dismisses an error dialog.
func (d *Dialog) ShowError(title, message string) error {
	c, err := commandFor(d.goos, title, message)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return d.runner.Run(ctx, c)
}

// ShowError shows an error dialog on the host platform. Failures are
// swallowed since there is nowhere left to report them.
func ShowError(title, message string) {
	_ = New().ShowError(title, message)
}

// commandFor builds the dialog invocation for goos.
func commandFor(goos, title, message string) (Command, error) {
	switch goos {
	case "darwin":
		script := "display dialog " + appleScriptString(message) +
			" with title " + appleScriptString(title) +
			` buttons {"OK"} default button "OK" with icon stop`
		return Command{Name: "osascript", Args: []string{"-e", script}}, nil
	case "windows":
		script := "Add-Type -AssemblyName PresentationFramework; " +
			"[System.Windows.MessageBox]::Show(" + powerShellString(message) + ", " +
			powerShellString(title) + ", 'OK', 'Error') | Out-Null"
		return Command{Name: "powershell.exe", Args: []string{"-NoProfile", "-NonInteractive", "-Command", script}}, nil
	default:
		if _, err := lookPath("zenity"); err == nil {
			return Command{Name: "zenity", Args: []string{"--error", "--title", title, "--text", message}}, nil
		}
		if _, err := lookPath("kdialog"); err == nil {
			return Command{Name: "kdialog", Args: []string{"--title", title, "--error", message}}, nil
		}
		return Command{}, ErrUnsupported
	}
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func powerShellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
