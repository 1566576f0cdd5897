package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/earthsworth/celestial-bootstrap/internal/config"
	"github.com/earthsworth/celestial-bootstrap/internal/dialog"
	"github.com/earthsworth/celestial-bootstrap/internal/java"
	"github.com/earthsworth/celestial-bootstrap/internal/launcher"
	"github.com/earthsworth/celestial-bootstrap/internal/output"
	"github.com/earthsworth/celestial-bootstrap/internal/update"
)

const dialogTitle = "Celestial Bootstrap"

// app carries the state shared by every command.
type app struct {
	version string
	commit  string
	date    string

	v        *viper.Viper
	settings *config.Settings
	logger   *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	showError func(title, message string)
}

func newApp(version, commit, date string) *app {
	return &app{
		version:   version,
		commit:    commit,
		date:      date,
		v:         config.NewViper(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		showError: dialog.ShowError,
	}
}

// Execute runs the CLI. The returned error carries the launched jar's exit
// status when it fails; see ExitCode.
func Execute(version, commit, date string) error {
	return newRootCmd(newApp(version, commit, date)).ExecuteContext(context.Background())
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *java.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "celestial [-- jar-args...]",
		Short: "Bootstrap launcher for Celestial",
		Long: `celestial finds a Java 21 runtime, keeps the Celestial launcher jar up to date
and runs it.

Run without a subcommand to launch. Arguments after -- are passed to the jar.`,
		Version:       versionString(a),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.launch(cmd.Context(), args)
			if err != nil {
				a.reportFatal(err)
			}
			return err
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringP(config.KeyOutput, "o", "text", "Output format: text, json, yaml")
	pf.String(config.KeyManifest, "", "Path to an artifact manifest (default: built-in)")
	pf.String(config.KeyBaseDir, "", "Base directory (default: ~/.cubewhy/<profile>)")
	pf.String(config.KeyProfile, config.DefaultProfile, "Profile directory under ~/.cubewhy")
	pf.BoolP(config.KeyVerbose, "v", false, "Verbose output")
	pf.BoolP(config.KeyQuiet, "q", false, "Quiet mode (errors only)")
	pf.Bool(config.KeyNoDialog, false, "Never show an error dialog")

	for _, key := range []string{
		config.KeyOutput, config.KeyManifest, config.KeyBaseDir, config.KeyProfile,
		config.KeyVerbose, config.KeyQuiet, config.KeyNoDialog,
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newJavaCmd(a))
	rootCmd.AddCommand(newHashCmd(a))
	rootCmd.AddCommand(newManifestCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd(a))

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc(config.KeyOutput, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return output.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// init resolves settings and the logger once flags are parsed.
func (a *app) init() error {
	s, err := config.LoadSettings(a.v)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(s.Output); err != nil {
		return err
	}
	a.settings = s
	a.logger = newLogger(a.stderr, s)
	return nil
}

// launch runs the full bootstrap sequence.
func (a *app) launch(ctx context.Context, args []string) error {
	manifest, err := a.manifest()
	if err != nil {
		return err
	}

	if !a.settings.Quiet {
		output.PrintBanner(a.stdout, a.version, isTerminal(a.stdout))
	}

	runner := java.NewJarRunner()
	runner.Stdin, runner.Stdout, runner.Stderr = a.stdin, a.stdout, a.stderr

	l := &launcher.Launcher{
		Locator:     a.locator(),
		Updater:     a.orchestrator(manifest),
		Runner:      runner,
		Platform:    java.Detect(),
		BaseDir:     a.settings.BaseDir,
		PrimaryPath: a.primaryPath(manifest),
		Args:        args,
		Logger:      a.logger,
	}
	return l.Run(ctx)
}

// reportFatal shows the error dialog for launch failures, including a jar
// that exited nonzero. javaw.exe has no console to show the jar's stderr.
func (a *app) reportFatal(err error) {
	if a.settings == nil || a.settings.NoDialog {
		return
	}
	a.showError(dialogTitle, err.Error())
}

func (a *app) locator() *java.Locator {
	return java.NewLocator(java.WithLogger(a.logger))
}

func (a *app) orchestrator(m *config.Manifest) *update.Orchestrator {
	downloader := update.NewHTTPDownloader(
		update.WithUserAgent("celestial-bootstrap/"+a.version),
		update.WithLogger(a.logger),
	)

	var reporter update.ProgressReporter = update.NopReporter{}
	if !a.settings.Quiet {
		reporter = update.NewTerminalReporter(a.stderr)
	}

	return update.NewOrchestrator(downloader, m,
		update.WithReporter(reporter),
		update.WithOrchestratorLogger(a.logger),
	)
}

func versionString(a *app) string {
	if a.commit == "" || a.commit == "none" {
		return a.version
	}
	return a.version + " (" + a.commit + ")"
}
