// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/pomctl/pomctl/internal/app/identity"
	"github.com/pomctl/pomctl/internal/config"
	"github.com/pomctl/pomctl/internal/issue"
	"github.com/pomctl/pomctl/internal/logging"
	"github.com/pomctl/pomctl/internal/toolchain"
	"github.com/pomctl/pomctl/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Loaded, error)
	}

	// DetectorFactory builds the toolchain detector for a configuration. A nil
	// detector with a nil error disables detection.
	DetectorFactory func(cfg *config.Config) (identity.VersionDetector, error)

	// App is the composition root of the CLI. Every command handler receives
	// the same App and reaches configuration, toolchain detection and the
	// network through it.
	App struct {
		Config     ConfigProvider
		Detector   DetectorFactory
		HTTPClient *http.Client
		stdout     io.Writer
		stderr     io.Writer

		// Persistent flag values.
		verbose    bool
		configFile string

		// cfg is the configuration loaded by the root command's pre-run hook.
		cfg *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     ConfigProvider
		Detector   DetectorFactory
		HTTPClient *http.Client
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Detector == nil {
		deps.Detector = newToolchainDetector
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}

	return &App{
		Config:     deps.Config,
		Detector:   deps.Detector,
		HTTPClient: deps.HTTPClient,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
}

// newToolchainDetector runs the configured command line, or nothing when
// detection is disabled.
func newToolchainDetector(cfg *config.Config) (identity.VersionDetector, error) {
	if !cfg.Toolchain.Enabled {
		return nil, nil
	}
	argv, err := toolchain.ParseCommandLine(cfg.Toolchain.Command)
	if err != nil {
		return nil, err
	}
	return toolchain.NewDetector(toolchain.WithCommand(argv...)), nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configFile}
}

// initRootConfig loads configuration and installs the slog default. Load
// failures are reported as a warning and the built-in defaults apply.
func (a *App) initRootConfig(ctx context.Context) {
	cfg := config.DefaultConfig()
	loaded, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	} else {
		cfg = loaded.Config
	}

	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}

	level, err := logging.ParseLevel(string(cfg.Log.Level))
	if err != nil {
		level = log.WarnLevel
	}
	if a.verbose {
		level = log.DebugLevel
	}
	logging.Init(level, cfg.Log.Format, a.stderr)

	a.cfg = cfg
}

// config returns the configuration loaded for this invocation.
func (a *App) config() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// newResolver builds the descriptor resolver from the loaded configuration.
func (a *App) newResolver(cfg *config.Config) (*identity.Resolver, error) {
	detector, err := a.Detector(cfg)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("configure toolchain detection").
			WithResource(cfg.Toolchain.Command).
			WithSuggestion("Fix toolchain.command with `pomctl config set toolchain.command '<cmd>'`").
			WithSuggestion("Or disable detection with `pomctl config set toolchain.enabled false`").
			WithIssue(issue.ToolchainUnavailableId).
			Wrap(err).
			BuildError()
	}

	return identity.NewResolver(
		identity.WithDefaults(identity.Defaults{
			Group:          cfg.Project.DefaultGroup,
			Version:        cfg.Project.DefaultVersion,
			Packaging:      cfg.Project.DefaultPackaging,
			DescriptorFile: cfg.Project.DescriptorFile,
		}),
		identity.WithDetector(detector),
	), nil
}

// fail renders err to stderr and returns the ExitError that ends the command.
func (a *App) fail(err error) error {
	a.renderError(err)
	return &ExitError{Code: types.ExitFailure, Err: err}
}

func (a *App) renderError(err error) {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue == 0 {
		return
	}
	entry := issue.Get(ae.Issue)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(a.config().UI.ColorScheme.GlamourStyle())
	if renderErr != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", ae.Issue, "error", renderErr)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// formatErrorForDisplay uses the ActionableError layout when available. In
// verbose mode the full error chain is shown.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
