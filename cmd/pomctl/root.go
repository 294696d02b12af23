// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pomctl/pomctl/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand assembles the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pomctl",
		Short: "Manage Maven project descriptors",
		Long: TitleStyle.Render("pomctl") + SubtitleStyle.Render(" - Manage Maven project descriptors") + `

pomctl creates and edits pom.xml files from short coordinates. A new
descriptor is linked to the nearest pom.xml found in a parent directory
and receives compiler settings for the java found on PATH.

` + SubtitleStyle.Render("Examples:") + `
  pomctl id com.example:my-app      Create ./pom.xml for com.example:my-app
  pomctl id .                       Name the project after its directory
  pomctl id --as war                Change the packaging of ./pom.xml
  pomctl id                         Print the identity of ./pom.xml
  pomctl search junit:junit         Look up artifacts in the central index`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.initRootConfig(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pomctl/config.cue)")

	rootCmd.AddCommand(newIDCommand(app))
	rootCmd.AddCommand(newSearchCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code carried by the command's error.
// This is called by main.main().
func Execute() {
	rootCmd := newRootCommand(NewApp(Dependencies{}))

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		os.Exit(int(exitCode(err)))
	}
}

// handleError prints errors that no command rendered itself, such as unknown
// flags or wrong argument counts.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func exitCode(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}
