// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pomctl/pomctl/internal/issue"
	"github.com/pomctl/pomctl/internal/search"
	"github.com/pomctl/pomctl/pkg/projectid"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newSearchCommand creates the `pomctl search` command.
func newSearchCommand(app *App) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "search <spec>",
		Short: "Search the remote artifact index",
		Long: `Search the remote artifact index for artifacts matching a spec.

Each present field of the spec becomes a query clause, so "junit" matches
every artifact named junit and "org.slf4j:slf4j-api" a single artifact.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), app, args[0], rows)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "maximum number of results (default is search.rows)")

	return cmd
}

func runSearch(ctx context.Context, app *App, text string, rows int) error {
	cfg := app.config()

	spec, err := projectid.Parse(text)
	if err != nil {
		return app.fail(issue.NewErrorContext().
			WithOperation("parse search spec").
			WithResource(text).
			WithSuggestion("Use artifact, group:artifact or group:artifact:version").
			WithIssue(issue.InvalidSpecId).
			Wrap(err).
			BuildError())
	}

	if rows <= 0 {
		rows = cfg.Search.Rows
	}

	client := search.NewClient(
		search.WithHTTPClient(app.HTTPClient),
		search.WithBaseURL(cfg.Search.BaseURL),
		search.WithRows(rows),
		search.WithUserAgent("pomctl/"+Version),
	)

	artifacts, err := client.Search(ctx, spec)
	if err != nil {
		return app.fail(issue.NewErrorContext().
			WithOperation("search artifacts").
			WithResource(spec.Query()).
			WithSuggestion("Check search.base_url with `pomctl config show`").
			WithIssue(issue.SearchFailedId).
			Wrap(err).
			BuildError())
	}

	rendered, err := glamour.Render(search.Markdown(spec.String(), artifacts), cfg.UI.ColorScheme.GlamourStyle())
	if err != nil {
		return app.fail(fmt.Errorf("render search results: %w", err))
	}
	fmt.Fprint(app.stdout, rendered)
	return nil
}
