// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pomctl/pomctl/internal/app/identity"
	"github.com/pomctl/pomctl/internal/issue"
	"github.com/pomctl/pomctl/pkg/pom"
	"github.com/pomctl/pomctl/pkg/projectid"
	"github.com/pomctl/pomctl/pkg/types"

	"github.com/spf13/cobra"
)

type idOptions struct {
	spec       string
	packaging  string
	standalone bool
	file       string
}

// newIDCommand creates the `pomctl id` command.
func newIDCommand(app *App) *cobra.Command {
	var opts idOptions

	cmd := &cobra.Command{
		Use:   "id [spec]",
		Short: "Create or update the project identity",
		Long: `Create or update the identity of a project descriptor and print it as
"<packaging> <group>:<artifact>:<version>".

The spec is one of:
  artifact                 e.g. my-app
  group:artifact           e.g. com.example:my-app
  group:artifact:version   e.g. com.example:my-app:1.0.0
  .                        the name of the descriptor's directory

When the descriptor does not exist it is created. The nearest pom.xml in
a parent directory becomes its parent unless --standalone is given, and
the java on PATH decides the compiler properties. When it exists, only
the fields present in the spec and --as are changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.spec = args[0]
			}
			return runID(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.packaging, "as", "", "set the packaging (e.g. jar, war, pom)")
	cmd.Flags().BoolVar(&opts.standalone, "standalone", false, "do not link a parent descriptor")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "descriptor file (default is project.descriptor_file in the working directory)")

	return cmd
}

func runID(cmd *cobra.Command, app *App, opts idOptions) error {
	ctx := cmd.Context()
	cfg := app.config()

	resolver, err := app.newResolver(cfg)
	if err != nil {
		return app.fail(err)
	}

	file := opts.file
	if file == "" {
		file = cfg.Project.DescriptorFile
	}

	result, err := resolver.Run(ctx, identity.Request{
		Path:       types.FilesystemPath(file),
		Spec:       opts.spec,
		Packaging:  opts.packaging,
		Standalone: opts.standalone,
	})
	if err != nil {
		return app.fail(classifyIDError(err, file))
	}

	if result.Created {
		slog.Debug("created descriptor", "path", result.Path)
		if result.Parent.Found {
			slog.Debug("linked parent descriptor", "path", result.Parent.Path, "depth", result.Parent.Depth, "parent", result.Parent.Identity.String())
		}
		if result.Toolchain != nil {
			slog.Debug("applied toolchain properties", "version", result.Toolchain.Raw)
		}
	}

	id, err := identity.ReadProjectID(result.Path)
	if err != nil {
		return app.fail(classifyIDError(err, string(result.Path)))
	}
	fmt.Fprintln(app.stdout, id)
	return nil
}

// classifyIDError maps resolver failures to catalog entries.
func classifyIDError(err error, file string) error {
	ec := issue.NewErrorContext().WithResource(file).Wrap(err)

	switch {
	case errors.Is(err, identity.ErrMissingIdentity):
		ec.WithOperation("resolve project id").
			WithSuggestion("Pass a spec, e.g. `pomctl id com.example:my-app`").
			WithSuggestion("Use `pomctl id .` to name the project after its directory").
			WithIssue(issue.MissingIdentityId)
	case errors.Is(err, projectid.ErrInvalidSpec):
		ec.WithOperation("parse project id").
			WithSuggestion("Use artifact, group:artifact or group:artifact:version").
			WithIssue(issue.InvalidSpecId)
	case errors.Is(err, pom.ErrInvalidDescriptor):
		ec.WithOperation("read descriptor").
			WithSuggestion("Check that the file is well-formed XML with a <project> root").
			WithIssue(issue.DescriptorUnreadableId)
	default:
		ec.WithOperation("write descriptor")
	}

	return ec.BuildError()
}
