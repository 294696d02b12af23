// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pomctl/pomctl/internal/config"
	"github.com/pomctl/pomctl/pkg/types"

	"github.com/spf13/cobra"
)

const (
	dumpFormatCUE  = "cue"
	dumpFormatTOML = "toml"
)

// newConfigCommand creates the `pomctl config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pomctl configuration",
		Long: `Manage pomctl configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/pomctl/config.cue (~/.config/pomctl/config.cue)
  - macOS: ~/Library/Application Support/pomctl/config.cue
  - Windows: %APPDATA%\pomctl\config.cue

Any key can be overridden from the environment, e.g. POMCTL_TOOLCHAIN_ENABLED=false.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpConfig(cmd.Context(), app, format)
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", dumpFormatCUE, "output format: cue or toml")
	cfgCmd.AddCommand(dumpCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	loaded, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return app.fail(err)
	}
	cfg := loaded.Config

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if loaded.Path == "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), loaded.Path)
	}

	section := func(name string, values [][2]string) {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", KeyStyle.Render(name))
		for _, kv := range values {
			fmt.Fprintf(w, "  %s: %s\n", kv[0], SuccessStyle.Render(kv[1]))
		}
	}

	section("project", [][2]string{
		{"default_group", cfg.Project.DefaultGroup},
		{"default_version", cfg.Project.DefaultVersion},
		{"default_packaging", cfg.Project.DefaultPackaging},
		{"descriptor_file", cfg.Project.DescriptorFile},
	})
	section("toolchain", [][2]string{
		{"enabled", fmt.Sprint(cfg.Toolchain.Enabled)},
		{"command", cfg.Toolchain.Command},
	})
	section("search", [][2]string{
		{"base_url", cfg.Search.BaseURL},
		{"rows", fmt.Sprint(cfg.Search.Rows)},
	})
	section("ui", [][2]string{
		{"verbose", fmt.Sprint(cfg.UI.Verbose)},
		{"color_scheme", cfg.UI.ColorScheme.String()},
	})
	section("log", [][2]string{
		{"level", cfg.Log.Level.String()},
		{"format", cfg.Log.Format},
	})

	return nil
}

func initConfig(app *App, force bool) error {
	var (
		cfgPath string
		created bool
		err     error
	)
	if force {
		cfgPath, err = config.Save(config.DefaultConfig(), "")
		created = err == nil
	} else {
		cfgPath, created, err = config.CreateDefaultConfig("")
	}
	if err != nil {
		return app.fail(fmt.Errorf("failed to create config: %w", err))
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	if app.configFile != "" {
		fmt.Fprintf(app.stdout, "Config file: %s\n", app.configFile)
		return nil
	}

	cfgPath, err := config.ConfigFilePath("")
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.stdout, "Config directory: %s\n", filepath.Dir(cfgPath))
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
	return nil
}

func dumpConfig(ctx context.Context, app *App, format string) error {
	loaded, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return app.fail(err)
	}
	cfg := loaded.Config

	switch format {
	case dumpFormatCUE:
		fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	case dumpFormatTOML:
		data, err := config.EncodeTOML(cfg)
		if err != nil {
			return app.fail(err)
		}
		fmt.Fprint(app.stdout, string(data))
	default:
		err := fmt.Errorf("unsupported format %q (valid: %s, %s)", format, dumpFormatCUE, dumpFormatTOML)
		app.renderError(err)
		return &ExitError{Code: types.ExitUsage, Err: err}
	}
	return nil
}

func setConfigValue(ctx context.Context, app *App, key, value string) error {
	loaded, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return app.fail(err)
	}

	if err := loaded.Config.Set(key, value); err != nil {
		return app.fail(err)
	}

	cfgPath, err := loaded.SavePath("")
	if err != nil {
		return app.fail(err)
	}
	if err := config.WriteFile(loaded.Config, cfgPath); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.stdout, "%s Set %s = %s in %s\n", SuccessStyle.Render("✓"), key, value, cfgPath)
	return nil
}
