// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/pomctl/pomctl/internal/issue"
	"github.com/pomctl/pomctl/pkg/cueutil"
)

type (
	// LoadOptions selects where one pomctl invocation reads its settings.
	// Built-in defaults always apply first and POMCTL_* variables last.
	LoadOptions struct {
		// ConfigFilePath is the --config flag. The file must exist and no
		// other config.cue is consulted.
		ConfigFilePath string
		// ConfigDirPath replaces the platform directory holding config.cue.
		ConfigDirPath string
	}

	// Loaded is the effective configuration of one invocation.
	Loaded struct {
		Config *Config
		// Path is the config.cue that was merged, or "" when only defaults
		// and the environment apply.
		Path string
	}

	// Provider loads the effective configuration.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Loaded, error)
	}

	fileProvider struct{}
)

// NewProvider returns the provider that reads config.cue files.
func NewProvider() Provider {
	return &fileProvider{}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Path: path}, nil
}

// SavePath returns the file `pomctl config set` writes back to: the file that
// was merged, or config.cue in the configuration directory.
func (l *Loaded) SavePath(configDirPath string) (string, error) {
	if l.Path != "" {
		return l.Path, nil
	}
	return ConfigFilePath(configDirPath)
}

// loadWithOptions layers defaults, the resolved config.cue and POMCTL_*
// variables, then validates the result.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := ResolvePath(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'pomctl config init --force' to start from the defaults").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check POMCTL_* environment variables for typos").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("project.default_group", d.Project.DefaultGroup)
	v.SetDefault("project.default_version", d.Project.DefaultVersion)
	v.SetDefault("project.default_packaging", d.Project.DefaultPackaging)
	v.SetDefault("project.descriptor_file", d.Project.DescriptorFile)
	v.SetDefault("toolchain.enabled", d.Toolchain.Enabled)
	v.SetDefault("toolchain.command", d.Toolchain.Command)
	v.SetDefault("search.base_url", d.Search.BaseURL)
	v.SetDefault("search.rows", d.Search.Rows)
	v.SetDefault("ui.verbose", d.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(d.UI.ColorScheme))
	v.SetDefault("log.level", string(d.Log.Level))
	v.SetDefault("log.format", d.Log.Format)
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper. Fields stay optional, so the document is decoded into a map and
// merged over the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}
