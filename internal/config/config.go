// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pomctl/pomctl/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "pomctl"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. POMCTL_SEARCH_ROWS.
	EnvPrefix = "POMCTL"
)

//go:embed config_schema.cue
var configSchema string

// ErrUnknownKey is returned by Set for keys that are not part of Config.
var ErrUnknownKey = errors.New("unknown configuration key")

// ConfigDir returns the pomctl configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the config.cue path inside the configuration directory.
// A non-empty configDirPath replaces the platform directory.
func ConfigFilePath(configDirPath string) (string, error) {
	cfgDir, err := configDirWithOverride(configDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// ResolvePath reports which file Load would read, or "" when only defaults apply.
func ResolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", missingFileError(opts.ConfigFilePath)
		}
		return opts.ConfigFilePath, nil
	}

	cuePath, err := ConfigFilePath(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if fileExists(cuePath) {
		return cuePath, nil
	}

	// A config.cue in the working directory is the last resort.
	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}
	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

func missingFileError(path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Verify the file path is correct").
		WithSuggestion("Use 'pomctl config show' to see the default configuration").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(fmt.Errorf("config file not found: %s", path)).
		BuildError()
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config.cue unless one exists. It
// returns the file path and whether the file was created.
func CreateDefaultConfig(configDirPath string) (string, bool, error) {
	cfgPath, err := ConfigFilePath(configDirPath)
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if _, err := Save(DefaultConfig(), configDirPath); err != nil {
		return "", false, err
	}
	return cfgPath, true, nil
}

// Save writes cfg as config.cue, replacing any existing file, and returns the path.
func Save(cfg *Config, configDirPath string) (string, error) {
	cfgPath, err := ConfigFilePath(configDirPath)
	if err != nil {
		return "", err
	}

	if err := WriteFile(cfg, cfgPath); err != nil {
		return "", err
	}
	return cfgPath, nil
}

// WriteFile writes cfg as CUE to path, creating the directory as needed.
func WriteFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pomctl configuration file\n")
	sb.WriteString("// Every field is optional; omitted fields keep their defaults.\n")

	sb.WriteString("\nproject: {\n")
	fmt.Fprintf(&sb, "\tdefault_group:     %q\n", cfg.Project.DefaultGroup)
	fmt.Fprintf(&sb, "\tdefault_version:   %q\n", cfg.Project.DefaultVersion)
	fmt.Fprintf(&sb, "\tdefault_packaging: %q\n", cfg.Project.DefaultPackaging)
	fmt.Fprintf(&sb, "\tdescriptor_file:   %q\n", cfg.Project.DescriptorFile)
	sb.WriteString("}\n")

	sb.WriteString("\ntoolchain: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Toolchain.Enabled)
	fmt.Fprintf(&sb, "\tcommand: %q\n", cfg.Toolchain.Command)
	sb.WriteString("}\n")

	sb.WriteString("\nsearch: {\n")
	fmt.Fprintf(&sb, "\tbase_url: %q\n", cfg.Search.BaseURL)
	fmt.Fprintf(&sb, "\trows:     %d\n", cfg.Search.Rows)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel:  %q\n", cfg.Log.Level)
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.Log.Format)
	sb.WriteString("}\n")

	return sb.String()
}

// EncodeTOML renders the configuration as TOML.
func EncodeTOML(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return data, nil
}

// Keys lists the dotted keys accepted by Set.
func Keys() []string {
	keys := []string{
		"project.default_group",
		"project.default_version",
		"project.default_packaging",
		"project.descriptor_file",
		"toolchain.enabled",
		"toolchain.command",
		"search.base_url",
		"search.rows",
		"ui.verbose",
		"ui.color_scheme",
		"log.level",
		"log.format",
	}
	slices.Sort(keys)
	return keys
}

// Set assigns value to the dotted key. The result is checked with IsValid.
func (c *Config) Set(key, value string) error {
	switch key {
	case "project.default_group":
		c.Project.DefaultGroup = value
	case "project.default_version":
		c.Project.DefaultVersion = value
	case "project.default_packaging":
		c.Project.DefaultPackaging = value
	case "project.descriptor_file":
		c.Project.DescriptorFile = value
	case "toolchain.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Toolchain.Enabled = b
	case "toolchain.command":
		c.Toolchain.Command = value
	case "search.base_url":
		c.Search.BaseURL = value
	case "search.rows":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Search.Rows = n
	case "ui.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.UI.Verbose = b
	case "ui.color_scheme":
		c.UI.ColorScheme = ColorScheme(value)
	case "log.level":
		c.Log.Level = LogLevel(value)
	case "log.format":
		c.Log.Format = value
	default:
		return fmt.Errorf("%w %q (valid: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}

	if valid, errs := c.IsValid(); !valid {
		return errs[0]
	}
	return nil
}
