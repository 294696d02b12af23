// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level of diagnostics written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError collects field-level validation errors. errors.Is
	// matches ErrInvalidConfig and every field error's sentinel.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Project holds defaults applied to newly created descriptors.
		Project ProjectConfig `json:"project" mapstructure:"project" toml:"project"`
		// Toolchain configures compiler version detection.
		Toolchain ToolchainConfig `json:"toolchain" mapstructure:"toolchain" toml:"toolchain"`
		// Search configures the remote artifact index.
		Search SearchConfig `json:"search" mapstructure:"search" toml:"search"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
		// Log configures diagnostics.
		Log LogConfig `json:"log" mapstructure:"log" toml:"log"`
	}

	// ProjectConfig holds descriptor defaults.
	ProjectConfig struct {
		DefaultGroup     string `json:"default_group" mapstructure:"default_group" toml:"default_group"`
		DefaultVersion   string `json:"default_version" mapstructure:"default_version" toml:"default_version"`
		DefaultPackaging string `json:"default_packaging" mapstructure:"default_packaging" toml:"default_packaging"`
		// DescriptorFile is the file name looked up in ancestor directories.
		DescriptorFile string `json:"descriptor_file" mapstructure:"descriptor_file" toml:"descriptor_file"`
	}

	// ToolchainConfig controls toolchain detection.
	ToolchainConfig struct {
		// Enabled turns detection on for new descriptors (default: true).
		Enabled bool `json:"enabled" mapstructure:"enabled" toml:"enabled"`
		// Command is the shell-quoted command line that prints the version.
		Command string `json:"command" mapstructure:"command" toml:"command"`
	}

	// SearchConfig configures the search client.
	SearchConfig struct {
		BaseURL string `json:"base_url" mapstructure:"base_url" toml:"base_url"`
		Rows    int    `json:"rows" mapstructure:"rows" toml:"rows"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
	}

	// LogConfig configures the slog handler.
	LogConfig struct {
		Level  LogLevel `json:"level" mapstructure:"level" toml:"level"`
		Format string   `json:"format" mapstructure:"format" toml:"format"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// GlamourStyle maps the scheme to a glamour style name.
func (cs ColorScheme) GlamourStyle() string {
	switch cs {
	case ColorSchemeDark, ColorSchemeLight:
		return string(cs)
	default:
		return "auto"
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is recognized.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid checks the values a CUE file cannot guarantee once environment
// overrides have been applied.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if strings.TrimSpace(c.Project.DefaultPackaging) == "" {
		errs = append(errs, errors.New("project.default_packaging must not be empty"))
	}
	if strings.TrimSpace(c.Project.DescriptorFile) == "" {
		errs = append(errs, errors.New("project.descriptor_file must not be empty"))
	}
	if c.Toolchain.Enabled && strings.TrimSpace(c.Toolchain.Command) == "" {
		errs = append(errs, errors.New("toolchain.command must not be empty when detection is enabled"))
	}
	if c.Search.Rows < 1 {
		errs = append(errs, fmt.Errorf("search.rows must be at least 1, got %d", c.Search.Rows))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			DefaultGroup:     "unnamed",
			DefaultVersion:   "0.0.1-SNAPSHOT",
			DefaultPackaging: "jar",
			DescriptorFile:   "pom.xml",
		},
		Toolchain: ToolchainConfig{
			Enabled: true,
			Command: "java -version",
		},
		Search: SearchConfig{
			BaseURL: "https://search.maven.org/solrsearch/select",
			Rows:    20,
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Level:  LogLevelWarn,
			Format: "text",
		},
	}
}
