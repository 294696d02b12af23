// SPDX-License-Identifier: MPL-2.0

// Package logging installs the process-wide slog default. Records are
// rendered by a charmbracelet/log handler so diagnostics share the CLI's
// terminal styling.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// FormatText renders human-readable lines.
	FormatText = "text"
	// FormatJSON renders one JSON object per record.
	FormatJSON = "json"
	// FormatLogfmt renders logfmt key=value records.
	FormatLogfmt = "logfmt"

	prefix = "pomctl"
)

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// log.Level. The empty string maps to warn.
func ParseLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Init configures the global slog default. If w is nil, os.Stderr is used.
func Init(level log.Level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	opts := log.Options{
		Prefix: prefix,
		Level:  level,
	}
	switch format {
	case FormatJSON:
		opts.Formatter = log.JSONFormatter
	case FormatLogfmt:
		opts.Formatter = log.LogfmtFormatter
	default:
		opts.Formatter = log.TextFormatter
	}

	slog.SetDefault(slog.New(log.NewWithOptions(w, opts)))
}

// New returns a logger with a "component" attribute for package-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
