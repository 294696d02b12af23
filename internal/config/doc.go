// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pomctl/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/pomctl/config.cue on macOS, %APPDATA%\pomctl\config.cue
// on Windows). It carries the defaults applied to new descriptors, toolchain detection
// settings, the search endpoint and UI and logging preferences.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they are
// merged over the built-in defaults. Environment variables prefixed with POMCTL_ override
// both (e.g. POMCTL_TOOLCHAIN_ENABLED=false).
package config
