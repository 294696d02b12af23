// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the pomctl command tree.
//
// The root command wires configuration and logging once per invocation and
// hands an App to every subcommand: `id` creates or updates a descriptor,
// `search` queries the remote artifact index and `config` manages the
// configuration file.
package cmd
