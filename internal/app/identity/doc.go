// SPDX-License-Identifier: MPL-2.0

// Package identity resolves and persists a project's coordinates.
//
// [Resolver.Run] is a two-state machine keyed on whether the target
// descriptor exists. A new descriptor gets defaults, parent linkage from the
// nearest ancestor descriptor and compiler properties from the detected
// toolchain. An existing descriptor only has the requested fields merged in.
// Either way the descriptor is written exactly once, and nothing is written
// when the request is rejected.
package identity
