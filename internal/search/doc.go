// SPDX-License-Identifier: MPL-2.0

// Package search queries the remote artifact index for coordinates matching a
// partial project identity. The client is read-only and never touches local
// descriptors.
package search
