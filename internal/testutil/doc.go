// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test instead of
// returning errors: directory setup (MustMkdirAll, MustChdir) and descriptor
// fixtures (WriteDescriptor, MustReadFile).
package testutil
