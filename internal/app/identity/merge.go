// SPDX-License-Identifier: MPL-2.0

package identity

import "github.com/pomctl/pomctl/pkg/projectid"

// Merge returns current with every field that is present in requested
// replaced. Absent fields in requested leave current untouched.
func Merge(current, requested projectid.Spec) projectid.Spec {
	if requested.Group != "" {
		current.Group = requested.Group
	}
	if requested.Artifact != "" {
		current.Artifact = requested.Artifact
	}
	if requested.Version != "" {
		current.Version = requested.Version
	}
	return current
}
