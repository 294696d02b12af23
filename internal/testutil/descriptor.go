// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/pomctl/pomctl/pkg/pom"
)

// WriteDescriptor saves an aggregator descriptor (packaging "pom") with the
// given coordinates as dir/pom.xml and returns its path.
func WriteDescriptor(t testing.TB, dir, group, artifact, version string) string {
	t.Helper()

	p := pom.New()
	p.GroupID = group
	p.ArtifactID = artifact
	p.Version = version
	p.Packaging = "pom"

	path := filepath.Join(dir, pom.FileName)
	if err := pom.Save(p, path); err != nil {
		t.Fatalf("failed to write descriptor %s: %v", path, err)
	}
	return path
}
