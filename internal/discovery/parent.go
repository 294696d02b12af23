// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pomctl/pomctl/pkg/fspath"
	"github.com/pomctl/pomctl/pkg/pom"
	"github.com/pomctl/pomctl/pkg/projectid"
	"github.com/pomctl/pomctl/pkg/types"
)

// ParentLookup is the outcome of LocateParent. Found is false when no
// ancestor directory holds a descriptor.
type ParentLookup struct {
	Found bool
	// Path is the descriptor file that was found.
	Path types.FilesystemPath
	// Identity is the effective coordinates of the found descriptor.
	Identity projectid.Spec
	// Depth counts upward hops from the start directory; 1 is its parent.
	Depth int
}

// LocateParent walks upward from startDir looking for fileName. The start
// directory itself is never a candidate. The walk ends at the filesystem root.
// The found descriptor is only read.
func LocateParent(startDir types.FilesystemPath, fileName string) (ParentLookup, error) {
	absStart, err := fspath.Abs(startDir)
	if err != nil {
		return ParentLookup{}, err
	}

	dir := absStart
	for depth := 1; ; depth++ {
		parent := fspath.Dir(dir)
		if parent == dir {
			return ParentLookup{}, nil
		}
		dir = parent

		candidate := fspath.JoinStr(dir, fileName)
		if !isFile(candidate) {
			continue
		}

		p, err := pom.Load(string(candidate))
		if err != nil {
			return ParentLookup{}, fmt.Errorf("failed to read parent descriptor: %w", err)
		}

		slog.Debug("parent descriptor found", "path", candidate, "depth", depth, "id", p.ID().String())
		return ParentLookup{
			Found:    true,
			Path:     candidate,
			Identity: p.ID(),
			Depth:    depth,
		}, nil
	}
}

// isFile reports whether path exists and is not a directory. Stat errors
// other than not-exist are logged and treated as absent.
func isFile(path types.FilesystemPath) bool {
	info, err := os.Stat(string(path))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("skipping unreadable candidate", "path", path, "error", err)
		}
		return false
	}
	return !info.IsDir()
}
