// SPDX-License-Identifier: MPL-2.0

package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pomctl/pomctl/internal/discovery"
	"github.com/pomctl/pomctl/internal/toolchain"
	"github.com/pomctl/pomctl/pkg/fspath"
	"github.com/pomctl/pomctl/pkg/pom"
	"github.com/pomctl/pomctl/pkg/projectid"
	"github.com/pomctl/pomctl/pkg/types"
)

const (
	// DirectoryNameSpec asks for the descriptor's directory name as artifact.
	DirectoryNameSpec = "."

	// DefaultGroup is the placeholder group for projects created without one.
	DefaultGroup = "unnamed"

	// DefaultVersion is the version for projects created without one.
	DefaultVersion = "0.0.1-SNAPSHOT"
)

type (
	// Request captures the inputs of one `id` invocation.
	Request struct {
		// Path is the descriptor file to create or update.
		Path types.FilesystemPath
		// Spec is the raw coordinate text; empty means none was given.
		Spec string
		// Packaging overrides the packaging when non-empty.
		Packaging string
		// Standalone suppresses parent discovery on creation.
		Standalone bool
	}

	// Result describes what Run did.
	Result struct {
		// Created is true when the descriptor did not exist before.
		Created bool
		// Path is the absolute descriptor path that was written.
		Path types.FilesystemPath
		// Project is the descriptor as written.
		Project *pom.Project
		// Parent is the ancestor lookup; zero when skipped or nothing was found.
		Parent discovery.ParentLookup
		// Toolchain is the detected version, nil when detection was skipped or failed.
		Toolchain *toolchain.VersionInfo
	}

	// Defaults are applied when a new descriptor leaves a field unset.
	Defaults struct {
		Group          string
		Version        string
		Packaging      string
		DescriptorFile string
	}

	// VersionDetector reports the local toolchain version.
	VersionDetector interface {
		Detect(ctx context.Context) (toolchain.VersionInfo, error)
	}

	// ParentLocator finds the nearest ancestor descriptor above startDir.
	ParentLocator func(startDir types.FilesystemPath, fileName string) (discovery.ParentLookup, error)

	// Resolver creates and updates descriptors.
	Resolver struct {
		defaults Defaults
		detector VersionDetector
		locate   ParentLocator
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Group:          DefaultGroup,
		Version:        DefaultVersion,
		Packaging:      pom.DefaultPackaging,
		DescriptorFile: pom.FileName,
	}
}

// WithDefaults replaces the defaults. Empty fields keep the built-in value.
func WithDefaults(d Defaults) Option {
	return func(r *Resolver) {
		base := DefaultDefaults()
		if d.Group != "" {
			base.Group = d.Group
		}
		if d.Version != "" {
			base.Version = d.Version
		}
		if d.Packaging != "" {
			base.Packaging = d.Packaging
		}
		if d.DescriptorFile != "" {
			base.DescriptorFile = d.DescriptorFile
		}
		r.defaults = base
	}
}

// WithDetector sets the toolchain detector. A nil detector disables detection.
func WithDetector(d VersionDetector) Option {
	return func(r *Resolver) {
		r.detector = d
	}
}

// WithParentLocator replaces the ancestor lookup, primarily for tests.
func WithParentLocator(fn ParentLocator) Option {
	return func(r *Resolver) {
		r.locate = fn
	}
}

// NewResolver creates a resolver using the java on PATH for detection.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		defaults: DefaultDefaults(),
		detector: toolchain.NewDetector(),
		locate:   discovery.LocateParent,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run creates the descriptor at req.Path, or updates it when it exists.
func (r *Resolver) Run(ctx context.Context, req Request) (*Result, error) {
	if valid, errs := req.Path.IsValid(); !valid {
		return nil, errs[0]
	}
	path, err := fspath.Abs(req.Path)
	if err != nil {
		return nil, err
	}

	p, err := pom.Load(string(path))
	switch {
	case err == nil:
		return r.update(req, path, p)
	case errors.Is(err, pom.ErrNotFound):
		return r.create(ctx, req, path)
	default:
		return nil, err
	}
}

func (r *Resolver) create(ctx context.Context, req Request, path types.FilesystemPath) (*Result, error) {
	if req.Spec == "" {
		return nil, &MissingIdentityError{Path: req.Path}
	}

	dir := fspath.Dir(path)
	requested, err := requestedIdentity(req.Spec, dir)
	if err != nil {
		return nil, err
	}

	p := pom.New()
	p.GroupID = requested.Group
	p.ArtifactID = requested.Artifact
	p.Version = requested.Version
	p.Packaging = r.defaults.Packaging
	if req.Packaging != "" {
		p.Packaging = req.Packaging
	}

	res := &Result{Created: true, Path: path, Project: p}

	if !req.Standalone {
		lookup, err := r.locate(dir, r.defaults.DescriptorFile)
		if err != nil {
			return nil, err
		}
		if lookup.Found {
			if !lookup.Identity.IsComplete() {
				slog.Warn("parent descriptor has incomplete coordinates", "path", lookup.Path, "parent", lookup.Identity.String())
			}
			p.Parent = &pom.Parent{
				GroupID:      lookup.Identity.Group,
				ArtifactID:   lookup.Identity.Artifact,
				Version:      lookup.Identity.Version,
				RelativePath: RelativePath(lookup.Depth),
			}
			res.Parent = lookup
		}
	}

	// Without a parent to inherit from, unset coordinates get the defaults.
	if p.Parent == nil {
		id := projectid.Spec{Group: p.GroupID, Artifact: p.ArtifactID, Version: p.Version}.
			WithDefaults(r.defaults.Group, r.defaults.Version)
		p.GroupID, p.Version = id.Group, id.Version
	}

	if r.detector != nil {
		info, err := r.detector.Detect(ctx)
		if err != nil {
			slog.Debug("toolchain detection skipped", "error", err)
		} else {
			for _, prop := range info.Properties() {
				p.SetProperty(prop.Key, prop.Value)
			}
			res.Toolchain = &info
		}
	}

	if err := pom.Save(p, string(path)); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Resolver) update(req Request, path types.FilesystemPath, p *pom.Project) (*Result, error) {
	if req.Spec != "" {
		requested, err := requestedIdentity(req.Spec, fspath.Dir(path))
		if err != nil {
			return nil, err
		}
		merged := Merge(projectid.Spec{Group: p.GroupID, Artifact: p.ArtifactID, Version: p.Version}, requested)
		p.GroupID, p.ArtifactID, p.Version = merged.Group, merged.Artifact, merged.Version
	}
	if req.Packaging != "" {
		p.Packaging = req.Packaging
	}

	if err := pom.Save(p, string(path)); err != nil {
		return nil, err
	}
	return &Result{Path: path, Project: p}, nil
}

// requestedIdentity turns the raw spec into coordinates. "." names the
// artifact after dir.
func requestedIdentity(spec string, dir types.FilesystemPath) (projectid.Spec, error) {
	if spec == DirectoryNameSpec {
		name := fspath.Base(dir)
		if name == "" || name == "." || name == string(filepath.Separator) {
			return projectid.Spec{}, &projectid.InvalidSpecError{Text: spec, Reason: fmt.Sprintf("cannot derive an artifact name from %q", dir)}
		}
		return projectid.Spec{Artifact: name}, nil
	}
	return projectid.Parse(spec)
}

// RelativePath returns the parent's relativePath for a lookup depth. The
// immediate parent directory is Maven's default and yields "".
func RelativePath(depth int) string {
	if depth <= 1 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

// FormatProjectID renders "<packaging> <group>:<artifact>:<version>" from the
// effective values of p.
func FormatProjectID(p *pom.Project) string {
	return p.EffectivePackaging() + " " + p.ID().String()
}

// ReadProjectID loads the descriptor at path and formats its identity.
func ReadProjectID(path types.FilesystemPath) (string, error) {
	p, err := pom.Load(string(path))
	if err != nil {
		return "", err
	}
	return FormatProjectID(p), nil
}
