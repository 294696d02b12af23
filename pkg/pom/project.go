// SPDX-License-Identifier: MPL-2.0

package pom

import (
	"github.com/pomctl/pomctl/pkg/projectid"

	"github.com/beevik/etree"
)

const (
	// ModelVersion is the only descriptor model version written by this package.
	ModelVersion = "4.0.0"

	// DefaultPackaging is the packaging Maven assumes when none is declared.
	DefaultPackaging = "jar"

	// FileName is the conventional descriptor file name.
	FileName = "pom.xml"
)

type (
	// Project is the in-memory form of a descriptor.
	// Empty strings mean the element is absent from the file.
	Project struct {
		ModelVersion string
		GroupID      string
		ArtifactID   string
		Version      string
		Packaging    string
		Parent       *Parent
		Properties   []Property

		// doc is the document the project was loaded from; nil for new projects.
		doc *etree.Document
		// savedParent is Parent as last read or written. An equal Parent
		// leaves the <parent> element as it is in doc.
		savedParent *Parent
	}

	// Parent is the <parent> reference of a descriptor.
	Parent struct {
		GroupID      string
		ArtifactID   string
		Version      string
		RelativePath string
	}

	// Property is a single entry of the <properties> block.
	Property struct {
		Key   string
		Value string
	}
)

// New returns a blank project with the model version set.
func New() *Project {
	return &Project{ModelVersion: ModelVersion}
}

// IsNew reports whether the project was created in memory rather than loaded
// or saved.
func (p *Project) IsNew() bool {
	return p.doc == nil
}

// parentChanged reports whether Parent differs from the loaded or saved one.
func (p *Project) parentChanged() bool {
	switch {
	case p.Parent == nil || p.savedParent == nil:
		return p.Parent != p.savedParent
	default:
		return *p.Parent != *p.savedParent
	}
}

func (p *Parent) clone() *Parent {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// EffectiveGroupID returns the group, inherited from the parent when absent.
func (p *Project) EffectiveGroupID() string {
	if p.GroupID == "" && p.Parent != nil {
		return p.Parent.GroupID
	}
	return p.GroupID
}

// EffectiveVersion returns the version, inherited from the parent when absent.
func (p *Project) EffectiveVersion() string {
	if p.Version == "" && p.Parent != nil {
		return p.Parent.Version
	}
	return p.Version
}

// EffectivePackaging returns the packaging, defaulting to DefaultPackaging.
func (p *Project) EffectivePackaging() string {
	if p.Packaging == "" {
		return DefaultPackaging
	}
	return p.Packaging
}

// ID returns the effective coordinates of the project.
func (p *Project) ID() projectid.Spec {
	return projectid.Spec{
		Group:    p.EffectiveGroupID(),
		Artifact: p.ArtifactID,
		Version:  p.EffectiveVersion(),
	}
}

// Property returns the value of the named property.
func (p *Project) Property(key string) (string, bool) {
	for _, prop := range p.Properties {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// SetProperty sets key to value, keeping the position of an existing entry.
func (p *Project) SetProperty(key, value string) {
	for i := range p.Properties {
		if p.Properties[i].Key == key {
			p.Properties[i].Value = value
			return
		}
	}
	p.Properties = append(p.Properties, Property{Key: key, Value: value})
}
