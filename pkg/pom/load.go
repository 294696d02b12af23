// SPDX-License-Identifier: MPL-2.0

package pom

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/beevik/etree"
)

const rootTag = "project"

// Load reads the descriptor at path. It returns an error wrapping ErrNotFound
// when the file does not exist.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open descriptor: %w", err)
	}
	defer func() { _ = f.Close() }() // read-only handle

	return Read(f, path)
}

// Read parses a descriptor from r. name is only used in error messages.
func Read(r io.Reader, name string) (*Project, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &InvalidDescriptorError{Path: name, Reason: "malformed XML", Err: err}
	}

	root := doc.Root()
	if root == nil || root.Tag != rootTag {
		return nil, &InvalidDescriptorError{Path: name, Reason: "root element must be <project>"}
	}

	p := &Project{
		ModelVersion: childText(root, "modelVersion"),
		GroupID:      childText(root, "groupId"),
		ArtifactID:   childText(root, "artifactId"),
		Version:      childText(root, "version"),
		Packaging:    childText(root, "packaging"),
		doc:          doc,
	}

	if el := root.SelectElement("parent"); el != nil {
		p.Parent = &Parent{
			GroupID:      childText(el, "groupId"),
			ArtifactID:   childText(el, "artifactId"),
			Version:      childText(el, "version"),
			RelativePath: childText(el, "relativePath"),
		}
		p.savedParent = p.Parent.clone()
	}

	if el := root.SelectElement("properties"); el != nil {
		for _, prop := range el.ChildElements() {
			p.Properties = append(p.Properties, Property{
				Key:   fullTag(prop),
				Value: strings.TrimSpace(prop.Text()),
			})
		}
	}

	return p, nil
}

// childText returns the trimmed text of the first child element named tag.
func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func fullTag(el *etree.Element) string {
	if el.Space != "" {
		return el.Space + ":" + el.Tag
	}
	return el.Tag
}
