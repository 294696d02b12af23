// SPDX-License-Identifier: MPL-2.0

package pom

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/beevik/etree"
)

const (
	pomNamespace      = "http://maven.apache.org/POM/4.0.0"
	xsiNamespace      = "http://www.w3.org/2001/XMLSchema-instance"
	pomSchemaLocation = "http://maven.apache.org/POM/4.0.0 https://maven.apache.org/xsd/maven-4.0.0.xsd"
	indentSpaces      = 2

	defaultFileMode os.FileMode = 0o644
)

var (
	// projectOrder is the element order new children are slotted into.
	// Elements not listed sort after the known ones.
	projectOrder = []string{
		"modelVersion", "parent", "groupId", "artifactId", "version", "packaging",
		"name", "description", "url", "properties",
		"dependencyManagement", "dependencies", "build",
	}

	parentOrder = []string{"groupId", "artifactId", "version", "relativePath"}
)

// Save writes p to path, creating parent directories as needed. The file is
// written to a temporary sibling and renamed into place.
func Save(p *Project, path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create descriptor directory: %w", err)
	}

	return atomicWriteFile(path, data)
}

// Marshal renders the project as XML. A loaded project is rendered from its
// original document with only the owned fields updated.
func (p *Project) Marshal() ([]byte, error) {
	doc := p.doc
	if doc == nil {
		doc = newDocument()
	}
	root := doc.Root()

	setOrRemove(root, "modelVersion", p.ModelVersion, projectOrder)
	p.applyParent(root)
	setOrRemove(root, "groupId", p.GroupID, projectOrder)
	setOrRemove(root, "artifactId", p.ArtifactID, projectOrder)
	setOrRemove(root, "version", p.Version, projectOrder)
	setOrRemove(root, "packaging", p.Packaging, projectOrder)
	p.applyProperties(root)

	doc.Indent(indentSpaces)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render descriptor: %w", err)
	}
	p.doc = doc
	p.savedParent = p.Parent.clone()
	return data, nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)
	root.CreateAttr("xmlns", pomNamespace)
	root.CreateAttr("xmlns:xsi", xsiNamespace)
	root.CreateAttr("xsi:schemaLocation", pomSchemaLocation)
	return doc
}

// applyParent writes Parent into root. An existing document keeps its
// <parent> element verbatim unless Parent changed, so an empty
// <relativePath/> survives an update.
func (p *Project) applyParent(root *etree.Element) {
	if !p.IsNew() && !p.parentChanged() {
		return
	}
	el := root.SelectElement("parent")
	if p.Parent == nil {
		if el != nil {
			root.RemoveChild(el)
		}
		return
	}
	if el == nil {
		el = etree.NewElement("parent")
		insertOrdered(root, el, projectOrder)
	}
	setOrRemove(el, "groupId", p.Parent.GroupID, parentOrder)
	setOrRemove(el, "artifactId", p.Parent.ArtifactID, parentOrder)
	setOrRemove(el, "version", p.Parent.Version, parentOrder)
	setOrRemove(el, "relativePath", p.Parent.RelativePath, parentOrder)
}

func (p *Project) applyProperties(root *etree.Element) {
	el := root.SelectElement("properties")
	if len(p.Properties) == 0 {
		if el != nil && len(el.ChildElements()) == 0 {
			root.RemoveChild(el)
		}
		return
	}
	if el == nil {
		el = etree.NewElement("properties")
		insertOrdered(root, el, projectOrder)
	}
	for _, prop := range p.Properties {
		if child := el.SelectElement(prop.Key); child != nil {
			child.SetText(prop.Value)
			continue
		}
		el.CreateElement(prop.Key).SetText(prop.Value)
	}
}

// setOrRemove sets the text of the child named tag, creating it in order when
// missing, or removes the child when value is empty.
func setOrRemove(parent *etree.Element, tag, value string, order []string) {
	child := parent.SelectElement(tag)
	if value == "" {
		if child != nil {
			parent.RemoveChild(child)
		}
		return
	}
	if child == nil {
		child = etree.NewElement(tag)
		insertOrdered(parent, child, order)
	}
	child.SetText(value)
}

// insertOrdered inserts el after the last child that sorts at or before it.
func insertOrdered(parent, el *etree.Element, order []string) {
	rank := func(tag string) int {
		if i := slices.Index(order, tag); i >= 0 {
			return i
		}
		return len(order)
	}

	r := rank(el.Tag)
	idx := 0
	for _, c := range parent.ChildElements() {
		if rank(c.Tag) <= r {
			idx = c.Index() + 1
		}
	}
	parent.InsertChildAt(idx, el)
}

// atomicWriteFile writes data to a temp file in the target directory and
// renames it over path. An existing file keeps its permission bits; new
// files get defaultFileMode.
func atomicWriteFile(path string, data []byte) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // Best-effort cleanup
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set descriptor permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
