// SPDX-License-Identifier: MPL-2.0

// Package pom reads and writes Maven project descriptors (pom.xml).
//
// Only the fields the tool owns are modeled: modelVersion, the project
// coordinates, packaging, the parent reference and the properties block.
// A descriptor loaded with [Load] keeps its parsed XML document, and [Save]
// rewrites only those fields, so dependencies, build sections and comments
// survive an update.
package pom
