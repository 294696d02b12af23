// SPDX-License-Identifier: MPL-2.0

// Package toolchain detects the local Java toolchain version.
//
// Detection is split in two: [Detector.Detect] spawns the version-reporting
// command and captures its combined output, and [ParseVersion] classifies that
// text without any I/O. The parsed [VersionInfo] maps to the compiler
// properties written into new descriptors.
package toolchain
