// SPDX-License-Identifier: MPL-2.0

// Package discovery finds the descriptor that encloses a directory.
//
// LocateParent walks from the directory above a start directory toward the
// filesystem root and reads the first descriptor it meets. Ancestor files are
// only ever read.
package discovery
