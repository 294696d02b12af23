// SPDX-License-Identifier: MPL-2.0

// Package projectid parses and formats Maven-style project coordinates.
//
// A coordinate is written as up to three colon-separated segments:
//
//	my-app                       artifact only
//	com.example:my-app           group and artifact
//	com.example:my-app:1.0.0     group, artifact and version
//
// Absent fields are represented by the empty string. [Spec.String] joins the
// present fields back with ":" so that three-segment input round-trips.
//
// The package also builds read-only query URLs for the central search index
// (see [Spec.Query] and [Spec.URI]).
package projectid
