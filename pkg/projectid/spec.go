// SPDX-License-Identifier: MPL-2.0

package projectid

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins the segments of a coordinate.
const Separator = ":"

// ErrInvalidSpec is the sentinel error wrapped by InvalidSpecError.
var ErrInvalidSpec = errors.New("invalid project spec")

type (
	// Spec is an immutable group/artifact/version triple. Group and Version
	// are optional; the empty string means the field was not given.
	Spec struct {
		Group    string
		Artifact string
		Version  string
	}

	// InvalidSpecError is returned when a coordinate string has a segment
	// count outside 1-3 or contains an empty segment.
	// It wraps ErrInvalidSpec for errors.Is() compatibility.
	InvalidSpecError struct {
		Text   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidSpecError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid spec: %s", e.Text)
	}
	return fmt.Sprintf("invalid spec %q: %s", e.Text, e.Reason)
}

// Unwrap returns ErrInvalidSpec for errors.Is() compatibility.
func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

// Parse splits text on ":" into a Spec.
//
//	1 segment  -> artifact
//	2 segments -> group:artifact
//	3 segments -> group:artifact:version
//
// Any other segment count, or an empty segment, fails with *InvalidSpecError.
func Parse(text string) (Spec, error) {
	parts := strings.Split(text, Separator)

	var s Spec
	switch len(parts) {
	case 1:
		s = Spec{Artifact: parts[0]}
	case 2:
		s = Spec{Group: parts[0], Artifact: parts[1]}
	case 3:
		s = Spec{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	default:
		return Spec{}, &InvalidSpecError{
			Text:   text,
			Reason: fmt.Sprintf("expected 1 to 3 segments separated by %q, got %d", Separator, len(parts)),
		}
	}

	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return Spec{}, &InvalidSpecError{Text: text, Reason: "segments must not be empty"}
		}
	}

	return s, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(text string) Spec {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the canonical form: present fields joined with ":".
func (s Spec) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Group, s.Artifact, s.Version} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, Separator)
}

// IsComplete reports whether all three fields are set.
func (s Spec) IsComplete() bool {
	return s.Group != "" && s.Artifact != "" && s.Version != ""
}

// Validate returns an error when the artifact is missing.
func (s Spec) Validate() error {
	if s.Artifact == "" {
		return &InvalidSpecError{Text: s.String(), Reason: "artifact is required"}
	}
	return nil
}

// WithDefaults returns a copy of s with empty group and version replaced by
// the given values.
func (s Spec) WithDefaults(group, version string) Spec {
	if s.Group == "" {
		s.Group = group
	}
	if s.Version == "" {
		s.Version = version
	}
	return s
}
