// SPDX-License-Identifier: MPL-2.0

package pom

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Load when the descriptor file does not exist.
	ErrNotFound = errors.New("descriptor not found")

	// ErrInvalidDescriptor is the sentinel error wrapped by InvalidDescriptorError.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
)

// InvalidDescriptorError is returned when a file exists but is not a usable
// descriptor (malformed XML or a root element other than <project>).
type InvalidDescriptorError struct {
	Path   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *InvalidDescriptorError) Error() string {
	msg := fmt.Sprintf("invalid descriptor %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidDescriptor so callers can use errors.Is; the
// underlying parse error stays reachable through Cause.
func (e *InvalidDescriptorError) Unwrap() error { return ErrInvalidDescriptor }

// Cause returns the underlying parse error, if any.
func (e *InvalidDescriptorError) Cause() error { return e.Err }
