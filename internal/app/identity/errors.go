// SPDX-License-Identifier: MPL-2.0

package identity

import (
	"errors"
	"fmt"

	"github.com/pomctl/pomctl/pkg/types"
)

// ErrMissingIdentity is the sentinel error wrapped by MissingIdentityError.
var ErrMissingIdentity = errors.New("missing project identity")

// MissingIdentityError is returned when a descriptor would have to be created
// but no spec was given to name it.
type MissingIdentityError struct {
	Path types.FilesystemPath
}

// Error implements the error interface.
func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("no project id given and %s does not exist", e.Path)
}

// Unwrap returns ErrMissingIdentity for errors.Is() compatibility.
func (e *MissingIdentityError) Unwrap() error { return ErrMissingIdentity }
