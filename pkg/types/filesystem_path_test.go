// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path FilesystemPath
		want bool
	}{
		{"absolute path", "/srv/app/pom.xml", true},
		{"relative path", "pom.xml", true},
		{"windows style", `C:\work\app\pom.xml`, true},
		{"path with spaces", "/path/to/my app/pom.xml", true},
		{"dot path", ".", true},
		{"empty is invalid", "", false},
		{"whitespace only is invalid", "   ", false},
		{"tab only is invalid", "\t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valid, errs := tt.path.IsValid()
			if valid != tt.want {
				t.Fatalf("FilesystemPath(%q).IsValid() = %v, want %v", tt.path, valid, tt.want)
			}
			if valid {
				if len(errs) != 0 {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidFilesystemPath) {
				t.Errorf("errors = %v, want one ErrInvalidFilesystemPath", errs)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(errs[0], &fpErr) || fpErr.Value != tt.path {
				t.Errorf("error = %#v, want *InvalidFilesystemPathError for %q", errs[0], tt.path)
			}
		})
	}
}

func TestFilesystemPath_String(t *testing.T) {
	t.Parallel()

	if got := FilesystemPath("a/pom.xml").String(); got != "a/pom.xml" {
		t.Errorf("String() = %q, want %q", got, "a/pom.xml")
	}
}
