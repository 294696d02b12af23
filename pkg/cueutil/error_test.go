// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const configLikeSchema = `
#Config: {
	search?: {
		rows?: int & >=1
	}
	ui?: {
		color_scheme?: "auto" | "dark" | "light"
	}
}
`

// validate unifies doc with #Config and returns the raw CUE error.
func validate(t *testing.T, doc string) error {
	t.Helper()

	ctx := cuecontext.New()
	def := ctx.CompileString(configLikeSchema).LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		t.Fatalf("schema: %v", def.Err())
	}
	user := ctx.CompileString(doc, cue.Filename("config.cue"))
	if user.Err() != nil {
		t.Fatalf("document: %v", user.Err())
	}
	return def.Unify(user).Validate(cue.Concrete(false))
}

func TestFormatError_DropsDefinitionSelector(t *testing.T) {
	t.Parallel()

	raw := validate(t, `search: { rows: 0 }`)
	if raw == nil {
		t.Fatal("expected a CUE error for rows: 0")
	}

	got := FormatError(raw, "config.cue").Error()
	if !strings.HasPrefix(got, "config.cue: search.rows: ") {
		t.Errorf("FormatError() = %q, want prefix %q", got, "config.cue: search.rows: ")
	}
	if strings.Contains(got, "#Config") {
		t.Errorf("FormatError() = %q, should not mention the definition", got)
	}
}

func TestFormatError_UnknownField(t *testing.T) {
	t.Parallel()

	raw := validate(t, `search: { row: 5 }`)
	if raw == nil {
		t.Fatal("expected a CUE error for an unknown field")
	}

	got := FormatError(raw, "config.cue").Error()
	if !strings.Contains(got, "search.row") {
		t.Errorf("FormatError() = %q, want the field path search.row", got)
	}
}

func TestFormatError_PlainErrors(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "config.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}

	err := FormatError(errors.New("read failed"), "/etc/pomctl/config.cue")
	if got, want := err.Error(), "/etc/pomctl/config.cue: read failed"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}

func TestFieldPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"#Config"}, ""},
		{[]string{"#Config", "search", "rows"}, "search.rows"},
		{[]string{"project", "default_group"}, "project.default_group"},
		{[]string{"#Config", "profiles", "0", "name"}, "profiles[0].name"},
		{[]string{"mirrors", "1", "urls", "0"}, "mirrors[1].urls[0]"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := fieldPath(tt.path); got != tt.want {
				t.Errorf("fieldPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckSize(t *testing.T) {
	t.Parallel()

	if err := checkSize(make([]byte, 64), 64, "config.cue"); err != nil {
		t.Errorf("at limit: %v", err)
	}

	err := checkSize(make([]byte, 65), 64, "config.cue")
	if err == nil {
		t.Fatal("over limit: expected error")
	}
	if got, want := err.Error(), "config.cue: document is 65 bytes, exceeds maximum 64 bytes"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}
