// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "load configuration"}, "failed to load configuration"},
		{
			"with resource",
			&ActionableError{Operation: "read descriptor", Resource: "a/pom.xml"},
			"failed to read descriptor: a/pom.xml",
		},
		{
			"with resource and cause",
			&ActionableError{Operation: "resolve project id", Resource: "pom.xml", Cause: errors.New("boom")},
			"failed to resolve project id: pom.xml: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("specific error")
	wrapped := NewErrorContext().WithOperation("search").Wrap(cause).BuildError()

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var ae *ActionableError
	if !errors.As(wrapped, &ae) {
		t.Fatal("errors.As should find the ActionableError")
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions are bulleted",
			err: &ActionableError{
				Operation:   "resolve project id",
				Resource:    "./pom.xml",
				Suggestions: []string{"Pass a spec", "Use --standalone"},
			},
			contains: []string{"failed to resolve project id: ./pom.xml", "• Pass a spec", "• Use --standalone"},
		},
		{
			name:     "no chain without verbose",
			err:      &ActionableError{Operation: "parse config", Cause: errors.New("syntax error")},
			contains: []string{"failed to parse config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested chain in verbose mode",
			err: &ActionableError{
				Operation: "create descriptor",
				Cause: &ActionableError{
					Operation: "read parent",
					Cause:     errors.New("unexpected EOF"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to read parent: unexpected EOF",
				"2. unexpected EOF",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return a nil interface")
	}

	cause := errors.New("cause")
	ae := NewErrorContext().
		WithOperation("search").
		WithResource("g:a").
		WithSuggestion("one").
		WithSuggestion("two").
		WithIssue(SearchFailedId).
		Wrap(cause).
		Build()

	if ae.Operation != "search" || ae.Resource != "g:a" || ae.Cause != cause {
		t.Errorf("Build() = %+v", ae)
	}
	if ae.Issue != SearchFailedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, SearchFailedId)
	}
	if !ae.HasSuggestions() || len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", ae.Suggestions)
	}
}
