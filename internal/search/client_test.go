// SPDX-License-Identifier: MPL-2.0

package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pomctl/pomctl/pkg/projectid"
)

const artifactResponse = `{
  "responseHeader": {"status": 0},
  "response": {
    "numFound": 3,
    "start": 0,
    "docs": [
      {"id": "com.example:lib", "g": "com.example", "a": "lib", "latestVersion": "1.2.0", "p": "jar", "versionCount": 4},
      {"id": "com.example:lib-next", "g": "com.example", "a": "lib-next", "latestVersion": "2.0.1", "p": "jar", "versionCount": 2},
      {"id": "com.example:odd", "g": "com.example", "a": "odd", "latestVersion": "r09", "p": "pom"}
    ]
  }
}`

func TestSearch_DecodesDocs(t *testing.T) {
	t.Parallel()

	var gotQuery, gotRows, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotRows = r.URL.Query().Get("rows")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(artifactResponse))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRows(5), WithUserAgent("pomctl/test"))
	got, err := client.Search(context.Background(), projectid.MustParse("com.example:lib"))
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if gotQuery != "g:com.example AND a:lib" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotRows != "5" {
		t.Errorf("rows = %q, want 5", gotRows)
	}
	if gotUA != "pomctl/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	wantOrder := []string{"lib-next", "lib", "odd"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d artifacts, want %d", len(got), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got[i].Artifact != want {
			t.Errorf("artifact[%d] = %q, want %q", i, got[i].Artifact, want)
		}
	}
	if got[1].Version != "1.2.0" || got[1].Packaging != "jar" || got[1].VersionCount != 4 {
		t.Errorf("artifact[1] = %+v", got[1])
	}
	if spec := got[0].Spec(); spec.String() != "com.example:lib-next:2.0.1" {
		t.Errorf("Spec() = %q", spec)
	}
}

func TestSearch_PrefersExactVersion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"numFound":1,"docs":[{"g":"g","a":"a","v":"3.1","latestVersion":"9.0"}]}}`))
	}))
	defer srv.Close()

	got, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), projectid.MustParse("g:a:3.1"))
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(got) != 1 || got[0].Version != "3.1" {
		t.Errorf("Search() = %+v, want version 3.1", got)
	}
}

func TestSearch_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		spec    projectid.Spec
		wantErr func(error) bool
	}{
		{
			name:   "non-200 status",
			status: http.StatusServiceUnavailable,
			spec:   projectid.Spec{Artifact: "a"},
			wantErr: func(err error) bool {
				var se *StatusError
				return errors.As(err, &se) && se.StatusCode == http.StatusServiceUnavailable
			},
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    "{not json",
			spec:    projectid.Spec{Artifact: "a"},
			wantErr: func(err error) bool { return err != nil && strings.Contains(err.Error(), "decoding response") },
		},
		{
			name:    "missing artifact",
			status:  http.StatusOK,
			spec:    projectid.Spec{Group: "g"},
			wantErr: func(err error) bool { return errors.Is(err, projectid.ErrInvalidSpec) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(WithBaseURL(srv.URL)).Search(context.Background(), tt.spec)
			if !tt.wantErr(err) {
				t.Errorf("Search() error = %v", err)
			}
		})
	}
}

func TestSearch_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"docs":[]}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(WithBaseURL(srv.URL)).Search(ctx, projectid.Spec{Artifact: "a"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Search() error = %v, want context.Canceled", err)
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	empty := Markdown("g:x", nil)
	if !strings.Contains(empty, "No matching artifacts") {
		t.Errorf("Markdown(nil) = %q", empty)
	}

	md := Markdown("a:lib", []Artifact{{Group: "g", Artifact: "lib", Version: "1.0", Packaging: "jar", VersionCount: 3}})
	for _, want := range []string{"# Results for `a:lib`", "| `g:lib:1.0` | jar | 3 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q:\n%s", want, md)
		}
	}
}
