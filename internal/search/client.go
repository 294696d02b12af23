// SPDX-License-Identifier: MPL-2.0

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/pomctl/pomctl/pkg/projectid"
)

const (
	// DefaultRows is the number of results requested when none is configured.
	DefaultRows = 20

	// maxJSONResponseBytes bounds the decoded response size (10 MB).
	maxJSONResponseBytes = 10 << 20
)

type (
	// Artifact is one search hit.
	Artifact struct {
		Group     string
		Artifact  string
		Version   string
		Packaging string
		// VersionCount is the number of published versions, when reported.
		VersionCount int
	}

	// StatusError is returned when the index answers with a non-200 status.
	StatusError struct {
		URL        string
		StatusCode int
	}

	// solrResponse is the JSON wire format of the select endpoint.
	solrResponse struct {
		Response struct {
			NumFound int       `json:"numFound"`
			Docs     []solrDoc `json:"docs"`
		} `json:"response"`
	}

	solrDoc struct {
		G             string `json:"g"`
		A             string `json:"a"`
		V             string `json:"v"`
		LatestVersion string `json:"latestVersion"`
		P             string `json:"p"`
		VersionCount  int    `json:"versionCount"`
	}

	// Client queries the search index.
	Client struct {
		httpClient *http.Client
		baseURL    string
		rows       int
		userAgent  string
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("search %s: unexpected status %d", e.URL, e.StatusCode)
}

// Spec converts the hit back to project coordinates.
func (a Artifact) Spec() projectid.Spec {
	return projectid.Spec{Group: a.Group, Artifact: a.Artifact, Version: a.Version}
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(s *Client) {
		s.httpClient = c
	}
}

// WithBaseURL overrides the select endpoint, primarily for test servers.
func WithBaseURL(base string) ClientOption {
	return func(s *Client) {
		if base != "" {
			s.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithRows sets the number of requested results. Values below 1 are ignored.
func WithRows(rows int) ClientOption {
	return func(s *Client) {
		if rows > 0 {
			s.rows = rows
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(s *Client) {
		s.userAgent = ua
	}
}

// NewClient creates a Client for the public index.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    projectid.DefaultSearchURL,
		rows:       DefaultRows,
		userAgent:  "pomctl/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the artifacts matching spec, newest version first when the
// versions are comparable.
func (c *Client) Search(ctx context.Context, spec projectid.Spec) ([]Artifact, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	u, err := spec.URIWithBase(c.baseURL, c.rows)
	if err != nil {
		return nil, err
	}
	reqURL := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", spec, err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	var sr solrResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&sr); err != nil {
		return nil, fmt.Errorf("searching %s: decoding response: %w", spec, err)
	}

	artifacts := make([]Artifact, 0, len(sr.Response.Docs))
	for _, d := range sr.Response.Docs {
		artifacts = append(artifacts, toArtifact(d))
	}
	sortByVersionDesc(artifacts)
	return artifacts, nil
}

func toArtifact(d solrDoc) Artifact {
	version := d.V
	if version == "" {
		version = d.LatestVersion
	}
	return Artifact{
		Group:        d.G,
		Artifact:     d.A,
		Version:      version,
		Packaging:    d.P,
		VersionCount: d.VersionCount,
	}
}

// sortByVersionDesc orders hits by semantic version, newest first. Versions
// that are not valid semver keep their relative order after the valid ones.
func sortByVersionDesc(artifacts []Artifact) {
	slices.SortStableFunc(artifacts, func(a, b Artifact) int {
		va, vb := canonical(a.Version), canonical(b.Version)
		switch {
		case va == "" && vb == "":
			return 0
		case va == "":
			return 1
		case vb == "":
			return -1
		}
		return semver.Compare(vb, va)
	})
}

func canonical(version string) string {
	v := "v" + version
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
