// SPDX-License-Identifier: MPL-2.0

package projectid

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultSearchURL is the select endpoint of the central search index.
const DefaultSearchURL = "https://search.maven.org/solrsearch/select"

// Query returns the Lucene query matching the present fields, for example
// "g:com.example AND a:my-app".
func (s Spec) Query() string {
	var clauses []string
	if s.Group != "" {
		clauses = append(clauses, "g:"+s.Group)
	}
	if s.Artifact != "" {
		clauses = append(clauses, "a:"+s.Artifact)
	}
	if s.Version != "" {
		clauses = append(clauses, "v:"+s.Version)
	}
	return strings.Join(clauses, " AND ")
}

// URI returns the single-row query URL against DefaultSearchURL.
func (s Spec) URI() *url.URL {
	u, _ := s.URIWithBase(DefaultSearchURL, 1)
	return u
}

// URIWithBase returns the query URL against base, requesting up to rows results.
// The query string keeps the q/start/rows order so URLs are stable in logs,
// and q reads as "g:com.example%20AND%20a:my-app".
func (s Spec) URIWithBase(base string, rows int) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, &InvalidSpecError{Text: base, Reason: "search base URL: " + err.Error()}
	}
	if rows < 1 {
		rows = 1
	}
	u.RawQuery = "q=" + escapeQuery(s.Query()) + "&start=0&rows=" + strconv.Itoa(rows)
	return u, nil
}

// escapeQuery escapes a Lucene query for the q parameter. Field separators
// stay literal and spaces become %20; a literal "+" is still sent as %2B.
func escapeQuery(q string) string {
	return queryReplacer.Replace(url.QueryEscape(q))
}

var queryReplacer = strings.NewReplacer("+", "%20", "%3A", ":")
