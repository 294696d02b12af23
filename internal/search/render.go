// SPDX-License-Identifier: MPL-2.0

package search

import (
	"fmt"
	"strings"
)

// Markdown renders the hits as a markdown table suitable for glamour.
func Markdown(query string, artifacts []Artifact) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Results for `%s`\n\n", query)
	if len(artifacts) == 0 {
		sb.WriteString("_No matching artifacts._\n")
		return sb.String()
	}

	sb.WriteString("| Coordinates | Packaging | Versions |\n")
	sb.WriteString("|---|---|---|\n")
	for _, a := range artifacts {
		packaging := a.Packaging
		if packaging == "" {
			packaging = "-"
		}
		versions := "-"
		if a.VersionCount > 0 {
			versions = fmt.Sprint(a.VersionCount)
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", a.Spec(), packaging, versions)
	}
	return sb.String()
}
