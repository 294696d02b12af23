// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError renders a CUE error as "<file>: <field>: <message>". Field paths
// are relative to the schema definition the document was unified with, so a
// bad rows value in a #Config document reads "search.rows", the way the user
// wrote it. Several errors are listed one per line.
func FormatError(err error, filename string) error {
	if err == nil {
		return nil
	}

	var cueErr errors.Error
	if !errors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", filename, err)
	}

	cueErrors := errors.Errors(err)
	seen := make(map[string]bool, len(cueErrors))
	var lines []string
	for _, e := range cueErrors {
		format, args := e.Msg()
		line := fmt.Sprintf(format, args...)
		if line == "" {
			line = e.Error()
		}
		if field := fieldPath(errors.Path(e)); field != "" {
			line = field + ": " + line
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filename, strings.Join(lines, "\n  "))
}

// fieldPath joins CUE path selectors into a dotted field path. A leading
// definition selector is dropped and list indices are bracketed:
// ["#Config", "profiles", "0", "name"] becomes "profiles[0].name".
func fieldPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}

	var sb strings.Builder
	for _, sel := range path {
		if sb.Len() > 0 && isIndex(sel) {
			sb.WriteString("[" + sel + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(sel)
	}
	return sb.String()
}

func isIndex(sel string) bool {
	if sel == "" {
		return false
	}
	for _, c := range sel {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// checkSize rejects documents larger than limit bytes.
func checkSize(data []byte, limit int64, filename string) error {
	if n := int64(len(data)); n > limit {
		return fmt.Errorf("%s: document is %d bytes, exceeds maximum %d bytes", filename, n, limit)
	}
	return nil
}
