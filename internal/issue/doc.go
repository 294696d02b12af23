// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. The catalog in issue.go holds Markdown guidance for
// well-known failure kinds, rendered with glamour.
package issue
