// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing failure context for the opcmd CLI.
//
// An ActionableError names the operation that failed, the definition or file
// involved and suggestions for fixing it. Errors tied to a known failure kind
// also reference an Issue, a Markdown help page rendered with glamour when
// verbose output is requested.
package issue
