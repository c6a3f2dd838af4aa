// SPDX-License-Identifier: MPL-2.0

// Package render prints generated commands in the opcmd output formats.
package render
