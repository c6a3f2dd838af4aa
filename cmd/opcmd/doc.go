// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the opcmd command-line interface.
//
// Cobra handlers receive an *App holding the configuration provider and output
// streams. Each invocation loads configuration once into a session that carries
// the logger, the definition search path and the effective UI settings.
package cmd
