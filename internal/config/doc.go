// SPDX-License-Identifier: MPL-2.0

// Package config handles opcmd configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the opcmd config directory
// ($XDG_CONFIG_HOME/opcmd on Linux, ~/Library/Application Support/opcmd on
// macOS, %APPDATA%\opcmd on Windows), validated against the embedded #Config
// schema and merged over defaults. OPCMD_* environment variables override file
// values, for example OPCMD_LOG_LEVEL=debug or OPCMD_UI_VERBOSE=true.
package config
