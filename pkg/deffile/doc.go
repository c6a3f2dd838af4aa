// SPDX-License-Identifier: MPL-2.0

// Package deffile reads and writes operation definitions as files.
//
// The file extension selects the format: .cue, .yaml/.yml, .toml, .json or
// .jsonc. Every format is checked against the same #Definition CUE schema
// before the record is handed to opcmd.FromRecord, so a misspelled override
// key reports the same path whatever the source format.
package deffile
