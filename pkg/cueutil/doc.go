// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates loosely typed records against embedded CUE schemas.
//
// Records reach opcmd from several file formats. CUE sources are compiled and
// unified with the schema directly; records decoded from YAML, TOML or JSON
// are encoded into CUE first so that every format is held to the same
// constraints and reports the same path-prefixed errors:
//
//	//go:embed definition_schema.cue
//	var schema []byte
//
//	rec, err := cueutil.Parse(schema, src, "#Definition", cueutil.WithFilename("train.cue"))
//	if err != nil {
//	    return err // train.cue: flags.lr.arg-skip: conflicting values ...
//	}
//
// Format renders a record back to canonical CUE source.
package cueutil
