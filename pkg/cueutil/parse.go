// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Parse compiles data as CUE, unifies it with the definition at schemaPath in
// schema, validates the result and decodes it into a record.
//
// Integers decode as int64 and floats as float64, matching the canonical value
// set used by package opcmd.
func Parse(schema, data []byte, schemaPath string, opts ...Option) (map[string]any, error) {
	o := newOptions(opts)
	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	root, err := lookupSchema(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	user := ctx.CompileBytes(data, cue.Filename(o.filename))
	if user.Err() != nil {
		return nil, FormatError(user.Err(), o.filename)
	}
	return decode(root.Unify(user), o)
}

// Validate holds an already decoded record to the definition at schemaPath and
// returns the record as CUE sees it after unification.
func Validate(schema []byte, record map[string]any, schemaPath string, opts ...Option) (map[string]any, error) {
	o := newOptions(opts)

	ctx := cuecontext.New()
	root, err := lookupSchema(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	if record == nil {
		record = map[string]any{}
	}
	user := ctx.Encode(record)
	if user.Err() != nil {
		return nil, FormatError(user.Err(), o.filename)
	}
	return decode(root.Unify(user), o)
}

func lookupSchema(ctx *cue.Context, schema []byte, schemaPath string) (cue.Value, error) {
	compiled := ctx.CompileBytes(schema)
	if compiled.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", compiled.Err())
	}
	root := compiled.LookupPath(cue.ParsePath(schemaPath))
	if !root.Exists() || root.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, root.Err())
	}
	return root, nil
}

func decode(unified cue.Value, o options) (map[string]any, error) {
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, o.filename)
	}

	var record map[string]any
	if err := unified.Decode(&record); err != nil {
		return nil, FormatError(err, o.filename)
	}
	if record == nil {
		record = map[string]any{}
	}
	return record, nil
}
