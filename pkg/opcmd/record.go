// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Record keys of the persisted definition form.
const (
	KeyArgs  = "args"
	KeyEnv   = "env"
	KeyFlags = "flags"

	KeyArgName   = "arg-name"
	KeyArgSkip   = "arg-skip"
	KeyArgSwitch = "arg-switch"
	KeyEnvName   = "env-name"
)

// Record is the plain structured form of a Definition, as read from or written
// to a configuration file:
//
//	args:  [string]
//	env:   {string: scalar}
//	flags: {string: {arg-name?: string, arg-skip?: bool, arg-switch?: scalar, env-name?: string}}
type Record = map[string]any

// FromRecord builds a Definition from its record form.
//
// Missing args and env default to empty. Every flags entry must itself be a
// mapping whose keys are among arg-name, arg-skip, arg-switch and env-name; a
// missing key leaves the field unset. Structural problems fail with a
// *MalformedConfigError naming the field path and the offending value. Keys other
// than args, env and flags are ignored so a definition can be embedded in a
// larger operation record.
func FromRecord(rec Record) (*Definition, error) {
	args, err := argsFromRecord(rec[KeyArgs])
	if err != nil {
		return nil, err
	}

	var env map[string]any
	if raw := rec[KeyEnv]; raw != nil {
		if env, err = asMap(KeyEnv, raw); err != nil {
			return nil, err
		}
	}

	flags, err := flagsFromRecord(rec[KeyFlags])
	if err != nil {
		return nil, err
	}

	return NewDefinition(args, env, flags)
}

// ToRecord returns the record form of the definition. Empty args, env and flags
// are omitted, as are overrides with no field set and unset fields within an
// override, so FromRecord(d.ToRecord()) is equivalent to d.
func (d *Definition) ToRecord() Record {
	rec := Record{}
	if len(d.args) > 0 {
		args := make([]any, len(d.args))
		for i, arg := range d.args {
			args[i] = arg
		}
		rec[KeyArgs] = args
	}
	if len(d.env) > 0 {
		rec[KeyEnv] = d.Env()
	}

	flags := make(map[string]any, len(d.flags))
	for _, name := range slices.Sorted(maps.Keys(d.flags)) {
		if data := overrideRecord(d.flags[name]); len(data) > 0 {
			flags[name] = data
		}
	}
	if len(flags) > 0 {
		rec[KeyFlags] = flags
	}
	return rec
}

func overrideRecord(o FlagOverride) map[string]any {
	data := make(map[string]any, 4)
	if o.ArgName != "" {
		data[KeyArgName] = o.ArgName
	}
	if o.ArgSkip {
		data[KeyArgSkip] = true
	}
	if o.ArgSwitch != nil {
		data[KeyArgSwitch], _ = canonical(o.ArgSwitch)
	}
	if o.EnvName != "" {
		data[KeyEnvName] = o.EnvName
	}
	return data
}

func argsFromRecord(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, malformed(KeyArgs, raw, "expected a list of strings")
	}
	args := make([]string, rv.Len())
	for i := range args {
		item := rv.Index(i).Interface()
		s, ok := item.(string)
		if !ok {
			return nil, malformed(fmt.Sprintf("%s[%d]", KeyArgs, i), item, "argument must be a string")
		}
		args[i] = s
	}
	return args, nil
}

func flagsFromRecord(raw any) (map[string]FlagOverride, error) {
	if raw == nil {
		return nil, nil
	}
	entries, err := asMap(KeyFlags, raw)
	if err != nil {
		return nil, err
	}
	flags := make(map[string]FlagOverride, len(entries))
	for _, name := range slices.Sorted(maps.Keys(entries)) {
		o, err := overrideFromRecord(KeyFlags+"."+name, entries[name])
		if err != nil {
			return nil, err
		}
		flags[name] = o
	}
	return flags, nil
}

func overrideFromRecord(path string, raw any) (FlagOverride, error) {
	var o FlagOverride
	if raw == nil {
		return o, malformed(path, nil, "flag override must be a mapping, got null")
	}
	data, err := asMap(path, raw)
	if err != nil {
		return o, err
	}
	for _, key := range slices.Sorted(maps.Keys(data)) {
		val := data[key]
		fieldPath := path + "." + key
		switch key {
		case KeyArgName:
			if o.ArgName, err = nameField(fieldPath, val); err != nil {
				return o, err
			}
		case KeyArgSkip:
			if val == nil {
				continue
			}
			b, ok := val.(bool)
			if !ok {
				return o, malformed(fieldPath, val, "expected a boolean")
			}
			o.ArgSkip = b
		case KeyArgSwitch:
			o.ArgSwitch = val
		case KeyEnvName:
			if o.EnvName, err = nameField(fieldPath, val); err != nil {
				return o, err
			}
		default:
			return o, malformed(fieldPath, val, "unknown flag override field (expected %s, %s, %s or %s)",
				KeyArgName, KeyArgSkip, KeyArgSwitch, KeyEnvName)
		}
	}
	return o, nil
}

func nameField(path string, val any) (string, error) {
	if val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", malformed(path, val, "expected a string")
	}
	if s == "" {
		return "", malformed(path, nil, "name must not be empty")
	}
	return s, nil
}

// asMap accepts any Go map whose keys are strings and returns a shallow copy.
func asMap(path string, raw any) (map[string]any, error) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, malformed(path, raw, "expected a mapping")
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, ok := iter.Key().Interface().(string)
		if !ok {
			return nil, malformed(path, iter.Key().Interface(), "mapping keys must be strings")
		}
		out[key] = iter.Value().Interface()
	}
	return out, nil
}
