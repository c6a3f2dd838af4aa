// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"errors"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// FlagArgsMarker is the argument template token replaced by all flag-derived arguments.
const FlagArgsMarker = "__flag_args__"

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type (
	// FlagOverride changes how one parameter is surfaced. Each field is
	// independently optional; the zero value of a field means "unset".
	//
	// ArgSwitch is unset only when nil, so false, 0 and "" are valid sentinels.
	FlagOverride struct {
		// ArgName replaces the parameter name in the emitted argument.
		ArgName string
		// ArgSkip suppresses the argument (the environment variable is still set).
		ArgSkip bool
		// ArgSwitch turns the parameter into a bare --name argument that is
		// emitted only when the runtime value equals this sentinel.
		ArgSwitch any
		// EnvName replaces the default FLAG_<NAME> environment variable name.
		EnvName string
	}

	// Definition is an immutable command template: argument tokens, environment
	// templates and per-parameter overrides. Build one with NewDefinition or
	// FromRecord. A Definition is safe for concurrent use.
	Definition struct {
		args  []string
		env   map[string]any
		flags map[string]FlagOverride
	}
)

// IsZero reports whether no field of the override is set.
func (o FlagOverride) IsZero() bool {
	return o.ArgName == "" && !o.ArgSkip && o.ArgSwitch == nil && o.EnvName == ""
}

// IsValid returns whether the override is well formed, and the list of
// problems if it is not.
func (o FlagOverride) IsValid() (bool, []error) {
	var errs []error
	if o.ArgName != "" && (strings.HasPrefix(o.ArgName, "-") || strings.ContainsAny(o.ArgName, " \t\n=")) {
		errs = append(errs, malformed("arg-name", o.ArgName, "argument name must not start with '-' or contain whitespace or '='"))
	}
	if o.ArgSwitch != nil {
		if _, err := Encode(o.ArgSwitch); err != nil {
			errs = append(errs, malformed("arg-switch", o.ArgSwitch, "switch value must be a scalar or a flat list of scalars"))
		}
	}
	if o.EnvName != "" && !envNamePattern.MatchString(o.EnvName) {
		errs = append(errs, malformed("env-name", o.EnvName, "invalid environment variable name"))
	}
	return len(errs) == 0, errs
}

// NewDefinition validates and copies its inputs into a Definition.
//
// The argument template may contain at most one FlagArgsMarker. Environment
// template values must be encodable. Overrides that set no field are dropped.
func NewDefinition(args []string, env map[string]any, flags map[string]FlagOverride) (*Definition, error) {
	if n := countMarkers(args); n > 1 {
		return nil, malformed("args", nil, "flag insertion marker %q appears %d times (at most once allowed)", FlagArgsMarker, n)
	}

	d := &Definition{
		args:  slices.Clone(args),
		env:   make(map[string]any, len(env)),
		flags: make(map[string]FlagOverride, len(flags)),
	}
	if d.args == nil {
		d.args = []string{}
	}

	for _, name := range slices.Sorted(maps.Keys(env)) {
		val := env[name]
		if name == "" {
			return nil, malformed("env", val, "environment variable name must not be empty")
		}
		c, ok := canonical(val)
		if !ok || c == nil {
			return nil, malformed("env."+name, val, "environment value must be a scalar or a flat list of scalars")
		}
		if _, err := Encode(c); err != nil {
			return nil, malformed("env."+name, val, "environment value must be a scalar or a flat list of scalars")
		}
		d.env[name] = c
	}

	for _, name := range slices.Sorted(maps.Keys(flags)) {
		o := flags[name]
		if valid, errs := o.IsValid(); !valid {
			return nil, underPath("flags."+name, errs[0])
		}
		if o.IsZero() {
			continue
		}
		if o.ArgSwitch != nil {
			o.ArgSwitch, _ = canonical(o.ArgSwitch)
		}
		d.flags[name] = o
	}

	return d, nil
}

// Args returns a copy of the argument template.
func (d *Definition) Args() []string {
	return slices.Clone(d.args)
}

// Env returns a copy of the environment template.
func (d *Definition) Env() map[string]any {
	env := make(map[string]any, len(d.env))
	for k, v := range d.env {
		env[k], _ = canonical(v)
	}
	return env
}

// Flags returns a copy of the non-empty flag overrides.
func (d *Definition) Flags() map[string]FlagOverride {
	flags := make(map[string]FlagOverride, len(d.flags))
	for k, o := range d.flags {
		flags[k] = o.clone()
	}
	return flags
}

// Flag returns the override recorded for a parameter. A missing entry
// reports the all-unset override and false.
func (d *Definition) Flag(name string) (FlagOverride, bool) {
	o, ok := d.flags[name]
	return o.clone(), ok
}

// HasFlagArgs reports whether the argument template contains FlagArgsMarker.
func (d *Definition) HasFlagArgs() bool {
	return countMarkers(d.args) > 0
}

func (o FlagOverride) clone() FlagOverride {
	if o.ArgSwitch != nil {
		o.ArgSwitch, _ = canonical(o.ArgSwitch)
	}
	return o
}

// underPath prefixes the location of a *MalformedConfigError.
func underPath(prefix string, err error) error {
	var mce *MalformedConfigError
	if !errors.As(err, &mce) {
		return err
	}
	path := prefix
	if mce.Path != "" {
		path += "." + mce.Path
	}
	return &MalformedConfigError{Path: path, Value: mce.Value, Reason: mce.Reason}
}

func countMarkers(args []string) int {
	n := 0
	for _, arg := range args {
		if arg == FlagArgsMarker {
			n++
		}
	}
	return n
}
