// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"fmt"
	"maps"
	"slices"
)

// absentText is how an absent value is shown in warnings.
const absentText = "<absent>"

type (
	// WarningKind classifies a non-fatal generation condition.
	WarningKind string

	// Warning is a non-fatal condition raised while expanding flags. It implements
	// error so callers can match it with errors.Is(w, ErrShadowedFlag).
	Warning struct {
		Kind WarningKind
		// Flag is the parameter name.
		Flag string
		// Value is the encoded flag value, or "<absent>".
		Value string
		// Arg is the literal argument that pre-empted the flag (e.g. "--timeout").
		Arg string
	}
)

// WarningShadowedFlag marks a flag dropped because the template already carries its argument.
const WarningShadowedFlag WarningKind = "shadowed-flag"

// Error implements the error interface.
func (w Warning) Error() string {
	return fmt.Sprintf("ignoring flag '%s=%s' because it's shadowed in the operation cmd as %s", w.Flag, w.Value, w.Arg)
}

// Unwrap returns the sentinel matching the warning kind.
func (w Warning) Unwrap() error {
	if w.Kind == WarningShadowedFlag {
		return ErrShadowedFlag
	}
	return nil
}

// ExpandArgs converts flag values into argument tokens, visiting parameters in
// lexicographic order of name. preceding holds the argument tokens already
// produced before the insertion point; a flag whose --name appears there is
// dropped with a ShadowedFlag warning.
func ExpandArgs(flagValues map[string]any, overrides map[string]FlagOverride, preceding []string) ([]string, []Warning, error) {
	var (
		args     []string
		warnings []Warning
	)
	for _, name := range slices.Sorted(maps.Keys(flagValues)) {
		val := flagValues[name]
		contribution, warning, err := argsForFlag(name, val, overrides[name], preceding)
		if err != nil {
			return nil, nil, err
		}
		if warning != nil {
			warnings = append(warnings, *warning)
		}
		args = append(args, contribution...)
	}
	return args, warnings, nil
}

func argsForFlag(name string, val any, o FlagOverride, preceding []string) ([]string, *Warning, error) {
	if o.ArgSkip {
		return nil, nil, nil
	}
	argName := o.ArgName
	if argName == "" {
		argName = name
	}
	arg := "--" + argName

	if slices.Contains(preceding, arg) {
		shown := absentText
		if val != nil {
			s, err := Encode(val)
			if err != nil {
				return nil, nil, withContext(err, "flag "+name)
			}
			shown = s
		}
		return nil, &Warning{Kind: WarningShadowedFlag, Flag: name, Value: shown, Arg: arg}, nil
	}

	switch {
	case o.ArgSwitch != nil:
		if Equal(val, o.ArgSwitch) {
			return []string{arg}, nil, nil
		}
		return nil, nil, nil
	case val != nil:
		s, err := Encode(val)
		if err != nil {
			return nil, nil, withContext(err, "flag "+name)
		}
		return []string{arg, s}, nil, nil
	default:
		return nil, nil, nil
	}
}
