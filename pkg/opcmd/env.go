// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"strings"
)

// FlagEnvPrefix prefixes the default environment variable name of every flag.
const FlagEnvPrefix = "FLAG_"

// BuildEnv merges the environment template with flag-derived variables.
//
// Template strings pass through unchanged and other template values are encoded.
// Each present flag value is then written under its override EnvName, or
// DefaultEnvName otherwise, replacing any template entry of the same name.
// Absent flag values neither add nor remove entries.
func BuildEnv(envTemplate map[string]any, flagValues map[string]any, overrides map[string]FlagOverride) (map[string]string, error) {
	env := make(map[string]string, len(envTemplate)+len(flagValues))
	for name, val := range envTemplate {
		s, err := Encode(val)
		if err != nil {
			return nil, withContext(err, "env "+name)
		}
		env[name] = s
	}

	for name, val := range flagValues {
		if val == nil {
			continue
		}
		s, err := Encode(val)
		if err != nil {
			return nil, withContext(err, "flag "+name)
		}
		env[flagEnvName(name, overrides[name])] = s
	}
	return env, nil
}

// DefaultEnvName derives FLAG_<NAME> from a parameter name: upper-cased, with
// every character outside [A-Z0-9] replaced by an underscore.
func DefaultEnvName(flagName string) string {
	var b strings.Builder
	b.Grow(len(FlagEnvPrefix) + len(flagName))
	b.WriteString(FlagEnvPrefix)
	for _, r := range strings.ToUpper(flagName) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func flagEnvName(name string, o FlagOverride) string {
	if o.EnvName != "" {
		return o.EnvName
	}
	return DefaultEnvName(name)
}
