// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"
)

type (
	// Result is the compiled command: the argument vector and environment to
	// hand to a process launcher, plus any non-fatal warnings.
	Result struct {
		Args     []string
		Env      map[string]string
		Warnings []Warning
	}

	// Option configures a Generate call.
	Option func(*generateOptions)

	generateOptions struct {
		logger *log.Logger
	}
)

// WithLogger logs each warning at warn level as it is raised.
func WithLogger(logger *log.Logger) Option {
	return func(o *generateOptions) {
		o.logger = logger
	}
}

// Generate compiles a definition against runtime flag values and resolve parameters.
//
// Literal template tokens have their ${name} references resolved against the
// encoded resolveParams. The FlagArgsMarker token is replaced by ExpandArgs output,
// shadow-checked against the tokens before it. The environment comes from BuildEnv.
// Any error aborts the whole call and no partial result is returned.
func Generate(def *Definition, flagValues, resolveParams map[string]any, opts ...Option) (*Result, error) {
	var options generateOptions
	for _, opt := range opts {
		opt(&options)
	}

	for _, name := range slices.Sorted(maps.Keys(flagValues)) {
		if !IsScalar(flagValues[name]) {
			return nil, &UnsupportedTypeError{Value: flagValues[name], Context: "flag " + name}
		}
	}

	params, err := EncodeParams(resolveParams)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, len(def.args)+2*len(flagValues))
	var warnings []Warning
	for _, token := range def.args {
		if token == FlagArgsMarker {
			flagArgs, flagWarnings, err := ExpandArgs(flagValues, def.flags, args)
			if err != nil {
				return nil, err
			}
			for _, w := range flagWarnings {
				if options.logger != nil {
					options.logger.Warn("ignoring flag shadowed in operation cmd",
						"flag", w.Flag, "value", w.Value, "arg", w.Arg)
				}
			}
			warnings = append(warnings, flagWarnings...)
			args = append(args, flagArgs...)
			continue
		}
		resolved, err := ResolveRefs(token, params)
		if err != nil {
			return nil, err
		}
		args = append(args, resolved)
	}

	env, err := BuildEnv(def.env, flagValues, def.flags)
	if err != nil {
		return nil, err
	}

	return &Result{Args: args, Env: env, Warnings: warnings}, nil
}
