// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/opcmd/opcmd/pkg/opcmd"
)

// ErrInvalidAssignment is returned for a malformed name=value argument.
var ErrInvalidAssignment = errors.New("invalid assignment")

// InvalidAssignmentError names the option and the argument that failed to parse.
type InvalidAssignmentError struct {
	Option string
	Arg    string
	Reason string
}

func (e *InvalidAssignmentError) Error() string {
	return fmt.Sprintf("--%s %q: %s", e.Option, e.Arg, e.Reason)
}

func (e *InvalidAssignmentError) Unwrap() error { return ErrInvalidAssignment }

// splitAssignment splits "name=value". ok is false when there is no '='.
func splitAssignment(option, arg string) (name, value string, ok bool, err error) {
	name, value, ok = strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", false, &InvalidAssignmentError{Option: option, Arg: arg, Reason: "empty name"}
	}
	return name, value, ok, nil
}

// parseFlagValues reads --flag arguments. Values are decoded into typed
// scalars; a bare name marks the flag absent. Later arguments win.
func parseFlagValues(args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		name, value, ok, err := splitAssignment("flag", arg)
		if err != nil {
			return nil, err
		}
		if !ok {
			values[name] = nil
			continue
		}
		values[name] = opcmd.Decode(value)
	}
	return values, nil
}

// parseParams reads --param arguments. Values are kept as text.
func parseParams(args []string) (map[string]any, error) {
	params := make(map[string]any, len(args))
	for _, arg := range args {
		name, value, ok, err := splitAssignment("param", arg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &InvalidAssignmentError{Option: "param", Arg: arg, Reason: "expected name=value"}
		}
		params[name] = value
	}
	return params, nil
}

// readFlagsFile reads a YAML mapping of flag values. Null entries mark
// flags absent.
func readFlagsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// readParamsFiles reads dotenv files in order; later files win.
func readParamsFiles(paths []string) (map[string]any, error) {
	params := make(map[string]any)
	for _, path := range paths {
		env, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for k, v := range env {
			params[k] = v
		}
	}
	return params, nil
}

// mergeValues returns a map holding base overlaid with each of overlays.
func mergeValues(base map[string]any, overlays ...map[string]any) map[string]any {
	merged := maps.Clone(base)
	if merged == nil {
		merged = make(map[string]any)
	}
	for _, o := range overlays {
		maps.Copy(merged, o)
	}
	return merged
}
