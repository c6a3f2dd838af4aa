// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"errors"
	"regexp"
	"strings"
)

// refPattern matches ${name} references and their $${name} escapes.
var refPattern = regexp.MustCompile(`\$?\$\{([A-Za-z0-9_.-]+)\}`)

// ResolveRefs replaces every ${name} placeholder in token with params[name].
// A token without placeholders is returned unchanged, and $${name} yields the
// literal text ${name}. A placeholder naming a missing parameter fails with an
// *UnresolvedReferenceError.
func ResolveRefs(token string, params map[string]string) (string, error) {
	if !strings.Contains(token, "${") {
		return token, nil
	}

	var err error
	resolved := refPattern.ReplaceAllStringFunc(token, func(ref string) string {
		if err != nil {
			return ref
		}
		if strings.HasPrefix(ref, "$$") {
			return ref[1:]
		}
		name := ref[2 : len(ref)-1]
		val, ok := params[name]
		if !ok {
			err = &UnresolvedReferenceError{Name: name, Token: token}
			return ref
		}
		return val
	})
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// EncodeParams encodes every supplied resolve parameter with Encode.
// Absent (nil) parameters are left out, so referencing them fails resolution.
func EncodeParams(params map[string]any) (map[string]string, error) {
	encoded := make(map[string]string, len(params))
	for name, val := range params {
		if val == nil {
			continue
		}
		s, err := Encode(val)
		if err != nil {
			return nil, withContext(err, "resolve parameter "+name)
		}
		encoded[name] = s
	}
	return encoded, nil
}

// withContext attaches a location to an *UnsupportedTypeError.
func withContext(err error, context string) error {
	var ute *UnsupportedTypeError
	if errors.As(err, &ute) && ute.Context == "" {
		return &UnsupportedTypeError{Value: ute.Value, Context: context}
	}
	return err
}
