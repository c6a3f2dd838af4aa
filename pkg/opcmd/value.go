// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encode converts a value to the text used in arguments and environment variables.
//
// Strings pass through unchanged. Booleans encode as "true"/"false", integers in
// base 10, and floats in their shortest round-trip form with a decimal point or
// exponent always present ("1.0", "0.1", "1e-05"). A flat list of scalars encodes
// as "[a, b, c]". Absent (nil) values, maps, nested lists and any other Go kind
// fail with an *UnsupportedTypeError.
func Encode(v any) (string, error) {
	c, ok := canonical(v)
	if !ok {
		return "", &UnsupportedTypeError{Value: v}
	}
	switch x := c.(type) {
	case nil:
		return "", &UnsupportedTypeError{}
	case string:
		return x, nil
	case []any:
		return encodeList(v, x)
	case map[string]any:
		return "", &UnsupportedTypeError{Value: v}
	default:
		return encodeScalar(x), nil
	}
}

// Decode parses text produced by Encode (or typed by a user) back into a value.
//
// Booleans, integers, floats and bracketed flow lists are recognized using YAML 1.2
// scalar rules; "inf", "-inf" and "nan" decode as floats. Everything else,
// including text YAML would read as a map, null, or a comment, is returned as the
// original string. Decode never returns nil.
func Decode(s string) any {
	switch s {
	case "inf", "+inf":
		return math.Inf(1)
	case "-inf":
		return math.Inf(-1)
	case "nan":
		return math.NaN()
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	var raw any
	if err := yaml.Unmarshal([]byte(s), &raw); err != nil {
		return s
	}
	c, ok := canonical(raw)
	if !ok {
		return s
	}
	switch x := c.(type) {
	case bool, int64, float64:
		return x
	case []any:
		if !strings.HasPrefix(trimmed, "[") {
			return s
		}
		for _, item := range x {
			switch item.(type) {
			case nil, []any, map[string]any:
				return s
			}
		}
		return x
	default:
		return s
	}
}

// Equal reports whether two values are equal for switch comparison.
//
// Numbers compare by value across Go widths and between integers and floats,
// so int(1), int64(1) and 1.0 are all equal. Booleans never equal numbers.
// Lists compare element-wise.
func Equal(a, b any) bool {
	ca, ok := canonical(a)
	if !ok {
		return false
	}
	cb, ok := canonical(b)
	if !ok {
		return false
	}
	return equalCanonical(ca, cb)
}

// IsScalar reports whether v is a valid runtime flag value: nil (absent), a
// boolean, an integer, a float, or a string.
func IsScalar(v any) bool {
	c, ok := canonical(v)
	if !ok {
		return false
	}
	switch c.(type) {
	case nil, bool, int64, float64, string:
		return true
	default:
		return false
	}
}

func encodeScalar(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return encodeFloat(x)
	default:
		return ""
	}
}

func encodeFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	var s string
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func encodeList(orig any, items []any) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		switch x := item.(type) {
		case []any, map[string]any:
			return "", &UnsupportedTypeError{Value: orig}
		case nil:
			parts[i] = "null"
		case string:
			parts[i] = encodeListString(x)
		default:
			parts[i] = encodeScalar(x)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// encodeListString leaves a list element bare only when it would decode back to
// the same string inside a flow list.
func encodeListString(s string) string {
	if s == "" || s != strings.TrimSpace(s) || strings.ContainsAny(s, ",[]{}\"'#:&*!|>%@`\\\n\t") {
		return strconv.Quote(s)
	}
	if d, ok := Decode(s).(string); !ok || d != s {
		return strconv.Quote(s)
	}
	if s == "null" || s == "~" {
		return strconv.Quote(s)
	}
	return s
}

// canonical maps Go values onto the canonical set nil, bool, int64, float64,
// string, []any and map[string]any. It reports false for values outside it.
func canonical(v any) (any, bool) {
	switch x := v.(type) {
	case nil, bool, string, int64, float64:
		return x, true
	case int:
		return int64(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		if f, err := x.Float64(); err == nil {
			return f, true
		}
		return string(x), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, false
		}
		return int64(u), true
	case reflect.Float32:
		// Go through the shortest float32 text so 0.1 stays 0.1.
		f, err := strconv.ParseFloat(strconv.FormatFloat(rv.Float(), 'g', -1, 32), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	case reflect.Float64:
		return rv.Float(), true
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			c, ok := canonical(rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			out[i] = c
		}
		return out, true
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := canonical(iter.Key().Interface())
			if !ok {
				return nil, false
			}
			ks, ok := key.(string)
			if !ok {
				return nil, false
			}
			c, ok := canonical(iter.Value().Interface())
			if !ok {
				return nil, false
			}
			out[ks] = c
		}
		return out, true
	default:
		return nil, false
	}
}

func equalCanonical(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalCanonical(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equalCanonical(xv, yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
