// SPDX-License-Identifier: MPL-2.0

package opcmd

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned when a value cannot be encoded as text.
	ErrUnsupportedType = errors.New("unsupported value type")
	// ErrUnresolvedReference is returned when a ${name} placeholder names an
	// unknown resolve parameter.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrMalformedConfig is returned when a definition record is structurally invalid.
	ErrMalformedConfig = errors.New("malformed command config")
	// ErrShadowedFlag identifies warnings for flags pre-empted by a literal template argument.
	ErrShadowedFlag = errors.New("flag shadowed by command argument")
)

type (
	// UnsupportedTypeError is returned when Encode is given a value it cannot represent.
	// It wraps ErrUnsupportedType for errors.Is() compatibility.
	UnsupportedTypeError struct {
		// Value is the offending value.
		Value any
		// Context names where the value came from (e.g. "flag lr"). Optional.
		Context string
	}

	// UnresolvedReferenceError is returned when a literal argument references
	// a resolve parameter that was not supplied.
	UnresolvedReferenceError struct {
		Name  string
		Token string
	}

	// MalformedConfigError is returned by FromRecord and NewDefinition for
	// structurally invalid input. Path is a dotted location such as
	// "flags.lr.arg-name".
	MalformedConfigError struct {
		Path   string
		Value  any
		Reason string
	}
)

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	var what string
	if e.Value == nil {
		what = "absent value cannot be encoded"
	} else {
		what = fmt.Sprintf("cannot encode %T value %v", e.Value, e.Value)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s: %s", e.Context, what)
	}
	return what
}

// Unwrap returns ErrUnsupportedType.
func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference ${%s} in %q", e.Name, e.Token)
}

// Unwrap returns ErrUnresolvedReference.
func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// Error implements the error interface.
func (e *MalformedConfigError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (got %T %v)", e.Value, e.Value)
	}
	return msg
}

// Unwrap returns ErrMalformedConfig.
func (e *MalformedConfigError) Unwrap() error {
	return ErrMalformedConfig
}

func malformed(path string, value any, format string, args ...any) error {
	return &MalformedConfigError{Path: path, Value: value, Reason: fmt.Sprintf(format, args...)}
}
