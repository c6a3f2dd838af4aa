// SPDX-License-Identifier: MPL-2.0

package deffile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	FormatCUE   Format = "cue"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
)

// ErrUnsupportedFormat is returned for an unknown file extension or format name.
var ErrUnsupportedFormat = errors.New("unsupported definition format")

// extensions is the lookup order used when searching for a definition by name.
var extensions = []string{".cue", ".yaml", ".yml", ".toml", ".json", ".jsonc"}

type (
	// Format identifies a definition file encoding.
	Format string

	UnsupportedFormatError struct {
		Value string
	}
)

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported definition format %q (valid: cue, yaml, toml, json, jsonc)", e.Value)
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

func (f Format) String() string { return string(f) }

// IsValid returns whether f is a known format.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatCUE, FormatYAML, FormatTOML, FormatJSON, FormatJSONC:
		return true, nil
	default:
		return false, []error{&UnsupportedFormatError{Value: string(f)}}
	}
}

// ParseFormat maps a format name to a Format. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if f == "yml" {
		f = FormatYAML
	}
	if valid, errs := f.IsValid(); !valid {
		return "", errs[0]
	}
	return f, nil
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", &UnsupportedFormatError{Value: path}
	}
	return ParseFormat(ext[1:])
}

// Extensions returns the recognized file extensions in search order.
func Extensions() []string {
	return append([]string(nil), extensions...)
}
