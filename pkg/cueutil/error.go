// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrInvalid is the sentinel matched by every ValidationError.
var ErrInvalid = errors.New("invalid document")

type (
	// Violation is a single constraint failure at a JSON-style path.
	Violation struct {
		Path    string
		Message string
	}

	// ValidationError lists the constraint failures found in one source.
	ValidationError struct {
		FilePath   string
		Violations []Violation
	}
)

// Error implements the error interface.
//
//	train.cue: flags.lr.arg-skip: conflicting values "yes" and bool
func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Path != "" {
			lines = append(lines, v.Path+": "+v.Message)
		} else {
			lines = append(lines, v.Message)
		}
	}
	switch len(lines) {
	case 0:
		return e.FilePath + ": " + ErrInvalid.Error()
	case 1:
		return e.FilePath + ": " + lines[0]
	default:
		return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
	}
}

// Unwrap returns ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// FormatError converts a CUE error into a *ValidationError whose violations
// carry JSON-style paths such as flags.lr.arg-name or args[2]. Errors that did
// not originate in CUE are wrapped with the file path only.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	// cueerrors.Errors promotes any error into a one-element list.
	var ce cueerrors.Error
	if !errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	list := cueerrors.Errors(err)

	verr := &ValidationError{FilePath: filePath}
	seen := make(map[Violation]bool, len(list))
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		v := Violation{Path: path, Message: msg}
		if seen[v] {
			continue
		}
		seen[v] = true
		verr.Violations = append(verr.Violations, v)
	}
	return verr
}

// formatPath turns CUE's flat selector list (["args", "2"]) into args[2].
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strings.Trim(part, `"`))
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize reports an error when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
