// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"args"}, "args"},
		{[]string{"args", "2"}, "args[2]"},
		{[]string{"flags", "lr", `"arg-name"`}, "flags.lr.arg-name"},
		{[]string{"env", "LIST", "0", "x"}, "env.LIST[0].x"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	single := &ValidationError{
		FilePath:   "a.cue",
		Violations: []Violation{{Path: "args[0]", Message: "expected string"}},
	}
	if got, want := single.Error(), "a.cue: args[0]: expected string"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	multi := &ValidationError{
		FilePath: "a.cue",
		Violations: []Violation{
			{Path: "args[0]", Message: "expected string"},
			{Message: "incomplete value"},
		},
	}
	got := multi.Error()
	if !strings.HasPrefix(got, "a.cue: validation failed:") || !strings.Contains(got, "\n  incomplete value") {
		t.Errorf("Error() = %q, want multi-line listing", got)
	}
	if !errors.Is(multi, ErrInvalid) {
		t.Error("ValidationError should match ErrInvalid")
	}
}

func TestFormatError_NonCUE(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	err := FormatError(base, "a.cue")
	if !errors.Is(err, base) {
		t.Errorf("FormatError() = %v, want it to wrap the original error", err)
	}

	perm := FormatError(fs.ErrPermission, "a.cue")
	if !errors.Is(perm, fs.ErrPermission) {
		t.Errorf("FormatError() = %v, want fs.ErrPermission", perm)
	}
	if errors.Is(perm, ErrInvalid) {
		t.Errorf("FormatError() = %v, must not match ErrInvalid", perm)
	}
	if !strings.HasPrefix(perm.Error(), "a.cue: ") {
		t.Errorf("FormatError() = %q, want file path prefix", perm.Error())
	}
	if FormatError(nil, "a.cue") != nil {
		t.Error("FormatError(nil) should be nil")
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("CheckFileSize() at limit = %v, want nil", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("CheckFileSize() over limit = nil, want error")
	}
}
