// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	rec := map[string]any{
		"args": []any{"train", "__flag_args__"},
		"env":  map[string]any{"N": int64(2), "RATE": 0.5},
		"flags": map[string]any{
			"lr": map[string]any{"arg-name": "learning-rate", "arg-skip": true},
		},
	}

	out, err := Format(rec)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	text := string(out)
	for _, want := range []string{"args:", `"__flag_args__"`, `"arg-name": "learning-rate"`} {
		if !strings.Contains(text, want) {
			t.Errorf("Format() output does not contain %q:\n%s", want, text)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		t.Errorf("Format() should emit top-level fields, got:\n%s", text)
	}

	back, err := Parse([]byte(testSchema), out, "#Job")
	if err != nil {
		t.Fatalf("Parse(Format()) unexpected error: %v", err)
	}
	if diff := cmp.Diff(rec, back); diff != "" {
		t.Errorf("Parse(Format()) mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	out, err := Format(nil)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	if strings.TrimSpace(string(out)) != "" {
		t.Errorf("Format(nil) = %q, want empty source", out)
	}
}
