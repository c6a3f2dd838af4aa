// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opcmd/opcmd/internal/testutil"
)

func TestParseFlagValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "typed values",
			args: []string{"n=3", "rate=0.5", "on=true", "name=resnet"},
			want: map[string]any{"n": int64(3), "rate": 0.5, "on": true, "name": "resnet"},
		},
		{
			name: "bare name is absent",
			args: []string{"epochs"},
			want: map[string]any{"epochs": nil},
		},
		{
			name: "empty value is an empty string",
			args: []string{"tag="},
			want: map[string]any{"tag": ""},
		},
		{
			name: "value may contain equals",
			args: []string{"expr=a=b"},
			want: map[string]any{"expr": "a=b"},
		},
		{
			name: "later argument wins",
			args: []string{"n=1", "n"},
			want: map[string]any{"n": nil},
		},
		{
			name:    "empty name",
			args:    []string{"=1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFlagValues(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlagValues() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidAssignment) {
					t.Errorf("error = %v, want ErrInvalidAssignment", err)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseFlagValues() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	got, err := parseParams([]string{"run_dir=/runs/1", "seed=007"})
	if err != nil {
		t.Fatalf("parseParams() unexpected error: %v", err)
	}
	// Parameters stay text so "007" is not read as 7.
	want := map[string]any{"run_dir": "/runs/1", "seed": "007"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseParams() mismatch (-want +got):\n%s", diff)
	}

	var assignErr *InvalidAssignmentError
	if _, err := parseParams([]string{"run_dir"}); !errors.As(err, &assignErr) {
		t.Fatalf("parseParams(bare name) error = %v, want *InvalidAssignmentError", err)
	}
	if assignErr.Option != "param" {
		t.Errorf("Option = %q, want %q", assignErr.Option, "param")
	}
}

func TestReadFlagsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	got, err := readFlagsFile(testutil.WriteFile(t, dir, "flags.yaml", "lr: 0.1\nepochs: null\n"))
	if err != nil {
		t.Fatalf("readFlagsFile() unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"lr": 0.1, "epochs": nil}, got); diff != "" {
		t.Errorf("readFlagsFile() mismatch (-want +got):\n%s", diff)
	}

	empty, err := readFlagsFile(testutil.WriteFile(t, dir, "empty.yaml", ""))
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("readFlagsFile(empty) = %v, %v; want empty map", empty, err)
	}

	if _, err := readFlagsFile(testutil.WriteFile(t, dir, "list.yaml", "- a\n")); err == nil {
		t.Error("readFlagsFile(list) should fail")
	}
}

func TestMergeValues(t *testing.T) {
	t.Parallel()

	base := map[string]any{"a": 1, "b": 2}
	got := mergeValues(base, map[string]any{"b": nil}, map[string]any{"c": 3})

	want := map[string]any{"a": 1, "b": nil, "c": 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mergeValues() mismatch (-want +got):\n%s", diff)
	}
	if base["b"] != 2 {
		t.Error("mergeValues() modified its base map")
	}
	if got := mergeValues(nil); got == nil {
		t.Error("mergeValues(nil) should return an empty map")
	}
}
