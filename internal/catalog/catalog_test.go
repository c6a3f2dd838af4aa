// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opcmd/opcmd/internal/testutil"
)

func TestSearchPath_Immutable(t *testing.T) {
	t.Parallel()

	base := New("/a", "", "/b")
	if diff := cmp.Diff([]string{"/a", "/b"}, base.Dirs()); diff != "" {
		t.Fatalf("New() dirs mismatch (-want +got):\n%s", diff)
	}

	pre := base.Prepend("/x", " ")
	app := base.Append("/z")

	if diff := cmp.Diff([]string{"/a", "/b"}, base.Dirs()); diff != "" {
		t.Errorf("receiver changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/x", "/a", "/b"}, pre.Dirs()); diff != "" {
		t.Errorf("Prepend() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/a", "/b", "/z"}, app.Dirs()); diff != "" {
		t.Errorf("Append() mismatch (-want +got):\n%s", diff)
	}

	dirs := base.Dirs()
	dirs[0] = "/mutated"
	if base.Dirs()[0] != "/a" {
		t.Error("Dirs() should return a copy")
	}
}

func TestSearchPath_Find(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	testutil.WriteFile(t, first, "train.yaml", "args: [a]\n")
	testutil.WriteFile(t, second, "train.cue", `args: ["b"]`)
	testutil.WriteFile(t, second, "eval.json", `{}`)
	testutil.WriteFile(t, first, "serve.toml", "")
	testutil.WriteFile(t, first, "serve.cue", "")

	p := New(first, second)

	tests := []struct {
		name string
		want string
	}{
		{"train", filepath.Join(first, "train.yaml")},
		{"eval", filepath.Join(second, "eval.json")},
		{"serve", filepath.Join(first, "serve.cue")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.Find(tt.name)
			if err != nil {
				t.Fatalf("Find(%q) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestSearchPath_FindNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "train.txt", "")
	testutil.WriteFile(t, dir, "train.cue/readme", "directories are not definitions")

	_, err := New(dir).Find("train")
	if !errors.Is(err, ErrDefinitionNotFound) {
		t.Fatalf("Find() error = %v, want ErrDefinitionNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "train" || len(nf.Dirs) != 1 {
		t.Errorf("Find() error = %#v", err)
	}
	if !strings.Contains(err.Error(), dir) {
		t.Errorf("error %q does not list %s", err.Error(), dir)
	}

	_, err = New().Find("train")
	if err == nil || !strings.Contains(err.Error(), "search path is empty") {
		t.Errorf("Find() on empty path error = %v", err)
	}
}

func TestSearchPath_FindInvalidName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "a/b", `a\b`, "..", ".", "con", "NUL", "com1.backup", "lpt9 "} {
		if _, err := New(t.TempDir()).Find(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Find(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"train", "console", "com10", "nul-test", "v1.2"} {
		if err := validateName(name); err != nil {
			t.Errorf("validateName(%q) unexpected error: %v", name, err)
		}
	}
}

func TestSearchPath_Resolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	direct := testutil.WriteFile(t, dir, "local/train.yaml", "")
	named := testutil.WriteFile(t, dir, "ops/eval.cue", "")
	p := New(filepath.Join(dir, "ops"))

	if got, err := p.Resolve(direct); err != nil || got != direct {
		t.Errorf("Resolve(path) = %q, %v; want %q", got, err, direct)
	}
	if got, err := p.Resolve("eval"); err != nil || got != named {
		t.Errorf("Resolve(name) = %q, %v; want %q", got, err, named)
	}
	if _, err := p.Resolve(filepath.Join(dir, "missing.yaml")); err == nil || errors.Is(err, ErrDefinitionNotFound) {
		t.Errorf("Resolve(missing path) error = %v, want a file error", err)
	}
}

func TestSearchPath_List(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	testutil.WriteFile(t, first, "train.yaml", "")
	testutil.WriteFile(t, first, "train.json", "")
	testutil.WriteFile(t, first, "notes.md", "")
	testutil.WriteFile(t, second, "train.cue", "")
	testutil.WriteFile(t, second, "eval.toml", "")

	entries, diags := New(first, filepath.Join(first, "missing"), second).List()

	want := []Entry{
		{Name: "eval", Path: filepath.Join(second, "eval.toml"), Dir: second},
		{Name: "train", Path: filepath.Join(first, "train.yaml"), Dir: first},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("List() entries mismatch (-want +got):\n%s", diff)
	}

	shadowed := map[string]bool{}
	for _, d := range diags {
		if d.Code != CodeShadowed {
			t.Errorf("unexpected diagnostic %+v", d)
		}
		shadowed[d.Path] = true
	}
	for _, path := range []string{filepath.Join(first, "train.json"), filepath.Join(second, "train.cue")} {
		if !shadowed[path] {
			t.Errorf("missing shadow diagnostic for %s", path)
		}
	}
}
