// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opcmd/opcmd/pkg/deffile"
)

const (
	// SeverityWarning indicates a skipped directory or file.
	SeverityWarning Severity = "warning"

	// CodeDirUnreadable is reported for a search directory that exists but
	// cannot be listed.
	CodeDirUnreadable = "search_dir_unreadable"
	// CodeShadowed is reported for a definition hidden by an earlier one with
	// the same name.
	CodeShadowed = "definition_shadowed"
)

var (
	// ErrDefinitionNotFound is the sentinel wrapped by NotFoundError.
	ErrDefinitionNotFound = errors.New("definition not found")
	// ErrInvalidName is returned for empty names or names containing a path separator.
	ErrInvalidName = errors.New("invalid definition name")
)

type (
	// SearchPath is an ordered, immutable list of directories.
	SearchPath struct {
		dirs []string
	}

	// Entry is a definition visible through a SearchPath.
	Entry struct {
		Name string
		Path string
		// Dir is the search directory the definition was found in.
		Dir string
	}

	Severity string

	// Diagnostic is a non-fatal problem found while listing definitions.
	Diagnostic struct {
		Severity Severity
		Code     string
		Message  string
		Path     string
		Cause    error
	}

	// NotFoundError lists the directories searched for Name.
	NotFoundError struct {
		Name string
		Dirs []string
	}
)

func (e *NotFoundError) Error() string {
	if len(e.Dirs) == 0 {
		return fmt.Sprintf("definition %q not found: search path is empty", e.Name)
	}
	return fmt.Sprintf("definition %q not found in %s", e.Name, strings.Join(e.Dirs, string(os.PathListSeparator)))
}

func (e *NotFoundError) Unwrap() error { return ErrDefinitionNotFound }

// New returns a SearchPath over dirs. Empty entries are dropped.
func New(dirs ...string) SearchPath {
	return SearchPath{dirs: compact(nil, dirs)}
}

// Prepend returns a SearchPath with dirs searched before p's directories.
func (p SearchPath) Prepend(dirs ...string) SearchPath {
	return SearchPath{dirs: compact(compact(nil, dirs), p.dirs)}
}

// Append returns a SearchPath with dirs searched after p's directories.
func (p SearchPath) Append(dirs ...string) SearchPath {
	return SearchPath{dirs: compact(slices.Clone(p.dirs), dirs)}
}

// Dirs returns a copy of the directories in search order.
func (p SearchPath) Dirs() []string {
	return slices.Clone(p.dirs)
}

// Find returns the path of the first definition file named name.
func (p SearchPath) Find(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	for _, dir := range p.dirs {
		for _, ext := range deffile.Extensions() {
			path := filepath.Join(dir, name+ext)
			if isFile(path) {
				return path, nil
			}
		}
	}
	return "", &NotFoundError{Name: name, Dirs: p.Dirs()}
}

// Resolve treats ref as a file path when such a file exists, and as a name
// to Find otherwise.
func (p SearchPath) Resolve(ref string) (string, error) {
	if isFile(ref) {
		return ref, nil
	}
	if strings.ContainsAny(ref, `/\`) {
		return "", fmt.Errorf("definition file %s: %w", ref, fs.ErrNotExist)
	}
	return p.Find(ref)
}

// List returns every definition visible through p, sorted by name. A name
// found in several places resolves as Find would; the others are reported as
// diagnostics. Missing directories are skipped silently.
func (p SearchPath) List() ([]Entry, []Diagnostic) {
	var (
		entries []Entry
		diags   []Diagnostic
		seen    = make(map[string]Entry)
	)
	for _, dir := range p.dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Code:     CodeDirUnreadable,
					Message:  "cannot list search directory",
					Path:     dir,
					Cause:    err,
				})
			}
			continue
		}
		for _, ext := range deffile.Extensions() {
			for _, f := range files {
				if f.IsDir() || filepath.Ext(f.Name()) != ext {
					continue
				}
				name := strings.TrimSuffix(f.Name(), ext)
				path := filepath.Join(dir, f.Name())
				if first, ok := seen[name]; ok {
					diags = append(diags, Diagnostic{
						Severity: SeverityWarning,
						Code:     CodeShadowed,
						Message:  fmt.Sprintf("%q is shadowed by %s", name, first.Path),
						Path:     path,
					})
					continue
				}
				e := Entry{Name: name, Path: path, Dir: dir}
				seen[name] = e
				entries = append(entries, e)
			}
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries, diags
}

func compact(dst, dirs []string) []string {
	for _, d := range dirs {
		if strings.TrimSpace(d) != "" {
			dst = append(dst, d)
		}
	}
	return dst
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
