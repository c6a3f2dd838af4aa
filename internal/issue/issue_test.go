// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	if FileNotFoundId != 1 {
		t.Errorf("FileNotFoundId = %d, want 1", FileNotFoundId)
	}
	for id := FileNotFoundId; id <= PermissionDeniedId; id++ {
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}
	if got := len(Values()); got != int(PermissionDeniedId) {
		t.Errorf("len(Values()) = %d, want %d", got, PermissionDeniedId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   Id
		want string
	}{
		{DefinitionNotFoundId, "No operation definition found"},
		{DefinitionInvalidId, "__flag_args__"},
		{UnresolvedReferenceId, "--param name=value"},
		{InvalidFlagArgumentId, "--flag name=value"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if msg := Get(tt.id).MarkdownMsg(); !strings.Contains(string(msg), tt.want) {
				t.Errorf("MarkdownMsg() does not contain %q", tt.want)
			}
		})
	}
}

func TestIssue_DocLinksAreCopied(t *testing.T) {
	t.Parallel()

	i := &Issue{id: 99, docLinks: []HttpLink{"https://example.com/a"}}
	links := i.DocLinks()
	links[0] = "changed"
	if i.DocLinks()[0] != "https://example.com/a" {
		t.Error("DocLinks() should return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(UnresolvedReferenceId).Render("notty")
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !strings.Contains(out, "Unresolved reference") {
		t.Errorf("Render() output missing title:\n%s", out)
	}
}

func TestIssue_RenderDocLinks(t *testing.T) {
	t.Parallel()

	i := &Issue{id: 99, mdMsg: "# Title", docLinks: []HttpLink{"https://example.com/help"}}
	out, err := i.Render("notty")
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !strings.Contains(out, "See also") || !strings.Contains(out, "example.com/help") {
		t.Errorf("Render() output missing links:\n%s", out)
	}
}

func TestIssue_RenderUnknownStyle(t *testing.T) {
	t.Parallel()

	if _, err := Get(FileNotFoundId).Render("/no/such/style.json"); err == nil {
		t.Error("Render() with a missing style file should fail")
	}
}
