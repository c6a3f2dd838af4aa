// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opcmd/opcmd/internal/catalog"
	"github.com/opcmd/opcmd/internal/render"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List definitions in the search path",
		Long: `List the definitions visible through the search path.

Directories from --search-path are searched first, followed by the
search_path entries of the config file. When a name is defined more than once
the first match is listed and the others are reported as shadowed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app)
		},
	}
}

func runList(cmd *cobra.Command, app *App) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	s, err := app.newSession(cmd.Context(), stderr)
	if err != nil {
		return reportError(stderr, nil, err)
	}

	entries, diags := s.catalog.List()
	for _, d := range diags {
		logDiagnostic(s, d)
	}

	dirs := s.catalog.Dirs()
	if len(dirs) == 0 {
		fmt.Fprintln(stdout, render.SubtitleStyle.Render("No search path configured. Use --search-path or set search_path in the config file."))
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintf(stdout, "%s %s\n", render.SubtitleStyle.Render("No definitions found in"), strings.Join(dirs, ", "))
		return nil
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	fmt.Fprintln(stdout, render.TitleStyle.Render("Definitions"))
	for _, e := range entries {
		pad := strings.Repeat(" ", width-len(e.Name))
		fmt.Fprintf(stdout, "  %s%s  %s\n", render.CmdStyle.Render(e.Name), pad, render.SubtitleStyle.Render(e.Path))
	}
	return nil
}

func logDiagnostic(s *session, d catalog.Diagnostic) {
	kv := []any{"code", d.Code, "path", d.Path}
	if d.Cause != nil {
		kv = append(kv, "err", d.Cause)
	}
	s.logger.Warn(d.Message, kv...)
}
