// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opcmd/opcmd/internal/render"
)

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <definition>...",
		Short: "Check that definitions load",
		Long: `Load each definition and report schema and structure errors.

Every definition is checked, so all problems are reported in a single run.
The command fails if any definition is invalid.

Examples:
  opcmd validate train.cue
  opcmd validate ops/*.yaml train`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, args)
		},
	}
}

func runValidate(cmd *cobra.Command, app *App, refs []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	s, err := app.newSession(cmd.Context(), stderr)
	if err != nil {
		return reportError(stderr, nil, err)
	}

	var failed []error
	for _, ref := range refs {
		_, path, err := loadDefinition(s, ref)
		if err != nil {
			fmt.Fprintf(stdout, "%s %s\n", render.ErrorStyle.Render("✗"), ref)
			if len(refs) > 1 {
				fmt.Fprintf(stderr, "  %s\n", err)
			}
			failed = append(failed, err)
			continue
		}
		fmt.Fprintf(stdout, "%s %s\n", render.SuccessStyle.Render("✓"), path)
	}

	switch len(failed) {
	case 0:
		return nil
	case 1:
		return reportError(stderr, s, failed[0])
	default:
		code := exitFailure
		for _, err := range failed {
			if _, c := classifyError(err); c > code {
				code = c
			}
		}
		return &ExitError{Code: code, Err: fmt.Errorf("%d of %d definitions are invalid", len(failed), len(refs))}
	}
}
