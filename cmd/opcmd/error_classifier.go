// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/opcmd/opcmd/internal/catalog"
	"github.com/opcmd/opcmd/internal/issue"
	"github.com/opcmd/opcmd/pkg/deffile"
	"github.com/opcmd/opcmd/pkg/opcmd"
)

// classifyError maps a failure to an issue catalog ID and exit code.
func classifyError(err error) (issue.Id, int) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue, exitCodeFor(ae.Issue)
	}

	var id issue.Id
	switch {
	case errors.Is(err, catalog.ErrDefinitionNotFound), errors.Is(err, catalog.ErrInvalidName):
		id = issue.DefinitionNotFoundId
	case errors.Is(err, opcmd.ErrMalformedConfig), errors.Is(err, deffile.ErrUnsupportedFormat):
		id = issue.DefinitionInvalidId
	case errors.Is(err, opcmd.ErrUnresolvedReference):
		id = issue.UnresolvedReferenceId
	case errors.Is(err, opcmd.ErrUnsupportedType):
		id = issue.UnsupportedValueId
	case errors.Is(err, ErrInvalidAssignment):
		id = issue.InvalidFlagArgumentId
	case errors.Is(err, fs.ErrPermission):
		id = issue.PermissionDeniedId
	case errors.Is(err, fs.ErrNotExist):
		id = issue.FileNotFoundId
	}
	return id, exitCodeFor(id)
}

func exitCodeFor(id issue.Id) int {
	switch id {
	case issue.DefinitionInvalidId, issue.UnresolvedReferenceId, issue.UnsupportedValueId:
		return exitInvalidDefinition
	default:
		return exitFailure
	}
}

// actionable wraps err for operation unless it already carries user context.
func actionable(err error, operation, resource string) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}
	id, _ := classifyError(err)
	ctx := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithIssue(id).
		Wrap(err)
	switch id {
	case issue.DefinitionNotFoundId:
		ctx.WithSuggestion("Run 'opcmd list' to see the definitions in the search path")
	case issue.DefinitionInvalidId:
		ctx.WithSuggestion("Run 'opcmd validate " + resource + "' to check the definition")
	case issue.UnresolvedReferenceId:
		ctx.WithSuggestion("Pass the missing value with --param name=value")
	case issue.InvalidFlagArgumentId:
		ctx.WithSuggestion("Write flags as --flag name=value, or --flag name to mark it absent")
	}
	return ctx.BuildError()
}

// reportError prints the parts of err the error handler does not show:
// suggestions, and in verbose mode the error chain and the issue help page.
// It returns err as an *ExitError carrying the classified exit code.
func reportError(w io.Writer, s *session, err error) error {
	if err == nil {
		return nil
	}
	id, code := classifyError(err)
	verbose := s != nil && s.verbose

	if extra := strings.TrimPrefix(formatErrorForDisplay(err, verbose), err.Error()); strings.TrimSpace(extra) != "" {
		fmt.Fprintln(w, strings.TrimLeft(extra, "\n"))
	}
	if verbose && id != 0 {
		if rendered, rerr := issue.Get(id).Render(s.issueStyle()); rerr == nil {
			fmt.Fprint(w, rendered)
		}
	}
	return &ExitError{Code: code, Err: err}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
