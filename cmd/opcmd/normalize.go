// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opcmd/opcmd/internal/render"
	"github.com/opcmd/opcmd/pkg/deffile"
)

type normalizeOptions struct {
	format string
	output string
}

func newNormalizeCommand(app *App) *cobra.Command {
	opts := &normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize <definition>",
		Short: "Print a definition in canonical form",
		Long: `Print a definition in canonical form.

Default-valued fields are dropped, keys are sorted and only the args, env and
flags fields are kept. The output format is taken from --format, then from the
--output file extension, then from the source file.

Examples:
  opcmd normalize train.yaml
  opcmd normalize train.json --format cue
  opcmd normalize train --output train.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, app, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: cue, yaml, toml, json or jsonc")
	cmd.Flags().StringVarP(&opts.output, "output", "O", "", "write to this file instead of stdout")
	return cmd
}

func runNormalize(cmd *cobra.Command, app *App, opts *normalizeOptions, ref string) error {
	stderr := cmd.ErrOrStderr()
	s, err := app.newSession(cmd.Context(), stderr)
	if err != nil {
		return reportError(stderr, nil, err)
	}

	def, path, err := loadDefinition(s, ref)
	if err != nil {
		return reportError(stderr, s, err)
	}

	var format deffile.Format
	switch {
	case opts.format != "":
		format, err = deffile.ParseFormat(opts.format)
	case opts.output != "":
		format, err = deffile.FormatOf(opts.output)
	default:
		format, err = deffile.FormatOf(path)
	}
	if err != nil {
		return reportError(stderr, s, err)
	}

	data, err := deffile.Marshal(def, format)
	if err != nil {
		return reportError(stderr, s, actionable(err, "encode definition", path))
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return reportError(stderr, s, actionable(err, "write definition", opts.output))
	}
	s.logger.Info("definition written", "path", opts.output, "format", format)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", render.SuccessStyle.Render("✓"), opts.output)
	return nil
}
