// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opcmd/opcmd/internal/config"
	"github.com/opcmd/opcmd/internal/render"
	"github.com/opcmd/opcmd/pkg/deffile"
	"github.com/opcmd/opcmd/pkg/opcmd"
)

// generateOptions holds the flags of 'opcmd generate'.
type generateOptions struct {
	flags       []string
	flagsFile   string
	params      []string
	paramsFiles []string
	format      string
}

func newGenerateCommand(app *App) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <definition>",
		Short: "Generate the command line and environment for an operation",
		Long: `Generate the argument vector and environment for an operation.

<definition> is a definition file path, or a name searched for in each
search path directory as <name>.cue, .yaml, .yml, .toml, .json and .jsonc.

Flag values are given with --flag name=value. The value is typed: true, 3 and
0.5 become a boolean, an integer and a float; anything else stays a string.
--flag name without a value marks the flag absent. Values from --flags-file
are applied first and --flag arguments override them.

Arguments may reference resolve parameters as ${name}. Parameters come from
--params-file dotenv files and --param name=value, in that order.

Output formats:
  text     styled listing (default)
  json     {"args": [...], "env": {...}, "warnings": [...]}
  shell    a single quoted 'env K=V ... args' command line
  dotenv   the environment only, as KEY=value lines
  args     one argument per line

Examples:
  opcmd generate train.cue --flag lr=0.01 --flag debug=true
  opcmd generate train --flags-file flags.yaml --param run_dir=/runs/1 --format shell`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&opts.flags, "flag", nil, "flag value as name=value, or name to mark it absent (repeatable)")
	f.StringVar(&opts.flagsFile, "flags-file", "", "YAML file mapping flag names to values")
	f.StringArrayVar(&opts.params, "param", nil, "resolve parameter as name=value (repeatable)")
	f.StringArrayVar(&opts.paramsFiles, "params-file", nil, "dotenv file with resolve parameters (repeatable)")
	f.StringVarP(&opts.format, "format", "f", "", "output format: text, json, shell, dotenv or args (default from config)")
	return cmd
}

func runGenerate(cmd *cobra.Command, app *App, opts *generateOptions, ref string) error {
	stderr := cmd.ErrOrStderr()
	s, err := app.newSession(cmd.Context(), stderr)
	if err != nil {
		return reportError(stderr, nil, err)
	}

	format := s.cfg.OutputFormat
	if opts.format != "" {
		format = config.OutputFormat(opts.format)
	}
	if valid, errs := format.IsValid(); !valid {
		return reportError(stderr, s, errs[0])
	}

	values, params, err := opts.inputs()
	if err != nil {
		return reportError(stderr, s, actionable(err, "read flag values", ""))
	}

	def, path, err := loadDefinition(s, ref)
	if err != nil {
		return reportError(stderr, s, err)
	}

	s.logger.Debug("generating", "definition", path, "flags", len(values), "params", len(params))
	res, err := opcmd.Generate(def, values, params, opcmd.WithLogger(s.logger))
	if err != nil {
		return reportError(stderr, s, actionable(err, "generate command", path))
	}

	if err := render.Render(cmd.OutOrStdout(), res, format); err != nil {
		return reportError(stderr, s, actionable(err, "render command", ""))
	}
	return nil
}

// inputs collects flag values and resolve parameters from files and arguments.
func (o *generateOptions) inputs() (values, params map[string]any, err error) {
	var fileValues map[string]any
	if o.flagsFile != "" {
		if fileValues, err = readFlagsFile(o.flagsFile); err != nil {
			return nil, nil, err
		}
	}
	argValues, err := parseFlagValues(o.flags)
	if err != nil {
		return nil, nil, err
	}

	fileParams, err := readParamsFiles(o.paramsFiles)
	if err != nil {
		return nil, nil, err
	}
	argParams, err := parseParams(o.params)
	if err != nil {
		return nil, nil, err
	}

	return mergeValues(fileValues, argValues), mergeValues(fileParams, argParams), nil
}

// loadDefinition resolves ref through the session's search path and loads it.
func loadDefinition(s *session, ref string) (*opcmd.Definition, string, error) {
	path, err := s.catalog.Resolve(ref)
	if err != nil {
		return nil, "", actionable(err, "find definition", ref)
	}
	def, err := deffile.Load(path)
	if err != nil {
		return nil, path, actionable(err, "load definition", path)
	}
	return def, path, nil
}
