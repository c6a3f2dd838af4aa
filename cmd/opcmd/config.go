// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opcmd/opcmd/internal/config"
	"github.com/opcmd/opcmd/internal/render"
)

// newConfigCommand creates the `opcmd config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage opcmd configuration",
		Long: `Manage opcmd configuration.

Configuration is stored in:
  - Linux: ~/.config/opcmd/config.cue
  - macOS: ~/Library/Application Support/opcmd/config.cue
  - Windows: %APPDATA%\opcmd\config.cue

Environment variables such as OPCMD_LOG_LEVEL and OPCMD_UI_VERBOSE override
values from the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path(app.loadOptions())
			if err != nil {
				return reportError(cmd.ErrOrStderr(), nil, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return reportError(cmd.ErrOrStderr(), nil, err)
			}
			content, err := config.GenerateCUE(cfg)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	stdout := cmd.OutOrStdout()
	cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
	if err != nil {
		return reportError(cmd.ErrOrStderr(), nil, err)
	}

	keyStyle := render.CmdStyle
	valueStyle := render.SuccessStyle

	fmt.Fprintln(stdout, render.TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(stdout)

	path, err := config.Path(app.loadOptions())
	if err == nil && fileExists(path) {
		fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("Config file"), render.SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("search_path"))
	if len(cfg.SearchPath) == 0 {
		fmt.Fprintf(stdout, "  %s\n", render.SubtitleStyle.Render("(none configured)"))
	} else {
		for _, dir := range cfg.SearchPath {
			fmt.Fprintf(stdout, "  - %s\n", valueStyle.Render(dir))
		}
	}
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("log_level"), valueStyle.Render(cfg.LogLevel.String()))
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("output_format"), valueStyle.Render(cfg.OutputFormat.String()))

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	return nil
}

func initConfig(cmd *cobra.Command, app *App, force bool) error {
	stdout := cmd.OutOrStdout()
	opts := app.loadOptions()

	path, err := config.Path(opts)
	if err != nil {
		return reportError(cmd.ErrOrStderr(), nil, err)
	}
	if fileExists(path) && !force {
		fmt.Fprintf(stdout, "Config file already exists at: %s\n", path)
		fmt.Fprintln(stdout, render.SubtitleStyle.Render("Use --force to overwrite it."))
		return nil
	}

	path, err = config.CreateDefaultConfig(opts, force)
	if err != nil {
		return reportError(cmd.ErrOrStderr(), nil, actionable(err, "create configuration", path))
	}
	fmt.Fprintf(stdout, "%s Created config file: %s\n", render.SuccessStyle.Render("✓"), path)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
