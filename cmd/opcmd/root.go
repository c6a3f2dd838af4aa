// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/opcmd/opcmd/internal/render"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the opcmd command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opcmd",
		Short: "Compile operation definitions into command lines",
		Long: render.TitleStyle.Render("opcmd") + render.SubtitleStyle.Render(" - Compile operation definitions into command lines") + `

opcmd turns an operation definition (an argument template, an environment
template and per-flag overrides) plus a set of flag values into the exact
argument vector and environment used to launch the operation.

Definitions are written in CUE, YAML, TOML, JSON or JSONC. A definition can be
given as a path or as a name looked up in the configured search path.

` + render.SubtitleStyle.Render("Examples:") + `
  opcmd generate ./train.cue --flag lr=0.01 --flag epochs=3
  opcmd generate train --param run_dir=/runs/42 --format shell
  opcmd validate ops/*.yaml
  opcmd normalize train.json --format cue
  opcmd list
  opcmd config show`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/opcmd/config.cue)")
	pf.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	pf.StringArrayVar(&app.flags.searchPath, "search-path", nil, "directory searched for named definitions before the configured ones (repeatable)")

	rootCmd.AddCommand(
		newGenerateCommand(app),
		newValidateCommand(app),
		newNormalizeCommand(app),
		newListCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitFailure)
	}
}
