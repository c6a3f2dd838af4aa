// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/opcmd/opcmd/internal/catalog"
	"github.com/opcmd/opcmd/internal/config"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference.
	App struct {
		Config    config.Provider
		configDir string
		stdout    io.Writer
		stderr    io.Writer

		flags globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// ConfigDir replaces the platform config directory when set.
		ConfigDir string
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		verbose    bool
		configPath string
		logLevel   string
		searchPath []string
	}

	// session is the per-invocation state derived from flags and configuration.
	session struct {
		cfg     *config.Config
		logger  *log.Logger
		catalog catalog.SearchPath
		verbose bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config:    deps.Config,
		configDir: deps.ConfigDir,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

// loadOptions returns the config loading inputs selected by the global flags.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		ConfigDirPath:  a.configDir,
	}
}

// newSession loads configuration and builds the logger and search path.
// Command-line flags take precedence over configuration values.
func (a *App) newSession(ctx context.Context, stderr io.Writer) (*session, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}

	levelName := cfg.LogLevel
	if a.flags.logLevel != "" {
		levelName = config.LogLevel(a.flags.logLevel)
		if valid, errs := levelName.IsValid(); !valid {
			return nil, errs[0]
		}
	}
	level, err := log.ParseLevel(levelName.String())
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", levelName, err)
	}

	logger := log.NewWithOptions(stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})

	s := &session{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog.New(cfg.SearchPath...).Prepend(a.flags.searchPath...),
		verbose: a.flags.verbose || cfg.UI.Verbose,
	}
	logger.Debug("session ready", "search_path", s.catalog.Dirs(), "output_format", cfg.OutputFormat)
	return s, nil
}

// issueStyle maps the configured color scheme to a glamour style name.
func (s *session) issueStyle() string {
	if s == nil {
		return string(config.ColorSchemeAuto)
	}
	return string(s.cfg.UI.ColorScheme)
}
