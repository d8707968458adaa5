// Package app provides the application context and dependency management
// for the contactmerge CLI. It centralizes configuration, logging and
// pipeline construction for every command.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/contactmerge"
	"github.com/agentstation/contactmerge/pkg/profile"
)

// App represents the contactmerge application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Profile loads the profile at path, the configured profile when path is
// empty, or the embedded default profile when neither is set.
func (a *App) Profile(path string) (*profile.Profile, error) {
	if path == "" {
		path = a.config.Profile
	}
	if path == "" {
		return profile.Default()
	}
	return profile.Load(path)
}

// PipelineWithOptions returns a new pipeline for the profile at
// profilePath (see Profile) with extra options applied after it.
func (a *App) PipelineWithOptions(profilePath string, opts ...contactmerge.Option) (contactmerge.Pipeline, error) {
	prof, err := a.Profile(profilePath)
	if err != nil {
		return nil, err
	}
	all := append([]contactmerge.Option{contactmerge.WithProfile(prof)}, opts...)
	p, err := contactmerge.New(all...)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}
	return p, nil
}

// Shutdown releases application resources. A run holds no background
// work, so this only records that the application stopped.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return ctx.Err()
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Encoding returns the default CSV input encoding.
func (a *App) Encoding() string {
	return a.config.Encoding
}

// AuditFormat returns the default audit log format.
func (a *App) AuditFormat() string {
	return a.config.AuditFormat
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}
