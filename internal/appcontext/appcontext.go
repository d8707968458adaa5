// Package appcontext provides the application context interface shared by
// all commands. Commands accept this interface rather than the concrete
// App type so they can be tested with a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/contactmerge"
	"github.com/agentstation/contactmerge/pkg/profile"
)

// Interface defines what commands need from the application.
type Interface interface {
	// PipelineWithOptions creates a new pipeline for the profile at
	// profilePath ("" for the configured one) with extra options.
	PipelineWithOptions(profilePath string, opts ...contactmerge.Option) (contactmerge.Pipeline, error)

	// Profile loads the profile at path ("" for the configured one).
	Profile(path string) (*profile.Profile, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Encoding returns the default CSV input encoding.
	Encoding() string

	// AuditFormat returns the default audit log format.
	AuditFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
