package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/contactmerge"
	"github.com/agentstation/contactmerge/pkg/profile"
)

// Mock provides a configurable implementation of Interface for tests.
// Pipelines are built from the embedded profile or the given profile file,
// the logger discards everything and color is always off.
//
// Example Usage:
//
//	mock := &appcontext.Mock{
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := merge.NewCommand(mock)
type Mock struct {
	OutputFormatFunc func() string
}

var _ Interface = (*Mock)(nil)

// PipelineWithOptions builds a real pipeline for the profile at profilePath.
func (m *Mock) PipelineWithOptions(profilePath string, opts ...contactmerge.Option) (contactmerge.Pipeline, error) {
	prof, err := m.Profile(profilePath)
	if err != nil {
		return nil, err
	}
	return contactmerge.New(append([]contactmerge.Option{contactmerge.WithProfile(prof)}, opts...)...)
}

// Profile loads path, or returns the default profile when path is empty.
func (m *Mock) Profile(path string) (*profile.Profile, error) {
	if path != "" {
		return profile.Load(path)
	}
	return profile.Default()
}

// Logger returns a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the output format using the mock function or "".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return ""
}

// NoColor always disables color in tests.
func (m *Mock) NoColor() bool { return true }

// Encoding returns "utf-8".
func (m *Mock) Encoding() string { return "utf-8" }

// AuditFormat returns "text".
func (m *Mock) AuditFormat() string { return "text" }

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns an empty commit hash.
func (m *Mock) Commit() string { return "" }

// Date returns an empty build date.
func (m *Mock) Date() string { return "" }

// BuiltBy returns an empty builder name.
func (m *Mock) BuiltBy() string { return "" }
