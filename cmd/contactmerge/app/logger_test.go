package app

import (
	"bytes"
	"strings"
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
		warns    bool
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", levelFromFlag: true, Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides both flags",
			config:   &Config{LogLevel: "info", levelFromFlag: true, Verbose: true, Quiet: true},
			expected: "info",
		},
		{
			name:     "both verbose and quiet prefers quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
			warns:    true,
		},
		{
			name:     "LOG_LEVEL env applies without flags",
			config:   &Config{LogLevel: "debug"},
			expected: "debug",
		},
		{
			name:     "verbose flag overrides LOG_LEVEL env",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag overrides LOG_LEVEL env",
			config:   &Config{LogLevel: "trace", Quiet: true},
			expected: "warn",
		},
		{
			name:     "invalid log level falls back to info",
			config:   &Config{LogLevel: "loud", levelFromFlag: true},
			expected: "info",
			warns:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warnings bytes.Buffer
			result := determineLogLevel(tt.config, &warnings)
			if result != tt.expected {
				t.Errorf("determineLogLevel() = %q, expected %q", result, tt.expected)
			}
			if got := warnings.Len() > 0; got != tt.warns {
				t.Errorf("warning written = %v, expected %v (%q)", got, tt.warns, warnings.String())
			}
		})
	}
}

// TestValidateLogLevel tests log level validation.
func TestValidateLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"invalid", "info"},
		{"", "info"},
		{"DEBUG", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if result := validateLogLevel(tt.level); result != tt.expected {
				t.Errorf("validateLogLevel(%q) = %q, expected %q", tt.level, result, tt.expected)
			}
		})
	}
}

// TestNewLogger tests that the created logger honors the resolved level.
func TestNewLogger(t *testing.T) {
	var warnings bytes.Buffer
	logger := newLogger(&Config{Quiet: true, LogFormat: "json", LogOutput: "discard"}, &warnings)
	if got := logger.GetLevel().String(); got != "warn" {
		t.Errorf("level = %q, want warn", got)
	}

	logger = newLogger(&Config{LogLevel: "bogus", levelFromFlag: true, LogFormat: "json", LogOutput: "discard"}, &warnings)
	if got := logger.GetLevel().String(); got != "info" {
		t.Errorf("level = %q, want info", got)
	}
	if !strings.Contains(warnings.String(), `invalid log level "bogus"`) {
		t.Errorf("missing invalid level warning: %q", warnings.String())
	}
}
