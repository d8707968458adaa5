package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/contactmerge/pkg/logging"
)

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRunID(ctx, "run-1")
	ctx = logging.WithSheet(ctx, "捐款人")
	ctx = logging.WithPass(ctx, "email-name")
	ctx = logging.WithFile(ctx, "donors.xlsx")

	logging.FromContext(ctx).Info().Msg("merged")

	tl.AssertContains(t, `"run_id":"run-1"`)
	tl.AssertContains(t, `"sheet":"捐款人"`)
	tl.AssertContains(t, `"pass":"email-name"`)
	tl.AssertContains(t, `"file":"donors.xlsx"`)
	assert.Equal(t, "run-1", logging.RunID(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Equal(t, logging.Default(), logging.FromContext(logging.WithLogger(context.Background(), nil)))
	assert.Empty(t, logging.RunID(context.Background()))
}

func TestConfigure(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	path := filepath.Join(t.TempDir(), "default.log")
	logging.Configure(&logging.Config{Level: "debug", Format: "json", Output: path})
	logging.Default().Debug().Msg("configured")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"configured"`)
	assert.Contains(t, string(data), `"caller"`)
}

func TestNewLoggerFromConfig(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("file output in json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})
		logger.Info().Msg("hidden")
		logger.Warn().Msg("shown")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"shown"`)
		assert.NotContains(t, string(data), "hidden")
	})

	t.Run("nil config reads the environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("DEBUG", "1")
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

		t.Setenv("LOG_LEVEL", "error")
		logger = logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.ErrorLevel, logger.GetLevel())
	})

	t.Run("levels", func(t *testing.T) {
		tests := map[string]zerolog.Level{
			"":        zerolog.InfoLevel,
			"warning": zerolog.WarnLevel,
			"TRACE":   zerolog.TraceLevel,
			"off":     zerolog.Disabled,
			"bogus":   zerolog.InfoLevel,
		}
		for in, want := range tests {
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: in, Output: "discard"})
			assert.Equal(t, want, logger.GetLevel(), "level %q", in)
		}
	})
}
