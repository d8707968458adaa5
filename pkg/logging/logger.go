// Package logging provides structured logging for contactmerge using zerolog.
// Console output is used on terminals and JSON everywhere else, so a batch run
// piped into a file stays machine readable.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("sheet", "捐款人").Int("rows", 120).Msg("Sheet normalized")
//
//	ctx := logging.WithSheet(context.Background(), "MKT")
//	logging.FromContext(ctx).Debug().Msg("Header resolved")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves code that has no logger in its context. It is
// configured from LOG_LEVEL, LOG_FORMAT and NO_COLOR until Configure or
// SetDefault replaces it.
var defaultLogger = NewLoggerFromConfig(nil)

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger and zerolog's global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
