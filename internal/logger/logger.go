// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger and the process-wide level.
// format "json" writes one JSON object per line; anything else uses the
// human-readable console writer. An unknown level falls back to info.
func Init(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))
	log.Logger = New(os.Stderr, level, format)
}

// New builds a logger writing to out, with timestamps and caller information.
// The level applies to the returned logger only.
func New(out io.Writer, level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Caller().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
