package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helpdesk/helpdesk/internal/version"
)

// TimeFormat matches the timestamp layout of the scanned server logs.
const TimeFormat = "2006-01-02 15:04:05"

// ParseLevel converts a level name to a zerolog level. Unknown strings default to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New builds the process logger. Console output is meant for the interactive
// menu; JSON is used when the output is piped to a collector.
func New(w io.Writer, level string, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: TimeFormat,
			NoColor:    true,
		}
	}
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("version", version.GetVersion()).
		Logger()
}
