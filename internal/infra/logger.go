package infra

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger for packages that take a logger without
// importing zerolog themselves.
type Logger = zerolog.Logger

// NewLogger returns a human-readable debug logger in development, a silent
// one under "test", and JSON at info level everywhere else.
func NewLogger(appEnv string) zerolog.Logger {
	return newLogger(appEnv, os.Stdout)
}

func newLogger(appEnv string, out io.Writer) zerolog.Logger {
	env := strings.ToLower(strings.TrimSpace(appEnv))
	switch env {
	case "test":
		return zerolog.Nop()
	case "development", "dev", "local":
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Logger()
	default:
		return zerolog.New(out).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Str("app", "wrapstudio").
			Str("env", env).
			Logger()
	}
}
