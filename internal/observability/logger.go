package observability

import (
	"io"
	"os"

	"github.com/couchcryptid/site-heatmap/internal/config"
	"github.com/rs/zerolog"
)

// NewLogger builds the process logger from the configured level and format.
// Entries go to stdout as JSON, or through the console writer for "text".
func NewLogger(cfg *config.Config) zerolog.Logger {
	return newLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format == "text" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("role", "site-heatmap").
		Logger()
}
