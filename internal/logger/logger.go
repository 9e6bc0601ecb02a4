// Package logger builds the zerolog loggers used by the taylor commands.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

// New returns a logger writing JSON lines to w at the given level, or
// human-readable lines when console is set. Every entry carries a timestamp,
// the service name and an instance id unique to this process.
func New(service, level string, w io.Writer, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), taylorerr.Wrap(taylorerr.TypeInvalidConfig, err, "log level")
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("instance_id", instanceID()).
		Str("service", service).
		Logger(), nil
}

func instanceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
