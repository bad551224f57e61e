// Package logging configures zerolog for adhan-clock.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level is given.
const DefaultLevel = "warn"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the process logger. With an empty file it writes human-readable
// lines to stderr; otherwise it appends JSON lines to file so the live
// dashboard on stdout is not disturbed. The returned closer releases the file.
// The package-level zerolog logger is replaced as well.
func New(level, file string) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	if file == "" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	} else {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	}

	logger := NewWithWriter(w, lvl)
	log.Logger = logger
	return logger, closer, nil
}

// NewWithWriter builds a logger writing JSON lines to w.
func NewWithWriter(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "adhan-clock").Logger()
}

// ParseLevel accepts zerolog level names; empty means DefaultLevel.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: use trace, debug, info, warn, error or disabled", level)
	}
	return lvl, nil
}
