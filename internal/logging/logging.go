// Package logging configures the zerolog loggers used by the CLI.
//
// Library packages never log through a global: they take a zerolog.Logger
// (zerolog.Nop() by default). Only the CLI calls Setup.
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

// Options configures a logger.
type Options struct {
	// Verbosity is the count of -v flags: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int

	// Level, when set, overrides Verbosity ("debug", "info", ...).
	Level string

	// NoColor disables ANSI colors in console output.
	NoColor bool

	// JSON writes raw JSON lines instead of the console format.
	JSON bool
}

// LevelFor maps a -v count to a level.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	level := LevelFor(opts.Verbosity)
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := w
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	// Add caller information for debug and trace levels
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), nil
}

// Setup builds a logger writing to w (stderr when nil) and installs it as
// the zerolog global.
func Setup(w io.Writer, opts Options) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	logger, err := New(w, opts)
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	logger.Debug().Int("verbosity", opts.Verbosity).Str("level", logger.GetLevel().String()).Msg("Logger initialized")
	return logger, nil
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
