package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "comment-dashboard-api"

// Options controls logger construction
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or pretty

	// File, when set, receives a copy of every entry with size-based rotation
	File           string
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
}

// New creates a new zerolog logger with structured output, configured from
// LOG_LEVEL and LOG_FORMAT
func New() zerolog.Logger {
	return NewWithOptions(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// NewWithOptions creates a logger from explicit options
func NewWithOptions(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if opts.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	if opts.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.FileMaxSizeMB,
			MaxBackups: opts.FileMaxBackups,
			MaxAge:     opts.FileMaxAgeDays,
			Compress:   true,
		})
	}

	ctx := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp()

	// Caller info only in development output
	if opts.Format == "pretty" {
		ctx = ctx.Caller()
	}

	return ctx.Str("service", serviceName).Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
