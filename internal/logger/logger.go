// Package logger provides structured logging for ossemdict
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with scrape and query specific helpers
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Pretty     bool   // human-readable console output
	Output     io.Writer
	WithCaller bool
}

// NewLogger creates a new structured logger. Unknown levels fall back to info.
func NewLogger(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
		}
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Zerolog returns the underlying zerolog logger
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// Component returns a logger tagged with a component name
func (l *Logger) Component(name string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", name).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zlog.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zlog.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zlog.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zlog.Error() }

// LogDocumentRegistered logs a document that contributed a log to the catalog
func (l *Logger) LogDocumentRegistered(path, product, log string, fields int) {
	l.zlog.Debug().
		Str("path", path).
		Str("product", product).
		Str("log", log).
		Int("fields", fields).
		Msg("document registered")
}

// LogDocumentSkipped logs a document without a data dictionary table
func (l *Logger) LogDocumentSkipped(path, reason string) {
	l.zlog.Debug().
		Str("path", path).
		Str("reason", reason).
		Msg("document skipped")
}

// LogDocumentFailed logs a document that could not be read or parsed
func (l *Logger) LogDocumentFailed(path string, err error) {
	l.zlog.Warn().
		Str("path", path).
		Err(err).
		Msg("document failed")
}

// LogRecordSkipped logs a record left out of a query result
func (l *Logger) LogRecordSkipped(product, log, field, reason string) {
	l.zlog.Warn().
		Str("product", product).
		Str("log", log).
		Str("field", field).
		Str("reason", reason).
		Msg("record skipped")
}

// LogScrapeComplete logs the totals of a scrape run
func (l *Logger) LogScrapeComplete(documents, registered, failed, fields int, duration time.Duration) {
	event := l.zlog.Info()
	if failed > 0 {
		event = l.zlog.Warn()
	}

	event.
		Int("documents", documents).
		Int("registered", registered).
		Int("failed", failed).
		Int("fields", fields).
		Dur("duration_ms", duration).
		Msg("scrape completed")
}
