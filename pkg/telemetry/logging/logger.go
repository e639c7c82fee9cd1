package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/behark/ai/pkg/config"
)

// LogLevel represents the minimum severity a logger will emit.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat represents the encoding used for log records.
type LogFormat string

const (
	// FormatJSON writes one JSON object per record. Used in production.
	FormatJSON LogFormat = "json"
	// FormatText writes key=value records.
	FormatText LogFormat = "text"
	// FormatConsole writes colorized, human-oriented records for local runs.
	FormatConsole LogFormat = "console"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum severity to emit: debug, info, warn, error.
	// Empty defaults to info.
	Level string

	// Format selects the record encoding: json, text, console.
	// Empty defaults to json.
	Format string

	// AddSource attaches the file and line of the call site to each record.
	AddSource bool

	// RedactSecrets scrubs API keys, bearer tokens, and password-like
	// values from attribute values before they are written.
	RedactSecrets bool

	// RedactPatterns adds custom redaction rules on top of the built-in set.
	RedactPatterns []config.RedactPattern

	// Writer receives encoded records. Defaults to os.Stdout.
	Writer io.Writer
}

// Logger wraps slog with secret redaction and context-aware enrichment.
//
// All logging methods accept alternating key-value pairs, as slog does.
// When redaction is enabled the values are scrubbed before the record is
// handed to the underlying handler, so credentials never reach the output
// writer regardless of format.
type Logger struct {
	slog     *slog.Logger
	redactor *Redactor
	level    slog.Level
	format   LogFormat
	writer   io.Writer
}

// New creates a Logger from the given configuration.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	case FormatConsole:
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      level,
			AddSource:  cfg.AddSource,
			TimeFormat: "15:04:05.000",
		})
	}

	var redactor *Redactor
	if cfg.RedactSecrets {
		redactor, err = NewRedactor(cfg.RedactPatterns)
		if err != nil {
			return nil, fmt.Errorf("building redactor: %w", err)
		}
	}

	return &Logger{
		slog:     slog.New(handler),
		redactor: redactor,
		level:    level,
		format:   format,
		writer:   writer,
	}, nil
}

// NewFromConfig creates a Logger from the telemetry logging section of the
// platform configuration.
func NewFromConfig(cfg config.LoggingConfig) (*Logger, error) {
	return New(Config{
		Level:          cfg.Level,
		Format:         cfg.Format,
		AddSource:      cfg.AddSource,
		RedactSecrets:  cfg.RedactSecrets,
		RedactPatterns: cfg.RedactPatterns,
	})
}

// NewNop creates a logger that discards all records. Intended for tests.
func NewNop() *Logger {
	l, _ := New(Config{Level: "error", Format: "json", Writer: io.Discard})
	return l
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args...)
}

// DebugContext logs at debug level with fields extracted from ctx.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	args = append(extractContextFields(ctx), args...)
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// InfoContext logs at info level with fields extracted from ctx.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	args = append(extractContextFields(ctx), args...)
	l.log(ctx, slog.LevelInfo, msg, args...)
}

// WarnContext logs at warn level with fields extracted from ctx.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	args = append(extractContextFields(ctx), args...)
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// ErrorContext logs at error level with fields extracted from ctx.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	args = append(extractContextFields(ctx), args...)
	l.log(ctx, slog.LevelError, msg, args...)
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	// Fast path: skip redaction work when the record would be dropped.
	if !l.slog.Enabled(ctx, level) {
		return
	}

	if l.redactor != nil {
		args = l.redactor.RedactArgs(args)
	}

	l.slog.Log(ctx, level, msg, args...)
}

// With returns a logger that includes the given key-value pairs on every
// record. The pairs are redacted once, at creation.
func (l *Logger) With(args ...any) *Logger {
	if l.redactor != nil {
		args = l.redactor.RedactArgs(args)
	}
	return &Logger{
		slog:     l.slog.With(args...),
		redactor: l.redactor,
		level:    l.level,
		format:   l.format,
		writer:   l.writer,
	}
}

// WithContext returns a logger that includes the fields currently stored
// in ctx on every record.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// Slog exposes the underlying slog.Logger for components that take the
// standard type. Records logged through it bypass redaction, so it should
// only carry infrastructure logs that never see request payloads.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Enabled reports whether records at the given level would be emitted.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.slog.Enabled(context.Background(), level)
}

func parseLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", levelStr)
	}
}

func parseFormat(formatStr string) (LogFormat, error) {
	switch strings.ToLower(formatStr) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	default:
		return FormatJSON, fmt.Errorf("invalid log format: %s", formatStr)
	}
}
