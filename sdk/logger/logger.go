// Package logger provides a small wrapper over the standard library slog
// package with environment driven configuration and trace id support.
package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jrazmi/todolist/sdk/environment"
)

// TraceIDFn returns the trace id for the current request, if any.
type TraceIDFn func(ctx context.Context) string

// Logger is a wrapper around the standard slog.Logger.
type Logger struct {
	*slog.Logger
	traceIDFn TraceIDFn
}

// Options is the exportable configuration struct.
type Options struct {
	Level      string `toml:"level" env:"LOG_LEVEL" default:"INFO"`
	Output     string `toml:"output" env:"LOG_OUTPUT" default:"STDOUT"`
	Format     string `toml:"format" env:"LOG_FORMAT" default:"json"`
	TimeFormat string `toml:"time_format" env:"LOG_TIME_FORMAT" default:"RFC3339"`
}

// options holds all configurable settings for the logger.
type options struct {
	level      slog.Level
	output     io.Writer
	format     string
	timeFormat string
	traceIDFn  TraceIDFn
}

// Option takes a config option and returns formatted config.
type Option func(*options)

// WithLevel overrides the log level.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = parseLevel(level)
	}
}

// WithOutput overrides the log destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithTraceID attaches a trace id resolver. When set, every context logging
// call carries a trace_id attribute.
func WithTraceID(fn TraceIDFn) Option {
	return func(o *options) {
		o.traceIDFn = fn
	}
}

// NewDefault creates a Logger with default settings and applies any options.
func NewDefault(opts ...Option) *Logger {
	cfg := Options{
		Level:      "INFO",
		Output:     "STDOUT",
		Format:     "json",
		TimeFormat: time.RFC3339,
	}
	return newLogger(cfg, opts...)
}

// NewFromEnv creates a Logger configured from environment variables.
func NewFromEnv(prefix string, opts ...Option) (*Logger, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing logger config: %w", err)
	}
	return newLogger(cfg, opts...), nil
}

// NewStdLogger returns a standard library logger writing through the Logger's
// handler. Used for http.Server error logging.
func NewStdLogger(logger *Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Logger.Handler(), level)
}

func newLogger(cfg Options, opts ...Option) *Logger {
	options := &options{
		level:      parseLevel(cfg.Level),
		output:     parseOutput(cfg.Output),
		format:     cfg.Format,
		timeFormat: cfg.TimeFormat,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.output == nil {
		options.output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level: options.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && options.timeFormat != "" {
				switch options.timeFormat {
				case "Unix":
					return slog.Int64(slog.TimeKey, a.Value.Time().Unix())
				case "UnixMilli":
					return slog.Int64(slog.TimeKey, a.Value.Time().UnixMilli())
				case "RFC3339Nano", time.RFC3339Nano:
					return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339Nano))
				case "RFC3339", time.RFC3339:
					return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
				default:
					return slog.String(slog.TimeKey, a.Value.Time().Format(options.timeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch options.format {
	case "text":
		handler = slog.NewTextHandler(options.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(options.output, handlerOpts)
	}

	return &Logger{
		Logger:    slog.New(handler),
		traceIDFn: options.traceIDFn,
	}
}

// Debug logs at debug level with the trace id from the context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.DebugContext(ctx, msg, l.withTrace(ctx, args)...)
}

// Info logs at info level with the trace id from the context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.InfoContext(ctx, msg, l.withTrace(ctx, args)...)
}

// Warn logs at warn level with the trace id from the context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.WarnContext(ctx, msg, l.withTrace(ctx, args)...)
}

// Error logs at error level with the trace id from the context.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.ErrorContext(ctx, msg, l.withTrace(ctx, args)...)
}

func (l *Logger) withTrace(ctx context.Context, args []any) []any {
	if l.traceIDFn == nil {
		return args
	}
	return append(args, "trace_id", l.traceIDFn(ctx))
}
