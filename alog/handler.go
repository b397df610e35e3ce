package alog

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(h *handler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(l *handler) {
		l.handlers = append(l.handlers, h)
	}
}

// WithLevel initialises the logger with a starting level.
// To change the level at runtime use Unwrap(logger).SetLevel.
func WithLevel(level slog.Level) LoggerOpt {
	return func(l *handler) {
		l.level.Set(level)
	}
}

// New returns a production ready logger.
//
// If no options are given it creates a default handler, logging JSON to Stderr.
// Otherwise, use WithHandler to set your own handlers.
func New(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newHandler(opts...))
}

// NewDevelopment returns a logger for local development, logging text to Stderr.
func NewDevelopment() *slog.Logger {
	return New(
		WithLevel(slog.LevelDebug),
		WithHandler(slog.NewTextHandler(os.Stderr, debugHandlerOptions())),
	)
}

func newHandler(opts ...LoggerOpt) *handler {
	h := &handler{
		level:    &slog.LevelVar{},
		handlers: []slog.Handler{},
	}

	h.level.Set(slog.LevelInfo)

	for _, opt := range opts {
		opt(h)
	}

	if len(h.handlers) == 0 {
		h.handlers = []slog.Handler{slog.NewJSONHandler(os.Stderr, defaultHandlerOptions())}
	}

	return h
}

// handler passes each record to all its handlers.
// A record logged within an active span is added to the span as an event,
// and the trace and span IDs are added to the record.
//
// The level of the handler is the level of all handlers,
// the level of individual handlers set via WithHandler is ignored.
type handler struct {
	level    *slog.LevelVar
	handlers []slog.Handler
}

var _ slog.Handler = (*handler)(nil)

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *handler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := FromContext(ctx); ok {
		record.AddAttrs(attrs...)
	}

	span := trace.SpanFromContext(ctx)
	if sCtx := span.SpanContext(); sCtx.IsValid() {
		record.AddAttrs(
			slog.String("traceID", sCtx.TraceID().String()),
			slog.String("spanID", sCtx.SpanID().String()),
		)
	}

	if span.IsRecording() {
		span.AddEvent("log", trace.WithAttributes(spanAttributes(record)...))

		if record.Level >= slog.LevelError {
			span.SetStatus(codes.Error, record.Message)
		}
	}

	var err error

	for _, h := range h.handlers {
		err = errors.Join(err, h.Handle(ctx, record.Clone()))
	}

	return err
}

func spanAttributes(record slog.Record) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("log.severity", record.Level.String()),
		attribute.String("log.message", record.Message),
	}

	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, attribute.String(a.Key, a.Value.String()))
		return true
	})

	return attrs
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))

	for i, hh := range h.handlers {
		handlers[i] = hh.WithAttrs(attrs)
	}

	return &handler{level: h.level, handlers: handlers}
}

func (h *handler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))

	for i, hh := range h.handlers {
		handlers[i] = hh.WithGroup(name)
	}

	return &handler{level: h.level, handlers: handlers}
}

func (h *handler) SetLevel(level slog.Level) {
	h.level.Set(level)
}

func (h *handler) Level() slog.Level {
	return h.level.Level()
}

// Leveler offers control over the level of a logger at run time.
// Loggers derived via With or WithGroup share the level.
type Leveler interface {
	SetLevel(level slog.Level)
	Level() slog.Level
}

// Unwrap returns the Leveler of logger.
// If the logger was not created by this package, it returns nil.
func Unwrap(logger Logger) Leveler { //nolint:ireturn // TestLogger and handler
	switch l := logger.(type) {
	case *TestLogger:
		return l
	case *slog.Logger:
		if h, ok := l.Handler().(*handler); ok {
			return h
		}
	}

	return nil
}

func defaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   true,
		Level:       LevelDebug, // the level of handler decides
		ReplaceAttr: NameLogLevels,
	}
}

// debugHandlerOptions keep the output readable, by removing not essential keys.
func debugHandlerOptions() *slog.HandlerOptions {
	opt := defaultHandlerOptions()
	opt.AddSource = false

	return opt
}
