// Package alog builds the slog.Logger used throughout the catalog.
package alog

import (
	"context"
	"log/slog"
)

// Logger is the subset of slog.Logger the catalog depends on.
// The context methods are preferred, so records can be correlated with the active trace.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
}

var _ Logger = (*slog.Logger)(nil)

const (
	// LevelInfo is used to see what the catalog's infrastructure is doing, e.g. which use case is called.
	LevelInfo = slog.Level(-8)

	// LevelDebug is used to follow every step, e.g. each repository call.
	LevelDebug = slog.Level(-12)
)

// NameLogLevels replaces the default name of a custom log level with a speaking name.
// Use it as slog.HandlerOptions.ReplaceAttr.
func NameLogLevels(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}

	level, ok := attr.Value.Any().(slog.Level)
	if !ok {
		return attr
	}

	switch level {
	case LevelInfo:
		attr.Value = slog.StringValue("CATALOG:INFO")
	case LevelDebug:
		attr.Value = slog.StringValue("CATALOG:DEBUG")
	default:
	}

	return attr
}
