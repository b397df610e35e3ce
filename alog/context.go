package alog

import (
	"context"
	"log/slog"

	"github.com/go-arrower/catalog/ctx"
)

const ctxAttr ctx.CTXKey = "catalog.log.attr"

// AddAttr returns a copy of ctx with attr attached.
// Every record logged with the returned context carries all attributes added this way.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	attrs, _ := FromContext(ctx)

	return context.WithValue(ctx, ctxAttr, append(attrs[:len(attrs):len(attrs)], attr))
}

// FromContext returns the attributes added with AddAttr.
func FromContext(ctx context.Context) ([]slog.Attr, bool) {
	attrs, ok := ctx.Value(ctxAttr).([]slog.Attr)

	return attrs, ok
}
