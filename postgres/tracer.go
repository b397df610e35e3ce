package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/catalog/ctx"
)

const spanKey ctx.CTXKey = "catalog.pgx.span"

var _ pgx.QueryTracer = (*queryTracer)(nil)

// queryTracer starts a span for every query pgx sends.
type queryTracer struct {
	tracer trace.Tracer
}

func (p queryTracer) TraceQueryStart(
	ctx context.Context,
	conn *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	config := conn.Config()

	ctx, span := p.tracer.Start(ctx, "pgx", trace.WithAttributes(
		attribute.String("db_host", config.Host),
		attribute.Int("db_port", int(config.Port)),
		attribute.String("db_database", config.Database),
		attribute.String("db_user", config.User),
		attribute.String("sql", data.SQL),
		attribute.StringSlice("sql_args", toStrings(data.Args)),
	))

	return context.WithValue(ctx, spanKey, span)
}

func (p queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(spanKey).(trace.Span)
	if !ok {
		return
	}

	span.SetAttributes(attribute.Int64("sql_rows_affected", data.CommandTag.RowsAffected()))

	if data.Err != nil {
		span.SetStatus(codes.Error, data.Err.Error())
	}

	span.End()
}

func toStrings(in []any) []string {
	s := make([]string, len(in))

	for i, v := range in {
		s[i] = fmt.Sprintf("%v", v)
	}

	return s
}
