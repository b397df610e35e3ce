package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func NewTraced[In any, Out any](traceProvider trace.TracerProvider, useCase UseCase[In, Out]) UseCase[In, Out] {
	return &tracingDecorator[In, Out]{
		tracer: traceProvider.Tracer("catalog.application"),
		base:   useCase,
	}
}

type tracingDecorator[In any, Out any] struct {
	tracer trace.Tracer
	base   UseCase[In, Out]
}

func (d *tracingDecorator[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn,lll // valid use of generics
	newCtx, span := d.tracer.Start(ctx, "usecase",
		trace.WithAttributes(attribute.String("command", commandName(in))),
	)
	defer span.End()

	out, err := d.base.H(newCtx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return out, err //nolint:wrapcheck // decorate but not change anything
}
