package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// NewMetered counts the calls of useCase and records their duration,
// labelled with the command and the status success or failure.
func NewMetered[In any, Out any](meterProvider metric.MeterProvider, useCase UseCase[In, Out]) UseCase[In, Out] {
	meter := meterProvider.Meter("catalog.application")

	counter, _ := meter.Int64Counter("usecases", metric.WithDescription("number of executed use cases"))
	duration, _ := meter.Float64Histogram("usecases_duration_seconds", metric.WithDescription("duration of use cases"))

	return &meteringDecorator[In, Out]{
		counter:  counter,
		duration: duration,
		base:     useCase,
	}
}

type meteringDecorator[In any, Out any] struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
	base     UseCase[In, Out]
}

func (d *meteringDecorator[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn,lll // valid use of generics
	start := time.Now()

	out, err := d.base.H(ctx, in)

	status := "success"
	if err != nil {
		status = "failure"
	}

	opt := metric.WithAttributes(
		attribute.String("command", commandName(in)),
		attribute.String("status", status),
	)

	d.counter.Add(ctx, 1, opt)
	d.duration.Record(ctx, time.Since(start).Seconds(), opt)

	return out, err //nolint:wrapcheck // decorate but not change anything
}
