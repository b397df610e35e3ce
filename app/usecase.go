// Package app provides common decorators for use cases in the application layer.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// UseCase handles the input In of a single application operation and returns Out.
// Operations without a result use struct{} as Out.
type UseCase[In any, Out any] interface {
	H(ctx context.Context, in In) (Out, error)
}

// Func turns a function into a UseCase.
type Func[In any, Out any] func(ctx context.Context, in In) (Out, error)

func (f Func[In, Out]) H(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

// NewInstrumented is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling:
// the use case is traced, metered, logged, and validated before it is called.
func NewInstrumented[In any, Out any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
	validate *validator.Validate,
	useCase UseCase[In, Out],
) UseCase[In, Out] {
	return NewTraced(traceProvider,
		NewMetered(meterProvider,
			NewLogged(logger,
				NewValidated(validate, useCase),
			),
		),
	)
}

// commandName returns a printable name of the input in,
// in the format context.package.Type, e.g. category.application.CreateCategoryRequest.
// If in is not declared inside a context, the format is package.Type.
func commandName(in any) string {
	t := reflect.TypeOf(in)
	if t == nil {
		return "<nil>"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	// e.g. github.com/go-arrower/catalog/contexts/category/internal/application
	_, after, ok := strings.Cut(t.PkgPath(), "/contexts/")
	if ok {
		if boundedContext, _, ok := strings.Cut(after, "/internal/"); ok {
			return fmt.Sprintf("%s.%s", boundedContext, t.String())
		}
	}

	return t.String()
}
