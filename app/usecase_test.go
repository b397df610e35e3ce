package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-arrower/catalog/alog"
	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/domain"
)

func TestFunc_H(t *testing.T) {
	t.Parallel()

	useCase := app.Func[request, response](func(context.Context, request) (response, error) {
		return response{Value: "ok"}, nil
	})

	out, err := useCase.H(ctx, request{})
	assert.NoError(t, err)
	assert.Equal(t, response{Value: "ok"}, out)
}

func TestNewInstrumented(t *testing.T) {
	t.Parallel()

	t.Run("call order", func(t *testing.T) {
		t.Parallel()

		recorder := tracetest.NewSpanRecorder()
		logger := alog.Test(t)

		useCase := app.NewInstrumented(
			sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
			sdkmetric.NewMeterProvider(),
			logger.Logger,
			nil,
			app.Func[input, response](func(ctx context.Context, _ input) (response, error) {
				assert.True(t, app.PassedValidation(ctx))
				logger.InfoContext(ctx, "inside")

				return response{Value: "ok"}, nil
			}),
		)

		out, err := useCase.H(ctx, validInput)
		assert.NoError(t, err)
		assert.Equal(t, "ok", out.Value)

		assert.Len(t, recorder.Ended(), 1)
		logger.Contains("command=app_test.input")
		logger.Contains("traceID=", "logs inside the use case are correlated with its span")
	})

	t.Run("invalid input is traced, metered, and logged", func(t *testing.T) {
		t.Parallel()

		recorder := tracetest.NewSpanRecorder()
		logger := alog.Test(t)
		called := false

		useCase := app.NewInstrumented(
			sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
			sdkmetric.NewMeterProvider(),
			logger.Logger,
			nil,
			app.Func[input, response](func(context.Context, input) (response, error) {
				called = true
				return response{}, nil
			}),
		)

		_, err := useCase.H(ctx, input{})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.False(t, called)

		assert.Len(t, recorder.Ended(), 1)
		logger.Contains("failed to execute use case")
	})
}

func TestCommandName(t *testing.T) {
	t.Parallel()

	logger := alog.Test(t)

	_, _ = app.NewLogged(logger.Logger, app.TestSuccessUseCase[*request, struct{}]()).H(ctx, &request{})
	_, _ = app.NewLogged(logger.Logger, app.TestSuccessUseCase[string, struct{}]()).H(ctx, "")

	logger.Contains("command=app_test.request", "pointers are dereferenced")
	logger.Contains("command=string")
}
