package app

import (
	"context"
	"log/slog"

	"github.com/go-arrower/catalog/alog"
)

func NewLogged[In any, Out any](logger *slog.Logger, useCase UseCase[In, Out]) UseCase[In, Out] {
	return &loggingDecorator[In, Out]{
		logger: logger,
		base:   useCase,
	}
}

type loggingDecorator[In any, Out any] struct {
	logger *slog.Logger
	base   UseCase[In, Out]
}

func (d *loggingDecorator[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn,lll // valid use of generics
	cmdName := commandName(in)

	d.logger.Log(ctx, alog.LevelInfo, "executing use case",
		slog.String("command", cmdName),
	)

	out, err := d.base.H(ctx, in)
	if err != nil {
		d.logger.DebugContext(ctx, "failed to execute use case",
			slog.String("command", cmdName),
			slog.String("error", err.Error()),
		)
	} else {
		d.logger.Log(ctx, alog.LevelInfo, "use case executed successfully",
			slog.String("command", cmdName),
		)
	}

	return out, err //nolint:wrapcheck // decorate but not change anything
}
